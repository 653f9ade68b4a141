package handlers

import (
	"net/http"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/api/validate"
	"github.com/baharkarakas/projectify-backend/internal/auth"
	"github.com/baharkarakas/projectify-backend/internal/services"
)

type AuthHandler struct {
	Svc *services.UserService
}

func NewAuthHandler(svc *services.UserService) *AuthHandler { return &AuthHandler{Svc: svc} }

type tokenResp struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

func newTokenResp(p auth.Pair) tokenResp {
	return tokenResp{
		Token:        p.Access,
		RefreshToken: p.Refresh,
		ExpiresIn:    int64(time.Until(p.AccessExp).Round(time.Second).Seconds()),
	}
}

// Login handles POST /user/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decode(w, r, &req) {
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Username and password are required", errs)
		return
	}
	pair, err := h.Svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTokenResp(pair))
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /user/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if !decode(w, r, &req) {
		return
	}
	if errs := validate.Collect(validate.Required("refresh_token", req.RefreshToken)); errs != nil {
		writeInvalid(w, "refresh_token is required", errs)
		return
	}
	pair, err := h.Svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTokenResp(pair))
}
