package handlers

import (
	"net/http"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/api/validate"
	"github.com/baharkarakas/projectify-backend/internal/services"
)

type UserHandler struct {
	Svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{Svc: svc} }

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req credentialsReq) validate() validate.Errs {
	return validate.Collect(
		validate.Required("username", req.Username),
		validate.Required("password", req.Password),
		validate.MaxLen("username", req.Username, 64),
	)
}

// Create handles POST /user/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decode(w, r, &req) {
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Username and password are required", errs)
		return
	}
	u, err := h.Svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "New user created", "user": u})
}
