package handlers

import (
	"net/http"

	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/api/validate"
)

const msgInvalidBody = "invalid JSON body"

// decode reads the JSON body into v, writing a 400 and returning false on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", msgInvalidBody, nil)
		return false
	}
	return true
}

func writeInvalid(w http.ResponseWriter, msg string, errs validate.Errs) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", msg, errs)
}
