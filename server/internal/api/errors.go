package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/kachalmers/tuiter/server/internal/api/respond"
	"github.com/kachalmers/tuiter/server/internal/model"
)

// writeServiceError maps model sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteError(w, http.StatusForbidden, "invalid credentials")
	default:
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respond.WriteInternalError(w, "internal error")
	}
}
