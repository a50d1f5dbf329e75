package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kachalmers/tuiter/server/internal/api/validate"
	"github.com/kachalmers/tuiter/server/internal/model"
)

const maxBodyBytes = 1 << 20

// decodeObject reads a JSON object body into dst; malformed bodies are model.ErrValidation.
func decodeObject(w http.ResponseWriter, r *http.Request, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", model.ErrValidation, err)
	}
	if err := validate.IsJSONObject(raw); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", model.ErrValidation, err)
	}
	return nil
}
