package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	respond "github.com/kachalmers/tuiter/server/internal/api/respond"
	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/services"
)

// tuitJSON is the wire shape of a tuit. PostedBy holds either the author
// object or, when unresolved, the bare author id.
type tuitJSON struct {
	ID       string    `json:"_id"`
	Tuit     string    `json:"tuit"`
	PostedBy any       `json:"postedBy"`
	PostedOn time.Time `json:"postedOn"`
}

func toTuitJSON(t *model.Tuit, author *model.User) tuitJSON {
	out := tuitJSON{ID: t.ID, Tuit: t.Tuit, PostedBy: t.AuthorID, PostedOn: t.PostedOn}
	if author != nil {
		out.PostedBy = author
	}
	return out
}

type TuitHandler struct {
	svc *services.TuitService
}

func NewTuitHandler(svc *services.TuitService) *TuitHandler { return &TuitHandler{svc: svc} }

// CreateTuit serves POST /users/{userId}/tuits. The response references the author by id.
func (h *TuitHandler) CreateTuit(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Tuit string `json:"tuit"`
	}
	if err := decodeObject(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	t, err := h.svc.CreateTuit(r.Context(), mux.Vars(r)["userId"], in.Tuit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, toTuitJSON(t, nil))
}

func (h *TuitHandler) ListTuits(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListTuits(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]tuitJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toTuitJSON(v.Tuit, v.Author))
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *TuitHandler) GetTuit(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetTuit(r.Context(), mux.Vars(r)["tuitId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toTuitJSON(v.Tuit, v.Author))
}

func (h *TuitHandler) DeleteTuit(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteTuit(r.Context(), mux.Vars(r)["tuitId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}
