package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/kachalmers/tuiter/server/internal/api/respond"
	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := decodeObject(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := h.svc.CreateUser(r.Context(), services.CreateUserInput{
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if us == nil {
		us = []*model.User{}
	}
	respond.WriteJSON(w, http.StatusOK, us)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// DeleteUsersByUsername serves GET /users/username/{username}/delete.
func (h *UserHandler) DeleteUsersByUsername(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteUsersByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeObject(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err := h.svc.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
