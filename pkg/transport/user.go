package transport

import (
	"net/http"

	"github.com/araddon/dateparse"
	"github.com/gorilla/mux"

	"storefront/pkg/domain/service"
)

type newUserRequest struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
}

func (h *handler) newUser(w http.ResponseWriter, r *http.Request) error {
	var req newUserRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	input := service.UserInput{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
	}
	if req.DOB != "" {
		if dob, err := dateparse.ParseAny(req.DOB); err == nil {
			input.DOB = dob
		}
	}

	user, created, err := h.Users.Register(r.Context(), input)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(w, status, envelope{"message": "Welcome, " + user.Name})
	return nil
}

func (h *handler) allUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Users.AllUsers(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"users": users})
	return nil
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.Users.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"user": user})
	return nil
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) error {
	if err := h.Users.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"message": "User deleted successfully"})
	return nil
}
