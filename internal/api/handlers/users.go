package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.authService.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [handlers.GetUser] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w, link{url: fmt.Sprintf("/api/users/%s/posts", user.Username), rel: "posts"})
	writeJSON(w, http.StatusOK, user)
}
