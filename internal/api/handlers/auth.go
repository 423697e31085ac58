package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/dom/kpitter/internal/api/middleware"
	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/service"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

const (
	minPasswordLength = 8
	maxFullNameLength = 64
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		writeDetail(w, http.StatusBadRequest, "Username must be 3-20 characters of letters, digits and underscores")
		return
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		writeDetail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	fullName := ""
	if req.FullName != nil {
		if utf8.RuneCountInString(*req.FullName) > maxFullNameLength {
			writeDetail(w, http.StatusBadRequest, "Full name must be at most 64 characters")
			return
		}
		fullName = *req.FullName
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: fullName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			writeDetail(w, http.StatusConflict, "Username already taken")
			return
		}
		log.Printf("ERROR [handlers.Register] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w,
		link{url: "/login", rel: "login"},
		link{url: fmt.Sprintf("/api/users/%s", user.Username), rel: "self"},
	)
	writeJSON(w, http.StatusCreated, user)
}

// Login checks the supplied credentials and nothing more: no session or token
// is created, callers keep sending Basic credentials on every request.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if !h.authService.Authenticate(r.Context(), req.Username, req.Password) {
		w.Header().Set("WWW-Authenticate", "Basic")
		writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := middleware.AuthenticatedUsername(r.Context())
	if username == "" {
		unauthorized(w)
		return
	}

	user, err := h.authService.GetUser(r.Context(), username)
	if err != nil {
		// The middleware just verified this user's credentials.
		log.Printf("ERROR [handlers.Me] authenticated user %q not found: %v", username, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w, link{url: fmt.Sprintf("/api/users/%s/posts", user.Username), rel: "posts"})
	writeJSON(w, http.StatusOK, user)
}
