package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/kpitter/internal/api/middleware"
	"github.com/dom/kpitter/internal/domain"
	"github.com/dom/kpitter/internal/service"
	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	authService *service.AuthService
	postService *service.PostService
}

func NewPostHandler(authService *service.AuthService, postService *service.PostService) *PostHandler {
	return &PostHandler{
		authService: authService,
		postService: postService,
	}
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewer := middleware.AuthenticatedUsername(r.Context())

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Page must be an integer")
			return
		}
		page = parsed
	}

	user, err := h.authService.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [handlers.ListPosts] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	posts, err := h.postService.ListPosts(r.Context(), username, viewer, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPage) {
			writeDetail(w, http.StatusBadRequest, "Page must be greater than zero")
			return
		}
		log.Printf("ERROR [handlers.ListPosts] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Pagination links only make sense for authenticated viewers;
	// unauthenticated ones are pinned to the newest page.
	if viewer != "" {
		lastPage := (user.Posts + service.PageSize - 1) / service.PageSize
		var links []link
		if user.Posts > 0 {
			links = append(links,
				link{url: postsPageURL(user.Username, 1), rel: "first"},
				link{url: postsPageURL(user.Username, lastPage), rel: "last"},
			)
		}
		if page > 1 {
			links = append(links, link{url: postsPageURL(user.Username, page-1), rel: "prev"})
		}
		if page < lastPage {
			links = append(links, link{url: postsPageURL(user.Username, page+1), rel: "next"})
		}
		setLinks(w, links...)
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewer := middleware.AuthenticatedUsername(r.Context())
	if viewer == "" {
		unauthorized(w)
		return
	}
	if domain.CanonicalUsername(viewer) != domain.CanonicalUsername(username) {
		writeDetail(w, http.StatusForbidden, "You are not allowed to create posts for other users")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(r.Context(), viewer, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidContent) {
			writeDetail(w, http.StatusBadRequest, "Content must be between 1 and 140 characters")
			return
		}
		// Includes ErrAuthorNotFound: the author was authenticated a moment
		// ago, so absence is an internal inconsistency.
		log.Printf("ERROR [handlers.CreatePost] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w,
		link{url: fmt.Sprintf("/api/users/%s/posts", post.Author.Username), rel: "posts"},
		link{url: fmt.Sprintf("/api/users/%s/posts/%s", post.Author.Username, post.ID), rel: "self"},
	)
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	postID := chi.URLParam(r, "postID")
	viewer := middleware.AuthenticatedUsername(r.Context())

	post, err := h.postService.GetPost(r.Context(), username, postID, viewer)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("ERROR [handlers.GetPost] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w,
		link{url: fmt.Sprintf("/api/users/%s/posts", post.Author.Username), rel: "posts"},
		link{url: fmt.Sprintf("/api/users/%s/posts/%s/like", post.Author.Username, post.ID), rel: "like"},
	)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	postID := chi.URLParam(r, "postID")
	viewer := middleware.AuthenticatedUsername(r.Context())
	if viewer == "" {
		unauthorized(w)
		return
	}

	if err := h.postService.LikePost(r.Context(), username, postID, viewer); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("ERROR [handlers.LikePost] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setLinks(w,
		link{url: fmt.Sprintf("/api/users/%s/posts", username), rel: "posts"},
		link{url: fmt.Sprintf("/api/users/%s/posts/%s", username, postID), rel: "self"},
	)
	w.WriteHeader(http.StatusCreated)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	postID := chi.URLParam(r, "postID")
	viewer := middleware.AuthenticatedUsername(r.Context())
	if viewer == "" {
		unauthorized(w)
		return
	}

	if err := h.postService.UnlikePost(r.Context(), username, postID, viewer); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("ERROR [handlers.UnlikePost] %v", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postsPageURL(username string, page int) string {
	return fmt.Sprintf("/api/users/%s/posts?page=%d", username, page)
}
