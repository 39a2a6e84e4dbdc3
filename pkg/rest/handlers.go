// Package rest exposes the data-access operations as HTTP resources with
// query-string driven behavior and JSON responses.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/model"
	"github.com/blogcore/blogd/pkg/store"
)

// Store is the data access required by the REST handlers.
type Store interface {
	ListPosts(ctx context.Context, p store.ListParams) (*model.Paginated[model.Post], error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UserPosts(ctx context.Context, userID int64, limit int) ([]model.Post, error)
}

// Handler serves the REST endpoints.
type Handler struct {
	store Store
	log   zerolog.Logger
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(s Store, log zerolog.Logger) *Handler {
	return &Handler{store: s, log: log}
}

// Register attaches all REST routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /posts", h.listPosts)
	mux.HandleFunc("GET /posts/{id}", h.getPost)
	mux.HandleFunc("GET /users", h.listUsers)
	mux.HandleFunc("GET /users/{id}", h.getUser)
	mux.HandleFunc("GET /users/{id}/posts", h.userPosts)
	mux.HandleFunc("GET /health", h.health)
}

// GET /posts?page=1&limit=10&sort=created_at&order=desc&search=keyword
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", 10)

	// Page is checked before limit; the first failing check wins.
	if page < 1 {
		writeError(w, http.StatusBadRequest, "Page number must be greater than 0")
		return
	}
	if limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "Limit must be between 1 and 100")
		return
	}

	result, err := h.store.ListPosts(r.Context(), store.ListParams{
		Page:   page,
		Limit:  limit,
		SortBy: r.URL.Query().Get("sort"),
		Order:  r.URL.Query().Get("order"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GET /posts/{id}
func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Post with ID %d not found", id))
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// GET /users
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  users,
		"total": len(users),
	})
}

// GET /users/{id}
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GET /users/{id}/posts?limit=3
func (h *Handler) userPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w)
		return
	}

	// The user existence check comes before limit validation.
	user, err := h.store.GetUser(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	limit := intQuery(r, "limit", store.DefaultUserPostsLimit)
	if limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "Limit must be between 1 and 100")
		return
	}

	posts, err := h.store.UserPosts(r.Context(), id, limit)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"posts": posts,
		"total": len(posts),
	})
}

// GET /health
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "REST API is running",
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// pathID parses the {id} path segment. A non-numeric id means the resource
// cannot exist, so the caller responds 404.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// intQuery reads an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
