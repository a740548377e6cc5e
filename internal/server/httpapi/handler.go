// Package httpapi exposes the account and note operations over JSON/HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/access"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

const welcomeMessage = "Welcome to the Full-Stack Notes App API"

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	users  *services.UserService
	notes  *services.NoteService
	gate   *access.Gate
	health Pinger
	log    logging.Logger
}

func NewHandler(us *services.UserService, ns *services.NoteService, gate *access.Gate, health Pinger, l logging.Logger) *Handler {
	return &Handler{
		users:  us,
		notes:  ns,
		gate:   gate,
		health: health,
		log:    l.With("module", "http_api"),
	}
}

type credentialsRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	ExpiresAt   string `json:"expires_at"`
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		UserID:    n.OwnerID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

// Routes returns the API mux. Note routes sit behind the access gate.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)

	protect := func(f http.HandlerFunc) http.Handler { return h.gate.Middleware(f) }
	mux.Handle("POST /notes", protect(h.handleCreateNote))
	mux.Handle("GET /notes", protect(h.handleListNotes))
	mux.Handle("GET /notes/{id}", protect(h.handleGetNote))
	mux.Handle("PUT /notes/{id}", protect(h.handleUpdateNote))
	mux.Handle("DELETE /notes/{id}", protect(h.handleDeleteNote))
	return mux
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.log.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := requireFields(map[string]bool{"email": req.Email != nil, "password": req.Password != nil}); err != nil {
		h.writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), *req.Email, *req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{Message: "User registered successfully", UserID: u.ID})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := requireFields(map[string]bool{"email": req.Email != nil, "password": req.Password != nil}); err != nil {
		h.writeError(w, r, err)
		return
	}

	sess, err := h.users.Login(r.Context(), *req.Email, *req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: sess.AccessToken,
		TokenType:   sess.TokenType,
		UserID:      sess.UserID,
		ExpiresAt:   sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	owner, err := access.OwnerID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := decodeNote(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.notes.Create(r.Context(), owner, *req.Title, *req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(n))
}

func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	owner, err := access.OwnerID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.notes.ListByOwner(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]noteResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	owner, err := access.OwnerID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.notes.GetByID(r.Context(), r.PathValue("id"), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	owner, err := access.OwnerID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := decodeNote(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.notes.Update(r.Context(), r.PathValue("id"), owner, *req.Title, *req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, err := access.OwnerID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ok, err := h.notes.Delete(r.Context(), r.PathValue("id"), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ok {
		writeDetail(w, http.StatusNotFound, noteNotFoundDetail)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeNote(w http.ResponseWriter, r *http.Request) (*noteRequest, error) {
	var req noteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]bool{"title": req.Title != nil, "content": req.Content != nil}); err != nil {
		return nil, err
	}
	return &req, nil
}
