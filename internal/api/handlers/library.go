package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chrono-task/backend/internal/api/middleware"
	"github.com/chrono-task/backend/internal/db/models"
)

// CourseStore is the per-user course library repository.
type CourseStore interface {
	ListCourses(userID int64) ([]models.Course, error)
	UpsertCourse(userID int64, course models.Course) (*models.Course, error)
	DeleteCourse(userID int64, id string) error
	UpdateCourseProgress(userID int64, videoID string, tasks []models.Task) error
}

type LibraryHandler struct {
	store CourseStore
}

func NewLibraryHandler(store CourseStore) *LibraryHandler {
	return &LibraryHandler{store: store}
}

func userID(r *http.Request) (int64, bool) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// List serves GET /api/library.
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	courses, err := h.store.ListCourses(uid)
	if err != nil {
		jsonError(w, "failed to load library", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, courses, http.StatusOK)
}

type saveCourseRequest struct {
	VideoID    string        `json:"videoId"`
	Title      string        `json:"title"`
	Concepts   []string      `json:"concepts"`
	Tasks      []models.Task `json:"tasks"`
	Transcript string        `json:"transcript"`
}

// Save serves POST /api/library.
func (h *LibraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.VideoID) == "" || strings.TrimSpace(req.Title) == "" {
		jsonError(w, "videoId and title are required", http.StatusBadRequest)
		return
	}

	if req.Concepts == nil {
		req.Concepts = []string{}
	}
	if req.Tasks == nil {
		req.Tasks = []models.Task{}
	}

	course, err := h.store.UpsertCourse(uid, models.Course{
		VideoID:    req.VideoID,
		Title:      req.Title,
		Concepts:   req.Concepts,
		Tasks:      req.Tasks,
		Transcript: req.Transcript,
	})
	if err != nil {
		jsonError(w, "failed to save course", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, course, http.StatusOK)
}

// Delete serves DELETE /api/library/{id}.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "course id is required", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteCourse(uid, id); err != nil {
		jsonError(w, "failed to delete course", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type progressRequest struct {
	Tasks []models.Task `json:"tasks"`
}

// UpdateProgress serves PUT /api/library/{videoId}/progress.
func (h *LibraryHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	videoID := chi.URLParam(r, "videoId")
	if videoID == "" {
		jsonError(w, "videoId is required", http.StatusBadRequest)
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateCourseProgress(uid, videoID, req.Tasks); err != nil {
		jsonError(w, "failed to update progress", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
