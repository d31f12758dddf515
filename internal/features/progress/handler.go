package progress

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/middleware"
	"github.com/learnloop/learnloop-server-go/pkg/cache"
	"github.com/learnloop/learnloop-server-go/pkg/metrics"
	"github.com/learnloop/learnloop-server-go/pkg/response"
)

// Handler processes progress HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	cache  cache.Client
}

// NewHandler constructs a progress handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, cacheClient cache.Client) *Handler {
	return &Handler{db: db, logger: logger, cache: cacheClient}
}

// GetCourseProgress returns the caller's derived progress for one course.
func (h *Handler) GetCourseProgress(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	if _, err := course.Get(h.db, courseID); err != nil {
		h.respondError(c, err, "failed to load course")
		return
	}

	prog, err := GetCourseProgress(h.db, usr.ID, courseID)
	if err != nil {
		h.respondError(c, err, "failed to compute progress")
		return
	}

	response.Success(c, http.StatusOK, prog, "", nil)
}

// GetAllProgress returns the caller's derived progress for every course.
func (h *Handler) GetAllProgress(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var courseIDs []uuid.UUID
	if err := h.db.Model(&course.Course{}).Pluck("id", &courseIDs).Error; err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list courses", err)
		return
	}

	all, err := GetAllProgress(h.db, usr.ID, courseIDs)
	if err != nil {
		h.respondError(c, err, "failed to compute progress")
		return
	}

	response.Success(c, http.StatusOK, all, "", nil)
}

// SetCompletion toggles a lesson's completion for the caller and returns
// the recomputed course progress.
func (h *Handler) SetCompletion(c *gin.Context) {
	usr, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.ErrorWithLog(h.logger, c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
		return
	}

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid completion payload", err)
		return
	}

	prog, err := SetCompletion(h.db, usr.ID, courseID, lessonID, *req.Completed)
	if err != nil {
		h.respondError(c, err, "failed to set completion")
		return
	}

	metrics.RecordCompletionToggle(*req.Completed)
	InvalidateLeaderboard(c.Request.Context(), h.cache)

	response.Success(c, http.StatusOK, prog, "", nil)
}

// Leaderboard returns the top users ranked by completion points.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "limit must be between 1 and 100", err)
			return
		}
		limit = parsed
	}

	entries, err := Leaderboard(c.Request.Context(), h.db, h.cache, limit)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load leaderboard", err)
		return
	}

	response.Success(c, http.StatusOK, entries, "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found"
	case errors.Is(err, lesson.ErrLessonNotFound), errors.Is(err, ErrLessonNotInCourse):
		status = http.StatusNotFound
		message = "Lesson not found in course"
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
