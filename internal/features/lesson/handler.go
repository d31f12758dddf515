package lesson

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/pkg/apperrors"
	"github.com/learnloop/learnloop-server-go/pkg/metrics"
	"github.com/learnloop/learnloop-server-go/pkg/pagination"
	"github.com/learnloop/learnloop-server-go/pkg/request"
	"github.com/learnloop/learnloop-server-go/pkg/response"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// Handler processes lesson HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a lesson handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// lessonView decorates a lesson with its playable video form.
type lessonView struct {
	Lesson
	VideoEmbed *VideoEmbed `json:"videoEmbed,omitempty"`
}

func view(l Lesson) lessonView {
	v := lessonView{Lesson: l}
	if l.VideoURL != nil {
		embed := ClassifyVideoURL(*l.VideoURL)
		v.VideoEmbed = &embed
	}
	return v
}

func views(lessons []Lesson) []lessonView {
	out := make([]lessonView, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, view(l))
	}
	return out
}

// List returns paginated lessons for a course.
func (h *Handler) List(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	params := pagination.Extract(c)
	filters := ListFilters{
		CourseID: courseID,
		Keyword:  c.Query("filterKeyword"),
	}

	lessons, total, err := List(h.db, filters, params)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to list lessons", err)
		return
	}

	response.Success(c, http.StatusOK, views(lessons), "", pagination.MetadataFrom(total, params))
}

// GetByID returns a single lesson with its video embed info.
func (h *Handler) GetByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	id, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
		return
	}

	lsn, err := GetInCourse(h.db, courseID, id)
	if err != nil {
		h.respondError(c, err, "failed to load lesson")
		return
	}

	response.Success(c, http.StatusOK, view(lsn), "", nil)
}

// Create inserts a new lesson (admin only).
func (h *Handler) Create(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	if _, err := course.Get(h.db, courseID); err != nil {
		h.respondCourseError(c, err)
		return
	}

	var req struct {
		Title    string  `json:"title" binding:"required"`
		Content  string  `json:"content"`
		VideoURL *string `json:"videoUrl"`
		Order    *int    `json:"order"`
		Section  *string `json:"section"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson payload", err)
		return
	}

	lsn, err := Create(h.db, CreateInput{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Order:    req.Order,
		Section:  req.Section,
	})
	if err != nil {
		h.respondError(c, err, "failed to create lesson")
		return
	}

	response.Created(c, view(lsn), "Lesson created")
}

// Update modifies a lesson (admin only).
func (h *Handler) Update(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	id, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson payload", err)
		return
	}

	var input UpdateInput

	if value, ok := body["title"]; ok {
		str, err := request.ReadString(value)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "title must be a string", err)
			return
		}
		input.Title = &str
	}

	if value, ok := body["content"]; ok {
		str, ok := value.(string)
		if !ok {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "content must be a string", nil)
			return
		}
		input.Content = &str
	}

	if value, ok := body["videoUrl"]; ok {
		input.VideoURLProvided = true
		if value != nil {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "videoUrl must be a string", err)
				return
			}
			input.VideoURL = &str
		}
	}

	if value, ok := body["order"]; ok {
		input.OrderProvided = true
		if value != nil {
			val, err := request.ReadInt(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "order must be a number", err)
				return
			}
			input.Order = &val
		}
	}

	if value, ok := body["section"]; ok {
		input.SectionProvided = true
		if value != nil {
			str, err := request.ReadString(value)
			if err != nil {
				response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "section must be a string", err)
				return
			}
			input.Section = &str
		}
	}

	lsn, err := Update(h.db, courseID, id, input)
	if err != nil {
		h.respondError(c, err, "failed to update lesson")
		return
	}

	response.Success(c, http.StatusOK, view(lsn), "Lesson updated", nil)
}

// Delete removes a lesson (admin only).
func (h *Handler) Delete(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	id, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
		return
	}

	if err := Delete(h.db, courseID, id); err != nil {
		h.respondError(c, err, "failed to delete lesson")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lessonId": id}, "Lesson deleted", nil)
}

// Reorder moves a lesson one position and returns the updated list.
func (h *Handler) Reorder(c *gin.Context) {
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
		Direction types.ReorderDirection `json:"direction" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid reorder payload", err)
		return
	}

	lessons, err := Reorder(h.db, courseID, lessonID, req.Direction)
	if err != nil {
		h.respondError(c, err, "failed to reorder lesson")
		return
	}

	metrics.RecordReorder(string(req.Direction))
	response.Success(c, http.StatusOK, views(lessons), "", nil)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrLessonNotFound):
		status = http.StatusNotFound
		message = "Lesson not found"
	case errors.Is(err, ErrTitleRequired):
		status = http.StatusBadRequest
		message = "Lesson title is required"
	case errors.Is(err, ErrTitleLength):
		status = http.StatusBadRequest
		message = "Lesson title must be between 3 and 120 characters"
	case errors.Is(err, ErrContentTooLong):
		status = http.StatusBadRequest
		message = "Lesson content is too long"
	case errors.Is(err, ErrOrderInvalid):
		status = http.StatusBadRequest
		message = "Lesson order must be non-negative"
	case errors.Is(err, ErrInvalidDirection):
		status = http.StatusBadRequest
		message = "Direction must be up or down"
	case apperrors.Is(err, apperrors.ErrPartialFailure):
		status = http.StatusConflict
		message = "Lesson order swap did not apply"
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}

func (h *Handler) respondCourseError(c *gin.Context, err error) {
	if errors.Is(err, course.ErrCourseNotFound) {
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Course not found", err)
		return
	}
	response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load course", err)
}
