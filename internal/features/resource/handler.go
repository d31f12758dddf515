package resource

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/middleware"
	"github.com/learnloop/learnloop-server-go/pkg/bunny"
	"github.com/learnloop/learnloop-server-go/pkg/response"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// Handler processes resource HTTP requests.
type Handler struct {
	db            *gorm.DB
	logger        *slog.Logger
	storageClient *bunny.StorageClient
}

// NewHandler constructs a resource handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, storageClient *bunny.StorageClient) *Handler {
	return &Handler{
		db:            db,
		logger:        logger,
		storageClient: storageClient,
	}
}

// List returns the resources visible in the requested scope. An optional
// lessonId query narrows the view to that lesson plus course-level rows.
func (h *Handler) List(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	var lessonID *uuid.UUID
	if raw := c.Query("lessonId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
			return
		}
		lessonID = &parsed
	}

	resources, err := ResolveVisible(h.db, courseID, lessonID)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load resources", err)
		return
	}

	response.Success(c, http.StatusOK, resources, "", nil)
}

// Create inserts a new resource.
// File resources arrive as multipart/form-data with a 'file' field; url
// resources arrive as application/json.
func (h *Handler) Create(c *gin.Context) {
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

	input := CreateInput{
		CourseID:   courseID,
		UploadedBy: usr.ID,
	}

	contentType := c.ContentType()
	if strings.Contains(contentType, "multipart/form-data") {
		if err := h.readFileUpload(c, &input); err != nil {
			return
		}
	} else {
		if err := h.readURLPayload(c, &input); err != nil {
			return
		}
	}

	if input.LessonID != nil {
		lsn, err := lesson.Get(h.db, *input.LessonID)
		if err != nil {
			h.respondError(c, err, "failed to load lesson")
			return
		}
		if lsn.CourseID != courseID {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "lesson does not belong to course", nil)
			return
		}
	}

	res, err := Create(h.db, input)
	if err != nil {
		h.respondError(c, err, "failed to create resource")
		return
	}

	response.Created(c, res, "Resource created")
}

// Delete removes a resource row, then cleans up the stored blob. Blob
// cleanup is best effort; a failed delete is logged, not surfaced.
func (h *Handler) Delete(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid course id", err)
		return
	}

	id, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid resource id", err)
		return
	}

	res, err := GetInCourse(h.db, courseID, id)
	if err != nil {
		h.respondError(c, err, "failed to load resource")
		return
	}

	if err := Delete(h.db, courseID, id); err != nil {
		h.respondError(c, err, "failed to delete resource")
		return
	}

	if res.Kind == types.ResourceKindFile && res.FileURL != nil {
		remotePath := h.storageClient.RelativePath(*res.FileURL)
		if err := h.storageClient.DeleteFile(c.Request.Context(), remotePath); err != nil {
			h.logger.Warn("failed to delete resource file",
				"resourceId", id,
				"path", remotePath,
				"error", err)
		}
	}

	response.Success(c, http.StatusOK, true, "Resource deleted", nil)
}

func (h *Handler) readFileUpload(c *gin.Context, input *CreateInput) error {
	if err := c.Request.ParseMultipartForm(25 << 20); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "failed to parse multipart form", err)
		return err
	}

	input.Title = c.PostForm("title")
	input.Kind = types.ResourceKindFile

	if desc := strings.TrimSpace(c.PostForm("description")); desc != "" {
		input.Description = &desc
	}

	if raw := strings.TrimSpace(c.PostForm("lessonId")); raw != "" {
		lessonID, err := uuid.Parse(raw)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
			return err
		}
		input.LessonID = &lessonID
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "file is required for file resources", err)
		return err
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	randomName := fmt.Sprintf("%d_%d%s", time.Now().Unix(), time.Now().Nanosecond(), ext)
	remotePath := fmt.Sprintf("%s/resources/%s", input.CourseID, randomName)

	cdnURL, err := h.storageClient.UploadStream(c.Request.Context(), remotePath, file, header.Header.Get("Content-Type"))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to upload to storage", err)
		return err
	}

	fileName := header.Filename
	fileSize := header.Size
	fileType := header.Header.Get("Content-Type")

	input.FileURL = &cdnURL
	input.FileName = &fileName
	input.FileSize = &fileSize
	if fileType != "" {
		input.FileType = &fileType
	}

	return nil
}

func (h *Handler) readURLPayload(c *gin.Context, input *CreateInput) error {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		LessonID    *string `json:"lessonId"`
		ExternalURL string  `json:"externalUrl" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid resource payload", err)
		return err
	}

	parsed, err := url.ParseRequestURI(strings.TrimSpace(req.ExternalURL))
	if err != nil || parsed.Host == "" {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "externalUrl must be a valid URL", err)
		return errors.New("invalid external url")
	}

	input.Title = req.Title
	input.Kind = types.ResourceKindURL
	input.Description = req.Description
	externalURL := parsed.String()
	input.ExternalURL = &externalURL

	if req.LessonID != nil && strings.TrimSpace(*req.LessonID) != "" {
		lessonID, err := uuid.Parse(*req.LessonID)
		if err != nil {
			response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "invalid lesson id", err)
			return err
		}
		input.LessonID = &lessonID
	}

	return nil
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, ErrResourceNotFound):
		status = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, course.ErrCourseNotFound):
		status = http.StatusNotFound
		message = "Course not found"
	case errors.Is(err, lesson.ErrLessonNotFound):
		status = http.StatusNotFound
		message = "Lesson not found"
	case errors.Is(err, ErrTitleRequired):
		status = http.StatusBadRequest
		message = "Resource title is required"
	case errors.Is(err, ErrInvalidKind):
		status = http.StatusBadRequest
		message = "Resource kind must be file or url"
	case errors.Is(err, ErrURLRequired):
		status = http.StatusBadRequest
		message = "External URL is required for url resources"
	case errors.Is(err, ErrFileRequired):
		status = http.StatusBadRequest
		message = "File is required for file resources"
	}

	response.ErrorWithLog(h.logger, c, status, message, err)
}
