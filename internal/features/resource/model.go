package resource

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// Resource is a downloadable file or external link attached to a course,
// optionally scoped to a single lesson. A NULL lesson id means the
// resource is course-level and visible under every lesson of the course.
type Resource struct {
	types.BaseModel

	CourseID    uuid.UUID          `gorm:"type:uuid;not null;column:course_id;index" json:"courseId"`
	LessonID    *uuid.UUID         `gorm:"type:uuid;column:lesson_id;index" json:"lessonId,omitempty"`
	Title       string             `gorm:"type:varchar(120);not null" json:"title"`
	Description *string            `gorm:"type:varchar(400)" json:"description,omitempty"`
	Kind        types.ResourceKind `gorm:"type:varchar(10);not null" json:"kind"`

	FileURL  *string `gorm:"type:text;column:file_url" json:"fileUrl,omitempty"`
	FileName *string `gorm:"type:varchar(255);column:file_name" json:"fileName,omitempty"`
	FileSize *int64  `gorm:"column:file_size" json:"fileSize,omitempty"`
	FileType *string `gorm:"type:varchar(120);column:file_type" json:"fileType,omitempty"`

	ExternalURL *string `gorm:"type:text;column:external_url" json:"externalUrl,omitempty"`

	UploadedBy uuid.UUID `gorm:"type:uuid;not null;column:uploaded_by" json:"uploadedBy"`
}

// TableName overrides the default table name.
func (Resource) TableName() string { return "resources" }

// CreateInput carries data for creating a new resource.
type CreateInput struct {
	CourseID    uuid.UUID
	LessonID    *uuid.UUID
	Title       string
	Description *string
	Kind        types.ResourceKind
	FileURL     *string
	FileName    *string
	FileSize    *int64
	FileType    *string
	ExternalURL *string
	UploadedBy  uuid.UUID
}

// ResolveVisible returns the resources a viewer should see. With a
// lesson id the result is that lesson's resources plus the course-level
// ones, never resources scoped to a different lesson. Without one, every
// resource of the course is returned. The resolver performs no auth
// checks.
func ResolveVisible(db *gorm.DB, courseID uuid.UUID, lessonID *uuid.UUID) ([]Resource, error) {
	query := db.Where("course_id = ?", courseID)

	if lessonID != nil {
		query = query.Where("lesson_id = ? OR lesson_id IS NULL", *lessonID)
	}

	var resources []Resource
	err := query.Order("created_at DESC").Find(&resources).Error
	return resources, err
}

// Get retrieves a resource by ID.
func Get(db *gorm.DB, id uuid.UUID) (Resource, error) {
	var res Resource
	if err := db.First(&res, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return res, ErrResourceNotFound
		}
		return res, err
	}
	return res, nil
}

// GetInCourse retrieves a resource and verifies it belongs to the course.
// A resource owned by a different course reads as not found.
func GetInCourse(db *gorm.DB, courseID, id uuid.UUID) (Resource, error) {
	res, err := Get(db, id)
	if err != nil {
		return res, err
	}
	if res.CourseID != courseID {
		return Resource{}, ErrResourceNotFound
	}
	return res, nil
}

// Create inserts a new resource row.
func Create(db *gorm.DB, input CreateInput) (Resource, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Resource{}, ErrTitleRequired
	}
	if !input.Kind.Valid() {
		return Resource{}, ErrInvalidKind
	}

	switch input.Kind {
	case types.ResourceKindURL:
		if input.ExternalURL == nil || strings.TrimSpace(*input.ExternalURL) == "" {
			return Resource{}, ErrURLRequired
		}
	case types.ResourceKindFile:
		if input.FileURL == nil || strings.TrimSpace(*input.FileURL) == "" {
			return Resource{}, ErrFileRequired
		}
	}

	res := Resource{
		CourseID:    input.CourseID,
		LessonID:    input.LessonID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Kind:        input.Kind,
		FileURL:     input.FileURL,
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		FileType:    input.FileType,
		ExternalURL: input.ExternalURL,
		UploadedBy:  input.UploadedBy,
	}

	if err := db.Create(&res).Error; err != nil {
		return Resource{}, err
	}

	return res, nil
}

// Delete removes a resource row from the given course.
func Delete(db *gorm.DB, courseID, id uuid.UUID) error {
	result := db.Delete(&Resource{}, "id = ? AND course_id = ?", id, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}
