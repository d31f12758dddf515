package lesson

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/pkg/pagination"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// maxContentLen caps lesson body size in runes.
const maxContentLen = 50000

// Lesson represents a lesson within a course.
type Lesson struct {
	types.BaseModel

	CourseID uuid.UUID `gorm:"type:uuid;not null;column:course_id;index" json:"courseId"`
	Title    string    `gorm:"type:varchar(120);not null" json:"title"`
	Content  string    `gorm:"type:text;not null;default:''" json:"content"`
	VideoURL *string   `gorm:"type:text;column:video_url" json:"videoUrl,omitempty"`
	Order    int       `gorm:"type:int;not null;default:0" json:"order"`
	Section  *string   `gorm:"type:varchar(120)" json:"section,omitempty"`
}

// TableName overrides the default table name.
func (Lesson) TableName() string { return "lessons" }

// ListFilters defines lesson query filters.
type ListFilters struct {
	CourseID uuid.UUID
	Keyword  string
}

// CreateInput carries data for creating a new lesson.
type CreateInput struct {
	CourseID uuid.UUID
	Title    string
	Content  string
	VideoURL *string
	Order    *int
	Section  *string
}

// UpdateInput captures mutable lesson fields.
type UpdateInput struct {
	Title            *string
	Content          *string
	VideoURLProvided bool
	VideoURL         *string
	OrderProvided    bool
	Order            *int
	SectionProvided  bool
	Section          *string
}

// List retrieves paginated lessons in display order.
func List(db *gorm.DB, filters ListFilters, params pagination.Params) ([]Lesson, int64, error) {
	query := db.Model(&Lesson{}).Where("course_id = ?", filters.CourseID)

	if filters.Keyword != "" {
		keyword := "%" + strings.ToLower(filters.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, total, err
	}

	var lessons []Lesson
	err := query.
		Order("\"order\" ASC, title ASC, created_at ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&lessons).Error

	return lessons, total, err
}

// Get retrieves a lesson by ID.
func Get(db *gorm.DB, id uuid.UUID) (Lesson, error) {
	var lesson Lesson
	if err := db.First(&lesson, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return lesson, ErrLessonNotFound
		}
		return lesson, err
	}
	return lesson, nil
}

// GetInCourse retrieves a lesson and verifies it belongs to the course.
// A lesson owned by a different course reads as not found.
func GetInCourse(db *gorm.DB, courseID, id uuid.UUID) (Lesson, error) {
	lesson, err := Get(db, id)
	if err != nil {
		return lesson, err
	}
	if lesson.CourseID != courseID {
		return Lesson{}, ErrLessonNotFound
	}
	return lesson, nil
}

// GetByCourse retrieves all lessons for a course in display order.
// Ties on order resolve by title then creation time so the sequence is
// deterministic even with duplicate order values.
func GetByCourse(db *gorm.DB, courseID uuid.UUID) ([]Lesson, error) {
	var lessons []Lesson
	err := db.Where("course_id = ?", courseID).
		Order("\"order\" ASC, title ASC, created_at ASC").
		Find(&lessons).Error
	return lessons, err
}

// Create inserts a new lesson. When no order is requested the lesson is
// appended after the course's current highest order value.
func Create(db *gorm.DB, input CreateInput) (Lesson, error) {
	trimmedTitle := strings.TrimSpace(input.Title)
	if trimmedTitle == "" {
		return Lesson{}, ErrTitleRequired
	}
	if titleLen := utf8.RuneCountInString(trimmedTitle); titleLen < 3 || titleLen > 120 {
		return Lesson{}, ErrTitleLength
	}

	if utf8.RuneCountInString(input.Content) > maxContentLen {
		return Lesson{}, ErrContentTooLong
	}

	if input.Order != nil && *input.Order < 0 {
		return Lesson{}, ErrOrderInvalid
	}

	var section *string
	if input.Section != nil {
		s := strings.TrimSpace(*input.Section)
		if s != "" {
			section = &s
		}
	}

	var videoURL *string
	if input.VideoURL != nil {
		u := strings.TrimSpace(*input.VideoURL)
		if u != "" {
			videoURL = &u
		}
	}

	lesson := Lesson{
		CourseID: input.CourseID,
		Title:    trimmedTitle,
		Content:  input.Content,
		VideoURL: videoURL,
		Section:  section,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := AssignOrder(tx, input.CourseID, input.Order)
		if err != nil {
			return err
		}
		lesson.Order = order

		return tx.Create(&lesson).Error
	})
	if err != nil {
		return Lesson{}, err
	}

	return lesson, nil
}

// Update modifies an existing lesson within the given course.
func Update(db *gorm.DB, courseID, id uuid.UUID, input UpdateInput) (Lesson, error) {
	lesson, err := GetInCourse(db, courseID, id)
	if err != nil {
		return lesson, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return lesson, ErrTitleRequired
		}
		if titleLen := utf8.RuneCountInString(trimmed); titleLen < 3 || titleLen > 120 {
			return lesson, ErrTitleLength
		}
		lesson.Title = trimmed
	}

	if input.Content != nil {
		if utf8.RuneCountInString(*input.Content) > maxContentLen {
			return lesson, ErrContentTooLong
		}
		lesson.Content = *input.Content
	}

	if input.VideoURLProvided {
		if input.VideoURL == nil {
			lesson.VideoURL = nil
		} else {
			trimmed := strings.TrimSpace(*input.VideoURL)
			if trimmed == "" {
				lesson.VideoURL = nil
			} else {
				lesson.VideoURL = &trimmed
			}
		}
	}

	if input.OrderProvided {
		if input.Order != nil {
			if *input.Order < 0 {
				return lesson, ErrOrderInvalid
			}
			lesson.Order = *input.Order
		} else {
			lesson.Order = 0
		}
	}

	if input.SectionProvided {
		if input.Section == nil {
			lesson.Section = nil
		} else {
			trimmed := strings.TrimSpace(*input.Section)
			if trimmed == "" {
				lesson.Section = nil
			} else {
				lesson.Section = &trimmed
			}
		}
	}

	if err := db.Save(&lesson).Error; err != nil {
		return lesson, err
	}

	return lesson, nil
}

// Delete removes a lesson from the given course.
func Delete(db *gorm.DB, courseID, id uuid.UUID) error {
	result := db.Delete(&Lesson{}, "id = ? AND course_id = ?", id, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}
