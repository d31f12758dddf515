package course

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/pkg/pagination"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// Course represents a course with an ordered list of lessons.
type Course struct {
	types.BaseModel

	Title       string  `gorm:"type:varchar(100);not null" json:"title"`
	Description *string `gorm:"type:varchar(400)" json:"description,omitempty"`
	Order       int     `gorm:"type:int;not null;default:0" json:"order"`
}

// TableName overrides the default table name.
func (Course) TableName() string { return "courses" }

// ListFilters defines course query filters.
type ListFilters struct {
	Keyword string
}

// CreateInput carries data for creating a new course.
type CreateInput struct {
	Title       string
	Description *string
	Order       *int
}

// UpdateInput captures mutable course fields.
type UpdateInput struct {
	Title         *string
	DescProvided  bool
	Description   *string
	OrderProvided bool
	Order         *int
}

// List retrieves paginated courses ordered by display position then title.
func List(db *gorm.DB, filters ListFilters, params pagination.Params) ([]Course, int64, error) {
	query := db.Model(&Course{})

	if filters.Keyword != "" {
		keyword := "%" + strings.ToLower(filters.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []Course
	err := query.
		Order("\"order\" ASC, title ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&courses).Error

	return courses, total, err
}

// Get retrieves a course by ID.
func Get(db *gorm.DB, id uuid.UUID) (Course, error) {
	var course Course
	if err := db.First(&course, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return course, ErrCourseNotFound
		}
		return course, err
	}
	return course, nil
}

// Create inserts a new course.
func Create(db *gorm.DB, input CreateInput) (Course, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Course{}, ErrTitleRequired
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	}

	course := Course{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Order:       order,
	}

	if err := db.Create(&course).Error; err != nil {
		return Course{}, err
	}

	return course, nil
}

// Update modifies an existing course.
func Update(db *gorm.DB, id uuid.UUID, input UpdateInput) (Course, error) {
	course, err := Get(db, id)
	if err != nil {
		return course, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return course, ErrTitleRequired
		}
		course.Title = strings.TrimSpace(*input.Title)
	}

	if input.DescProvided {
		course.Description = input.Description
	}

	if input.OrderProvided {
		if input.Order != nil {
			course.Order = *input.Order
		} else {
			course.Order = 0
		}
	}

	if err := db.Save(&course).Error; err != nil {
		return course, err
	}

	return course, nil
}
