package progress

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// LessonCompletion is the atomic completion fact for one user and lesson.
// Course progress is always derived from these rows, never stored.
type LessonCompletion struct {
	types.BaseModel

	UserID      uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_user_course_lesson" json:"userId"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null;column:course_id;uniqueIndex:idx_user_course_lesson" json:"courseId"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;column:lesson_id;uniqueIndex:idx_user_course_lesson" json:"lessonId"`
	Completed   bool       `gorm:"type:boolean;not null;default:false" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
}

// TableName overrides the default table name.
func (LessonCompletion) TableName() string { return "lesson_completions" }

// CourseProgress is the derived per-course aggregate for one user.
type CourseProgress struct {
	CourseID         uuid.UUID          `json:"courseId"`
	LessonProgress   map[uuid.UUID]bool `json:"lessonProgress"`
	CompletedLessons int                `json:"completedLessons"`
	TotalLessons     int                `json:"totalLessons"`
	Percentage       int                `json:"percentage"`
}

// ComputeProgress derives a course aggregate from the course's current
// lessons and the user's completion records. A record with
// completed=false aggregates exactly like a missing record, so only
// completed lessons appear in the map. The lesson list defines the
// total; stale records for removed lessons keep counting toward
// completedLessons, they just stop affecting the denominator.
func ComputeProgress(courseID uuid.UUID, lessons []lesson.Lesson, records []LessonCompletion) CourseProgress {
	lessonProgress := make(map[uuid.UUID]bool)
	for _, record := range records {
		if record.Completed {
			lessonProgress[record.LessonID] = true
		}
	}

	completed := len(lessonProgress)
	total := len(lessons)

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(completed) / float64(total)))
	}

	return CourseProgress{
		CourseID:         courseID,
		LessonProgress:   lessonProgress,
		CompletedLessons: completed,
		TotalLessons:     total,
		Percentage:       percentage,
	}
}

// SetCompletion upserts the completion record for one lesson and returns
// the recomputed course aggregate. The upsert keys on the
// (user, course, lesson) tuple so repeated calls with the same value are
// idempotent. A lesson that no longer belongs to the course is an error,
// not a silent success.
func SetCompletion(db *gorm.DB, userID, courseID, lessonID uuid.UUID, completed bool) (CourseProgress, error) {
	lsn, err := lesson.Get(db, lessonID)
	if err != nil {
		return CourseProgress{}, err
	}
	if lsn.CourseID != courseID {
		return CourseProgress{}, ErrLessonNotInCourse
	}

	var completedAt *time.Time
	if completed {
		now := time.Now().UTC()
		completedAt = &now
	}

	record := LessonCompletion{
		UserID:      userID,
		CourseID:    courseID,
		LessonID:    lessonID,
		Completed:   completed,
		CompletedAt: completedAt,
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "course_id"},
			{Name: "lesson_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    completed,
			"completed_at": completedAt,
			"updated_at":   time.Now().UTC(),
		}),
	}).Create(&record).Error
	if err != nil {
		return CourseProgress{}, err
	}

	return GetCourseProgress(db, userID, courseID)
}

// GetCourseProgress returns the derived aggregate for one course.
func GetCourseProgress(db *gorm.DB, userID, courseID uuid.UUID) (CourseProgress, error) {
	lessons, err := lesson.GetByCourse(db, courseID)
	if err != nil {
		return CourseProgress{}, err
	}

	var records []LessonCompletion
	err = db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error
	if err != nil {
		return CourseProgress{}, err
	}

	return ComputeProgress(courseID, lessons, records), nil
}

// GetAllProgress returns the derived aggregate for every course the user
// has records in, plus every course that currently exists.
func GetAllProgress(db *gorm.DB, userID uuid.UUID, courseIDs []uuid.UUID) (map[uuid.UUID]CourseProgress, error) {
	var records []LessonCompletion
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	recordsByCourse := make(map[uuid.UUID][]LessonCompletion)
	for _, record := range records {
		recordsByCourse[record.CourseID] = append(recordsByCourse[record.CourseID], record)
	}

	seen := make(map[uuid.UUID]struct{}, len(courseIDs))
	all := make([]uuid.UUID, 0, len(courseIDs)+len(recordsByCourse))
	for _, id := range courseIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		all = append(all, id)
	}
	for id := range recordsByCourse {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		all = append(all, id)
	}

	result := make(map[uuid.UUID]CourseProgress, len(all))
	for _, courseID := range all {
		lessons, err := lesson.GetByCourse(db, courseID)
		if err != nil {
			return nil, err
		}
		result[courseID] = ComputeProgress(courseID, lessons, recordsByCourse[courseID])
	}

	return result, nil
}

// CountCompleted returns the user's number of completed lessons across
// all courses.
func CountCompleted(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&LessonCompletion{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
