package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/testutil"
)

func seedCourse(t *testing.T, tx *gorm.DB, lessonCount int) (course.Course, []lesson.Lesson) {
	t.Helper()

	crs := course.Course{Title: "Progress Course"}
	require.NoError(t, tx.Create(&crs).Error)

	lessons := make([]lesson.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = lesson.Lesson{CourseID: crs.ID, Title: "Lesson", Order: i + 1}
		require.NoError(t, tx.Create(&lessons[i]).Error)
	}

	return crs, lessons
}

func TestSetCompletionIdempotent(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	crs, lessons := seedCourse(t, tx, 2)
	userID := uuid.New()

	first, err := SetCompletion(tx, userID, crs.ID, lessons[0].ID, true)
	require.NoError(t, err)

	second, err := SetCompletion(tx, userID, crs.ID, lessons[0].ID, true)
	require.NoError(t, err)

	assert.Equal(t, first.CompletedLessons, second.CompletedLessons)
	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Equal(t, first.LessonProgress, second.LessonProgress)

	// Exactly one stored record.
	var count int64
	require.NoError(t, tx.Model(&LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessons[0].ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetCompletionTogglesCompletedAt(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	crs, lessons := seedCourse(t, tx, 1)
	userID := uuid.New()

	_, err := SetCompletion(tx, userID, crs.ID, lessons[0].ID, true)
	require.NoError(t, err)

	var record LessonCompletion
	require.NoError(t, tx.First(&record, "user_id = ? AND lesson_id = ?", userID, lessons[0].ID).Error)
	assert.True(t, record.Completed)
	assert.NotNil(t, record.CompletedAt)

	_, err = SetCompletion(tx, userID, crs.ID, lessons[0].ID, false)
	require.NoError(t, err)

	require.NoError(t, tx.First(&record, "user_id = ? AND lesson_id = ?", userID, lessons[0].ID).Error)
	assert.False(t, record.Completed)
	assert.Nil(t, record.CompletedAt)
}

func TestSetCompletionLessonOutsideCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	crs, _ := seedCourse(t, tx, 1)
	other, otherLessons := seedCourse(t, tx, 1)
	userID := uuid.New()

	_, err := SetCompletion(tx, userID, crs.ID, otherLessons[0].ID, true)
	assert.ErrorIs(t, err, ErrLessonNotInCourse)

	_, err = SetCompletion(tx, userID, other.ID, uuid.New(), true)
	assert.ErrorIs(t, err, lesson.ErrLessonNotFound)
}

func TestProgressEndToEnd(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	crs, lessons := seedCourse(t, tx, 4)
	userID := uuid.New()

	// Complete lessons 1 and 2: 2 of 4 is 50 percent.
	_, err := SetCompletion(tx, userID, crs.ID, lessons[0].ID, true)
	require.NoError(t, err)
	prog, err := SetCompletion(tx, userID, crs.ID, lessons[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 50, prog.Percentage)

	// Un-complete lesson 2: 1 of 4 is 25 percent.
	prog, err = SetCompletion(tx, userID, crs.ID, lessons[1].ID, false)
	require.NoError(t, err)
	assert.Equal(t, 25, prog.Percentage)
	assert.Equal(t, 1, prog.CompletedLessons)

	// Delete lesson 4: 1 of 3 rounds to 33 percent.
	require.NoError(t, lesson.Delete(tx, crs.ID, lessons[3].ID))
	prog, err = GetCourseProgress(tx, userID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, prog.TotalLessons)
	assert.Equal(t, 1, prog.CompletedLessons)
	assert.Equal(t, 33, prog.Percentage)
}

func TestGetAllProgressCoversEveryCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	started, startedLessons := seedCourse(t, tx, 2)
	untouched, _ := seedCourse(t, tx, 3)
	userID := uuid.New()

	_, err := SetCompletion(tx, userID, started.ID, startedLessons[0].ID, true)
	require.NoError(t, err)

	all, err := GetAllProgress(tx, userID, []uuid.UUID{started.ID, untouched.ID})
	require.NoError(t, err)

	require.Contains(t, all, started.ID)
	require.Contains(t, all, untouched.ID)
	assert.Equal(t, 50, all[started.ID].Percentage)
	assert.Equal(t, 0, all[untouched.ID].Percentage)
	assert.Equal(t, 3, all[untouched.ID].TotalLessons)
}
