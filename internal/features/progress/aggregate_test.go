package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
)

func makeLessons(n int) []lesson.Lesson {
	lessons := make([]lesson.Lesson, n)
	for i := range lessons {
		lessons[i].ID = uuid.New()
		lessons[i].Order = i + 1
	}
	return lessons
}

func completionFor(l lesson.Lesson, completed bool) LessonCompletion {
	return LessonCompletion{
		LessonID:  l.ID,
		Completed: completed,
	}
}

func TestComputeProgressEmptyCourse(t *testing.T) {
	courseID := uuid.New()

	prog := ComputeProgress(courseID, nil, nil)

	assert.Equal(t, courseID, prog.CourseID)
	assert.Equal(t, 0, prog.CompletedLessons)
	assert.Equal(t, 0, prog.TotalLessons)
	assert.Equal(t, 0, prog.Percentage)
	assert.Empty(t, prog.LessonProgress)
}

func TestComputeProgressRounding(t *testing.T) {
	lessons := makeLessons(3)

	// 1 of 3 rounds to 33, 2 of 3 rounds to 67.
	one := ComputeProgress(uuid.New(), lessons, []LessonCompletion{
		completionFor(lessons[0], true),
	})
	assert.Equal(t, 33, one.Percentage)

	two := ComputeProgress(uuid.New(), lessons, []LessonCompletion{
		completionFor(lessons[0], true),
		completionFor(lessons[1], true),
	})
	assert.Equal(t, 67, two.Percentage)
}

func TestComputeProgressAbsenceEqualsExplicitFalse(t *testing.T) {
	lessons := makeLessons(4)

	withFalse := ComputeProgress(uuid.New(), lessons, []LessonCompletion{
		completionFor(lessons[0], true),
		completionFor(lessons[1], false),
	})
	withoutFalse := ComputeProgress(uuid.New(), lessons, []LessonCompletion{
		completionFor(lessons[0], true),
	})

	assert.Equal(t, withFalse.CompletedLessons, withoutFalse.CompletedLessons)
	assert.Equal(t, withFalse.Percentage, withoutFalse.Percentage)
	assert.Equal(t, withFalse.LessonProgress, withoutFalse.LessonProgress)
	assert.NotContains(t, withFalse.LessonProgress, lessons[1].ID)
}

func TestComputeProgressAllComplete(t *testing.T) {
	lessons := makeLessons(4)
	records := make([]LessonCompletion, 0, len(lessons))
	for _, l := range lessons {
		records = append(records, completionFor(l, true))
	}

	prog := ComputeProgress(uuid.New(), lessons, records)

	assert.Equal(t, 4, prog.CompletedLessons)
	assert.Equal(t, 100, prog.Percentage)
}

func TestComputeProgressStaleRecordKeepsCounting(t *testing.T) {
	// A completion for a lesson that was later removed still counts; only
	// the denominator tracks the current lesson list.
	lessons := makeLessons(2)
	removed := lesson.Lesson{}
	removed.ID = uuid.New()

	prog := ComputeProgress(uuid.New(), lessons, []LessonCompletion{
		completionFor(lessons[0], true),
		completionFor(removed, true),
	})

	assert.Equal(t, 2, prog.CompletedLessons)
	assert.Equal(t, 2, prog.TotalLessons)
	assert.Equal(t, 100, prog.Percentage)
}

func TestComputeProgressDeterministic(t *testing.T) {
	lessons := makeLessons(5)
	records := []LessonCompletion{
		completionFor(lessons[1], true),
		completionFor(lessons[3], true),
	}

	first := ComputeProgress(uuid.New(), lessons, records)
	second := ComputeProgress(first.CourseID, lessons, records)

	assert.Equal(t, first, second)
}
