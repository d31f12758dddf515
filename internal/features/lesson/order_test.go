package lesson

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/learnloop-server-go/pkg/types"
)

func orderedLessons(orders ...int) []Lesson {
	lessons := make([]Lesson, 0, len(orders))
	for _, o := range orders {
		l := Lesson{Order: o}
		l.ID = uuid.New()
		lessons = append(lessons, l)
	}
	return lessons
}

func TestPlanSwapMiddleMoveUp(t *testing.T) {
	lessons := orderedLessons(1, 2, 3)

	plan, ok, err := planSwap(lessons, lessons[1].ID, types.ReorderUp)
	require.NoError(t, err)
	require.True(t, ok)

	// The moved lesson takes its neighbor's order value and vice versa.
	assert.Equal(t, lessons[1].ID, plan.firstID)
	assert.Equal(t, 1, plan.firstOrder)
	assert.Equal(t, lessons[0].ID, plan.secondID)
	assert.Equal(t, 2, plan.secondOrder)
}

func TestPlanSwapMiddleMoveDown(t *testing.T) {
	lessons := orderedLessons(1, 2, 3)

	plan, ok, err := planSwap(lessons, lessons[1].ID, types.ReorderDown)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, lessons[1].ID, plan.firstID)
	assert.Equal(t, 3, plan.firstOrder)
	assert.Equal(t, lessons[2].ID, plan.secondID)
	assert.Equal(t, 2, plan.secondOrder)
}

func TestPlanSwapBoundaryNoOp(t *testing.T) {
	lessons := orderedLessons(1, 2, 3)

	_, ok, err := planSwap(lessons, lessons[0].ID, types.ReorderUp)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = planSwap(lessons, lessons[2].ID, types.ReorderDown)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlanSwapSingleLesson(t *testing.T) {
	lessons := orderedLessons(1)

	_, ok, err := planSwap(lessons, lessons[0].ID, types.ReorderUp)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = planSwap(lessons, lessons[0].ID, types.ReorderDown)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlanSwapUnknownLesson(t *testing.T) {
	lessons := orderedLessons(1, 2)

	_, _, err := planSwap(lessons, uuid.New(), types.ReorderUp)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestPlanSwapInvalidDirection(t *testing.T) {
	lessons := orderedLessons(1, 2)

	_, _, err := planSwap(lessons, lessons[0].ID, types.ReorderDirection("sideways"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestPlanSwapDuplicateOrders(t *testing.T) {
	// Duplicate order values are allowed; the swap still exchanges the
	// stored values of the two adjacent positions.
	lessons := orderedLessons(5, 5, 7)

	plan, ok, err := planSwap(lessons, lessons[2].ID, types.ReorderUp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, plan.firstOrder)
	assert.Equal(t, 7, plan.secondOrder)
}
