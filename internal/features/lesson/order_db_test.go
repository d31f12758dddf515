package lesson

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/testutil"
	"github.com/learnloop/learnloop-server-go/pkg/apperrors"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

func TestReorderSwapsOrderValues(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	crs := course.Course{Title: "Ordering"}
	require.NoError(t, tx.Create(&crs).Error)

	a := Lesson{CourseID: crs.ID, Title: "Lesson A", Order: 1}
	b := Lesson{CourseID: crs.ID, Title: "Lesson B", Order: 2}
	c := Lesson{CourseID: crs.ID, Title: "Lesson C", Order: 3}
	require.NoError(t, tx.Create(&a).Error)
	require.NoError(t, tx.Create(&b).Error)
	require.NoError(t, tx.Create(&c).Error)

	lessons, err := Reorder(tx, crs.ID, b.ID, types.ReorderUp)
	require.NoError(t, err)
	require.Len(t, lessons, 3)

	// Order values are swapped between B and A, not relabeled 1..n.
	byID := map[uuid.UUID]int{}
	for _, l := range lessons {
		byID[l.ID] = l.Order
	}
	assert.Equal(t, 2, byID[a.ID])
	assert.Equal(t, 1, byID[b.ID])
	assert.Equal(t, 3, byID[c.ID])

	// B now sorts first.
	assert.Equal(t, b.ID, lessons[0].ID)
}

func TestReorderBoundaryNoOp(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	crs := course.Course{Title: "Boundaries"}
	require.NoError(t, tx.Create(&crs).Error)

	first := Lesson{CourseID: crs.ID, Title: "First", Order: 1}
	last := Lesson{CourseID: crs.ID, Title: "Last", Order: 2}
	require.NoError(t, tx.Create(&first).Error)
	require.NoError(t, tx.Create(&last).Error)

	lessons, err := Reorder(tx, crs.ID, first.ID, types.ReorderUp)
	require.NoError(t, err)
	assert.Equal(t, 1, lessons[0].Order)
	assert.Equal(t, 2, lessons[1].Order)

	lessons, err = Reorder(tx, crs.ID, last.ID, types.ReorderDown)
	require.NoError(t, err)
	assert.Equal(t, 1, lessons[0].Order)
	assert.Equal(t, 2, lessons[1].Order)
}

func TestSwapFailureCarriesPartialFailureCode(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	// Updating a row that does not exist leaves the swap half applied.
	err := applyOrder(tx, uuid.New(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSwapIncomplete)
	assert.True(t, apperrors.Is(err, apperrors.ErrPartialFailure))
}

func TestAssignOrderAppendsAfterMax(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	crs := course.Course{Title: "Appending"}
	require.NoError(t, tx.Create(&crs).Error)

	// Empty course starts at 1.
	order, err := AssignOrder(tx, crs.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, order)

	require.NoError(t, tx.Create(&Lesson{CourseID: crs.ID, Title: "Lesson", Order: 7}).Error)

	order, err = AssignOrder(tx, crs.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, order)
}

func TestAssignOrderUsesRequestedVerbatim(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	crs := course.Course{Title: "Verbatim"}
	require.NoError(t, tx.Create(&crs).Error)
	require.NoError(t, tx.Create(&Lesson{CourseID: crs.ID, Title: "Lesson", Order: 3}).Error)

	// Duplicate order values are allowed, no collision check.
	requested := 3
	order, err := AssignOrder(tx, crs.ID, &requested)
	require.NoError(t, err)
	assert.Equal(t, 3, order)

	negative := -1
	_, err = AssignOrder(tx, crs.ID, &negative)
	assert.ErrorIs(t, err, ErrOrderInvalid)
}
