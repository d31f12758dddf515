package lesson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/testutil"
)

func TestGetInCourseRejectsForeignCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	owning := course.Course{Title: "Owning"}
	other := course.Course{Title: "Other"}
	require.NoError(t, tx.Create(&owning).Error)
	require.NoError(t, tx.Create(&other).Error)

	lsn := Lesson{CourseID: owning.ID, Title: "Scoped", Order: 1}
	require.NoError(t, tx.Create(&lsn).Error)

	got, err := GetInCourse(tx, owning.ID, lsn.ID)
	require.NoError(t, err)
	assert.Equal(t, lsn.ID, got.ID)

	_, err = GetInCourse(tx, other.ID, lsn.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestUpdateScopedToCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	owning := course.Course{Title: "Owning"}
	other := course.Course{Title: "Other"}
	require.NoError(t, tx.Create(&owning).Error)
	require.NoError(t, tx.Create(&other).Error)

	lsn := Lesson{CourseID: owning.ID, Title: "Original", Order: 1}
	require.NoError(t, tx.Create(&lsn).Error)

	title := "Hijacked"
	_, err := Update(tx, other.ID, lsn.ID, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrLessonNotFound)

	var stored Lesson
	require.NoError(t, tx.First(&stored, "id = ?", lsn.ID).Error)
	assert.Equal(t, "Original", stored.Title)

	updated, err := Update(tx, owning.ID, lsn.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)
}

func TestDeleteScopedToCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	owning := course.Course{Title: "Owning"}
	other := course.Course{Title: "Other"}
	require.NoError(t, tx.Create(&owning).Error)
	require.NoError(t, tx.Create(&other).Error)

	lsn := Lesson{CourseID: owning.ID, Title: "Scoped", Order: 1}
	require.NoError(t, tx.Create(&lsn).Error)

	err := Delete(tx, other.ID, lsn.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	var count int64
	require.NoError(t, tx.Model(&Lesson{}).Where("id = ?", lsn.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, Delete(tx, owning.ID, lsn.ID))
	require.NoError(t, tx.Model(&Lesson{}).Where("id = ?", lsn.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestContentLengthCap(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &Lesson{})
	tx := testutil.Tx(t, db)

	crs := course.Course{Title: "Content"}
	require.NoError(t, tx.Create(&crs).Error)

	oversized := strings.Repeat("a", maxContentLen+1)

	_, err := Create(tx, CreateInput{CourseID: crs.ID, Title: "Too big", Content: oversized})
	assert.ErrorIs(t, err, ErrContentTooLong)

	lsn, err := Create(tx, CreateInput{CourseID: crs.ID, Title: "Fits", Content: "short"})
	require.NoError(t, err)

	_, err = Update(tx, crs.ID, lsn.ID, UpdateInput{Content: &oversized})
	assert.ErrorIs(t, err, ErrContentTooLong)
}
