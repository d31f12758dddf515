package resource

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/testutil"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

func seedScopedResources(t *testing.T, tx *gorm.DB) (courseID, lesson1, lesson2, scopedID, courseWideID uuid.UUID) {
	t.Helper()

	crs := course.Course{Title: "Scoping"}
	require.NoError(t, tx.Create(&crs).Error)

	l1 := lesson.Lesson{CourseID: crs.ID, Title: "Lesson One", Order: 1}
	l2 := lesson.Lesson{CourseID: crs.ID, Title: "Lesson Two", Order: 2}
	require.NoError(t, tx.Create(&l1).Error)
	require.NoError(t, tx.Create(&l2).Error)

	uploader := uuid.New()
	externalURL := "https://example.com/reading"

	scoped, err := Create(tx, CreateInput{
		CourseID:    crs.ID,
		LessonID:    &l1.ID,
		Title:       "Lesson One Notes",
		Kind:        types.ResourceKindURL,
		ExternalURL: &externalURL,
		UploadedBy:  uploader,
	})
	require.NoError(t, err)

	courseWide, err := Create(tx, CreateInput{
		CourseID:    crs.ID,
		Title:       "Course Syllabus",
		Kind:        types.ResourceKindURL,
		ExternalURL: &externalURL,
		UploadedBy:  uploader,
	})
	require.NoError(t, err)

	return crs.ID, l1.ID, l2.ID, scoped.ID, courseWide.ID
}

func resourceIDs(resources []Resource) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestResolveVisibleLessonScope(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &Resource{})
	tx := testutil.Tx(t, db)

	courseID, lesson1, lesson2, scopedID, courseWideID := seedScopedResources(t, tx)

	// Under its own lesson: scoped resource plus the course-wide one.
	visible, err := ResolveVisible(tx, courseID, &lesson1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{scopedID, courseWideID}, resourceIDs(visible))

	// Under a sibling lesson: only the course-wide resource.
	visible, err = ResolveVisible(tx, courseID, &lesson2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{courseWideID}, resourceIDs(visible))
}

func TestResolveVisibleCourseScope(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &Resource{})
	tx := testutil.Tx(t, db)

	courseID, _, _, scopedID, courseWideID := seedScopedResources(t, tx)

	// No lesson filter returns everything in the course.
	visible, err := ResolveVisible(tx, courseID, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{scopedID, courseWideID}, resourceIDs(visible))

	// A different course sees nothing.
	visible, err = ResolveVisible(tx, uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestDeleteScopedToCourse(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &Resource{})
	tx := testutil.Tx(t, db)

	courseID, _, _, scopedID, _ := seedScopedResources(t, tx)

	// A different course cannot see or delete the resource.
	_, err := GetInCourse(tx, uuid.New(), scopedID)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	err = Delete(tx, uuid.New(), scopedID)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	var count int64
	require.NoError(t, tx.Model(&Resource{}).Where("id = ?", scopedID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, Delete(tx, courseID, scopedID))
	require.NoError(t, tx.Model(&Resource{}).Where("id = ?", scopedID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateValidation(t *testing.T) {
	db := testutil.DB(t, &course.Course{}, &lesson.Lesson{}, &Resource{})
	tx := testutil.Tx(t, db)

	_, err := Create(tx, CreateInput{
		CourseID:   uuid.New(),
		Title:      "",
		Kind:       types.ResourceKindURL,
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = Create(tx, CreateInput{
		CourseID:   uuid.New(),
		Title:      "No URL",
		Kind:       types.ResourceKindURL,
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrURLRequired)

	_, err = Create(tx, CreateInput{
		CourseID:   uuid.New(),
		Title:      "No File",
		Kind:       types.ResourceKindFile,
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrFileRequired)

	_, err = Create(tx, CreateInput{
		CourseID:   uuid.New(),
		Title:      "Bad Kind",
		Kind:       types.ResourceKind("blob"),
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrInvalidKind)
}
