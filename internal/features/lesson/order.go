package lesson

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/pkg/apperrors"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// swapPlan holds the order values two lessons should receive to trade
// display positions.
type swapPlan struct {
	firstID     uuid.UUID
	firstOrder  int
	secondID    uuid.UUID
	secondOrder int
}

// planSwap locates the lesson in the ordered slice and pairs it with its
// neighbor in the move direction. ok is false for boundary moves, which
// leave the sequence unchanged.
func planSwap(lessons []Lesson, lessonID uuid.UUID, direction types.ReorderDirection) (swapPlan, bool, error) {
	if !direction.Valid() {
		return swapPlan{}, false, ErrInvalidDirection
	}

	idx := -1
	for i := range lessons {
		if lessons[i].ID == lessonID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return swapPlan{}, false, ErrLessonNotFound
	}

	neighbor := idx - 1
	if direction == types.ReorderDown {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(lessons) {
		return swapPlan{}, false, nil
	}

	return swapPlan{
		firstID:     lessons[idx].ID,
		firstOrder:  lessons[neighbor].Order,
		secondID:    lessons[neighbor].ID,
		secondOrder: lessons[idx].Order,
	}, true, nil
}

// Reorder moves a lesson one position up or down within its course by
// swapping stored order values with its neighbor. Both updates run in one
// transaction so a failed swap leaves the course untouched. The returned
// slice is the course's lessons in their resulting display order.
func Reorder(db *gorm.DB, courseID, lessonID uuid.UUID, direction types.ReorderDirection) ([]Lesson, error) {
	lessons, err := GetByCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	plan, ok, err := planSwap(lessons, lessonID, direction)
	if err != nil {
		return nil, err
	}
	if !ok {
		return lessons, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := applyOrder(tx, plan.firstID, plan.firstOrder); err != nil {
			return err
		}
		return applyOrder(tx, plan.secondID, plan.secondOrder)
	})
	if err != nil {
		return nil, err
	}

	return GetByCourse(db, courseID)
}

func applyOrder(tx *gorm.DB, id uuid.UUID, order int) error {
	result := tx.Model(&Lesson{}).Where("id = ?", id).Update("order", order)
	if result.Error != nil {
		err := fmt.Errorf("%w: %v", ErrSwapIncomplete, result.Error)
		return apperrors.Wrap(err, "lesson order swap did not apply", http.StatusConflict, apperrors.ErrPartialFailure)
	}
	if result.RowsAffected == 0 {
		return apperrors.New("lesson order swap did not apply", http.StatusConflict, apperrors.ErrPartialFailure, ErrSwapIncomplete)
	}
	return nil
}

// AssignOrder resolves the order value for a new lesson. A requested
// non-negative value is used verbatim; otherwise the lesson is appended
// after the course's current maximum.
func AssignOrder(db *gorm.DB, courseID uuid.UUID, requested *int) (int, error) {
	if requested != nil {
		if *requested < 0 {
			return 0, ErrOrderInvalid
		}
		return *requested, nil
	}

	var maxOrder int
	err := db.Model(&Lesson{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(\"order\"), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder < 0 {
		maxOrder = 0
	}

	return maxOrder + 1, nil
}
