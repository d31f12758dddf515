package migrations

import "gorm.io/gorm"

func init() {
	// Older schemas allowed duplicate completion rows per tuple and left
	// completed_at set after un-completing. Repair before the unique
	// index lands.
	Register("dedupe_lesson_completions", func(db *gorm.DB) error {
		if !db.Migrator().HasTable("lesson_completions") {
			return nil
		}

		return db.Exec(`
			DELETE FROM lesson_completions a
			USING lesson_completions b
			WHERE a.user_id = b.user_id
			  AND a.course_id = b.course_id
			  AND a.lesson_id = b.lesson_id
			  AND a.created_at < b.created_at
		`).Error
	})

	Register("clear_stale_completed_at", func(db *gorm.DB) error {
		if !db.Migrator().HasTable("lesson_completions") {
			return nil
		}

		return db.Exec(`
			UPDATE lesson_completions
			SET completed_at = NULL
			WHERE completed = false AND completed_at IS NOT NULL
		`).Error
	})
}
