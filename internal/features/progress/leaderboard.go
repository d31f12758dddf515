package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/pkg/cache"
)

const (
	pointsPerLesson     = 10
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = time.Minute

	// leaderboardCacheSize is the ranking depth kept in the cache. One
	// fixed-depth entry serves every request limit, so a small first
	// request cannot shorten what later requests see.
	leaderboardCacheSize = 100
)

// LeaderboardEntry is one ranked row of the completion leaderboard.
type LeaderboardEntry struct {
	UserID           uuid.UUID `json:"userId"`
	FullName         string    `json:"fullName"`
	CompletedLessons int       `json:"completedLessons"`
	Points           int       `json:"points"`
}

// Leaderboard ranks users by completion points, most points first with
// ties broken by name. Results are served from the cache when one is
// configured; a cache miss or disabled cache falls through to the
// database.
func Leaderboard(ctx context.Context, db *gorm.DB, cacheClient cache.Client, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > leaderboardCacheSize {
		limit = leaderboardCacheSize
	}

	if cacheClient != nil {
		var cached []LeaderboardEntry
		if err := cacheClient.GetJSON(ctx, leaderboardCacheKey, &cached); err == nil && len(cached) > 0 {
			return clipEntries(cached, limit), nil
		}
	}

	var rows []struct {
		UserID           uuid.UUID
		FullName         string
		CompletedLessons int
	}

	err := db.Table("lesson_completions").
		Select("users.id AS user_id, users.full_name, COUNT(*) AS completed_lessons").
		Joins("JOIN users ON users.id = lesson_completions.user_id").
		Where("lesson_completions.completed = ?", true).
		Group("users.id, users.full_name").
		Order("completed_lessons DESC, users.full_name ASC").
		Limit(leaderboardCacheSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			UserID:           row.UserID,
			FullName:         row.FullName,
			CompletedLessons: row.CompletedLessons,
			Points:           row.CompletedLessons * pointsPerLesson,
		})
	}

	if cacheClient != nil && len(entries) > 0 {
		// Best effort, the next request recomputes on miss.
		_ = cacheClient.SetJSON(ctx, leaderboardCacheKey, entries, leaderboardCacheTTL)
	}

	return clipEntries(entries, limit), nil
}

func clipEntries(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	if limit < len(entries) {
		return entries[:limit]
	}
	return entries
}

// InvalidateLeaderboard drops the cached ranking after a completion
// toggle.
func InvalidateLeaderboard(ctx context.Context, cacheClient cache.Client) {
	if cacheClient == nil {
		return
	}
	_ = cacheClient.Delete(ctx, leaderboardCacheKey)
}
