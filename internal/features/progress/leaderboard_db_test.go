package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/course"
	"github.com/learnloop/learnloop-server-go/internal/features/lesson"
	"github.com/learnloop/learnloop-server-go/internal/features/user"
	"github.com/learnloop/learnloop-server-go/internal/testutil"
	"github.com/learnloop/learnloop-server-go/pkg/cache"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

// mapCache is an in-memory cache.Client for tests.
type mapCache struct {
	store map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{store: map[string]string{}}
}

func (m *mapCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.store[key]
	if !ok {
		return "", cache.ErrDisabled
	}
	return value, nil
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.store[key] = fmt.Sprint(value)
	return nil
}

func (m *mapCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (m *mapCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(data), ttl)
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}

func (m *mapCache) Close() error { return nil }

func seedRankedUsers(t *testing.T, tx *gorm.DB) []user.User {
	t.Helper()

	crs, lessons := seedCourse(t, tx, 3)

	users := make([]user.User, 3)
	for i := range users {
		users[i] = user.User{
			FullName: fmt.Sprintf("Learner %d", i+1),
			Email:    fmt.Sprintf("learner%d@example.com", i+1),
			Password: "hashed",
			UserType: types.UserTypeStudent,
			Active:   true,
		}
		require.NoError(t, tx.Create(&users[i]).Error)

		// Learner N completes N lessons.
		for j := 0; j <= i; j++ {
			_, err := SetCompletion(tx, users[i].ID, crs.ID, lessons[j].ID, true)
			require.NoError(t, err)
		}
	}

	return users
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	db := testutil.DB(t, &user.User{}, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	users := seedRankedUsers(t, tx)

	entries, err := Leaderboard(context.Background(), tx, nil, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, users[2].ID, entries[0].UserID)
	assert.Equal(t, 3, entries[0].CompletedLessons)
	assert.Equal(t, 30, entries[0].Points)
	assert.Equal(t, 10, entries[2].Points)
}

func TestLeaderboardCacheServesEveryLimit(t *testing.T) {
	db := testutil.DB(t, &user.User{}, &course.Course{}, &lesson.Lesson{}, &LessonCompletion{})
	tx := testutil.Tx(t, db)

	seedRankedUsers(t, tx)
	cacheClient := newMapCache()

	// A small first request must not shorten the cached ranking.
	entries, err := Leaderboard(context.Background(), tx, cacheClient, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = Leaderboard(context.Background(), tx, cacheClient, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// The second read was served from the cache.
	var cached []LeaderboardEntry
	require.NoError(t, cacheClient.GetJSON(context.Background(), "leaderboard:top", &cached))
	assert.Len(t, cached, 3)

	InvalidateLeaderboard(context.Background(), cacheClient)
	assert.Empty(t, cacheClient.store)
}
