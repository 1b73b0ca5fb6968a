package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/transitwise/travel-agent/language"
)

func TestGetCreatesDefaultContext(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	sctx, err := store.Get(context.Background(), "fresh")

	assert.NoError(t, err)
	assert.Equal(t, language.English, sctx.Language)
	assert.Empty(t, sctx.LastToolResults)
	assert.Nil(t, sctx.LastMentioned)
}

func TestUpdateOverwritesPerToolName(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	err := store.Update(ctx, "s1", Patch{
		ToolResults: map[string]map[string]any{"findTrips": {"count": 3}},
	})
	assert.NoError(t, err)

	err = store.Update(ctx, "s1", Patch{
		ToolResults: map[string]map[string]any{
			"findTrips":  {"count": 1},
			"getWeather": {"temp": 21},
		},
	})
	assert.NoError(t, err)

	sctx, _ := store.Get(ctx, "s1")
	assert.Equal(t, map[string]any{"count": 1}, sctx.LastToolResults["findTrips"])
	assert.Equal(t, map[string]any{"temp": 21}, sctx.LastToolResults["getWeather"])
}

func TestUpdateLeavesUnpatchedFieldsAlone(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = store.Update(ctx, "s1", Patch{
		Language:  language.German,
		Mentioned: &Entity{Type: "station", Value: "Zürich HB"},
	})
	_ = store.Update(ctx, "s1", Patch{
		ToolResults: map[string]map[string]any{"getStationInfo": {"name": "Zürich HB"}},
	})

	sctx, _ := store.Get(ctx, "s1")
	assert.Equal(t, language.German, sctx.Language)
	assert.Equal(t, "Zürich HB", sctx.LastMentioned.Value)
}

func TestExpiredSessionResets(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Update(ctx, "s1", Patch{Language: language.French})

	now = now.Add(30 * time.Second)
	sctx, _ := store.Get(ctx, "s1")
	assert.Equal(t, language.French, sctx.Language)

	now = now.Add(2 * time.Minute)
	sctx, _ = store.Get(ctx, "s1")
	assert.Equal(t, language.English, sctx.Language, "expired session starts over with defaults")
}

func TestExpiredSessionsAreEvicted(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Update(ctx, "abandoned", Patch{Language: language.German})
	_ = store.Update(ctx, "active", Patch{Language: language.French})

	now = now.Add(2 * time.Minute)
	_, _ = store.Get(ctx, "active")

	store.mu.Lock()
	_, held := store.entries["abandoned"]
	store.mu.Unlock()
	assert.False(t, held, "expired entries are dropped on the next access, not kept until read")
}

func TestDeleteRemovesSession(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = store.Update(ctx, "s1", Patch{Language: language.Italian})
	assert.NoError(t, store.Delete(ctx, "s1"))

	sctx, _ := store.Get(ctx, "s1")
	assert.Equal(t, language.English, sctx.Language)
}

func TestGetReturnsACopy(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = store.Update(ctx, "s1", Patch{
		ToolResults: map[string]map[string]any{"findTrips": {"count": 3}},
	})

	sctx, _ := store.Get(ctx, "s1")
	sctx.LastToolResults["findTrips"] = map[string]any{"count": 99}
	sctx.Language = language.Hindi

	fresh, _ := store.Get(ctx, "s1")
	assert.Equal(t, map[string]any{"count": 3}, fresh.LastToolResults["findTrips"])
	assert.Equal(t, language.English, fresh.Language)
}
