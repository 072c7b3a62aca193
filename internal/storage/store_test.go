package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "ddz:"), mr
}

// stores 两种实现跑同一组用例
func stores(t *testing.T) map[string]Store {
	t.Helper()
	rs, _ := newTestRedisStore(t)
	return map[string]Store{
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
}

func TestStore_ApplyScore(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			total, err := store.Total(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, total)

			steps := []struct {
				score int
				won   bool
				want  int
			}{
				{8, true, 8},
				{3, false, 5},
				{2, true, 7},
				{10, false, 0}, // 不低于 0
				{1, false, 0},
				{4, true, 4},
			}
			for _, s := range steps {
				total, err := store.ApplyScore(ctx, s.score, s.won)
				require.NoError(t, err)
				assert.Equal(t, s.want, total)
			}

			total, err = store.Total(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, total)
		})
	}
}

func TestStore_CardOrder(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			order, err := store.CardOrder(ctx)
			require.NoError(t, err)
			assert.Equal(t, OrderAsc, order)

			require.NoError(t, store.SetCardOrder(ctx, OrderDesc))
			order, err = store.CardOrder(ctx)
			require.NoError(t, err)
			assert.Equal(t, OrderDesc, order)
		})
	}
}

func TestStore_RecentRounds(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			rounds, err := store.RecentRounds(ctx, 5)
			require.NoError(t, err)
			assert.Empty(t, rounds)

			for i := range maxRecentRounds + 5 {
				require.NoError(t, store.RecordRound(ctx, RoundRecord{
					RoundID: fmt.Sprintf("r%d", i),
					Mode:    "standard",
					Winner:  i % 3,
					Score:   i,
				}))
			}

			rounds, err = store.RecentRounds(ctx, 3)
			require.NoError(t, err)
			require.Len(t, rounds, 3)
			assert.Equal(t, "r54", rounds[0].RoundID)
			assert.Equal(t, "r53", rounds[1].RoundID)
			assert.Equal(t, 52, rounds[2].Score)

			all, err := store.RecentRounds(ctx, 1000)
			require.NoError(t, err)
			assert.Len(t, all, maxRecentRounds)
			assert.Equal(t, "r5", all[len(all)-1].RoundID)

			none, err := store.RecentRounds(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.ApplyScore(ctx, 6, true)
	require.NoError(t, err)
	require.NoError(t, store.SetCardOrder(ctx, OrderDesc))

	v, err := mr.Get("ddz:score:total")
	require.NoError(t, err)
	assert.Equal(t, "6", v)

	v, err = mr.Get("ddz:pref:card_order")
	require.NoError(t, err)
	assert.Equal(t, "desc", v)
}

func TestRedisStore_BadValues(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("ddz:pref:card_order", "sideways"))
	_, err := store.CardOrder(ctx)
	assert.Error(t, err)

	_, err = mr.Lpush("ddz:rounds:recent", "{not json")
	require.NoError(t, err)
	_, err = store.RecentRounds(ctx, 1)
	assert.Error(t, err)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, "ddz:")

	_, err := store.ApplyScore(context.Background(), 1, true)
	assert.Error(t, err)
}

func TestParseCardOrder(t *testing.T) {
	t.Parallel()

	o, err := ParseCardOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, OrderDesc, o)

	_, err = ParseCardOrder("random")
	assert.Error(t, err)
}
