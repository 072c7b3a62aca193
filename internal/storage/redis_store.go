package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key，均加上配置的前缀
	totalKey     = "score:total"
	cardOrderKey = "pref:card_order"
	roundsKey    = "rounds:recent"
)

// applyScoreScript 原子地累加得分并截断到 0
var applyScoreScript = redis.NewScript(`
local v = tonumber(redis.call('GET', KEYS[1]) or '0') + tonumber(ARGV[1])
if v < 0 then v = 0 end
redis.call('SET', KEYS[1], v)
return v
`)

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (rs *RedisStore) key(name string) string {
	return rs.prefix + name
}

// --- 累计得分 ---

// ApplyScore 更新累计得分
func (rs *RedisStore) ApplyScore(ctx context.Context, score int, won bool) (int, error) {
	delta := score
	if !won {
		delta = -score
	}
	total, err := applyScoreScript.Run(ctx, rs.client, []string{rs.key(totalKey)}, delta).Int()
	if err != nil {
		return 0, fmt.Errorf("更新累计得分失败: %w", err)
	}
	return total, nil
}

// Total 读取累计得分，不存在时为 0
func (rs *RedisStore) Total(ctx context.Context) (int, error) {
	total, err := rs.client.Get(ctx, rs.key(totalKey)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return total, err
}

// --- 理牌偏好 ---

// SetCardOrder 保存理牌顺序
func (rs *RedisStore) SetCardOrder(ctx context.Context, order CardOrder) error {
	return rs.client.Set(ctx, rs.key(cardOrderKey), string(order), 0).Err()
}

// CardOrder 读取理牌顺序，未设置时从小到大
func (rs *RedisStore) CardOrder(ctx context.Context) (CardOrder, error) {
	v, err := rs.client.Get(ctx, rs.key(cardOrderKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return OrderAsc, nil
		}
		return OrderAsc, err
	}
	return ParseCardOrder(v)
}

// --- 对局记录 ---

// RecordRound 保存一局记录，只保留最近 maxRecentRounds 局
func (rs *RedisStore) RecordRound(ctx context.Context, rec RoundRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化对局记录失败: %w", err)
	}

	key := rs.key(roundsKey)
	pipe := rs.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxRecentRounds-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentRounds 读取最近 limit 局记录
func (rs *RedisStore) RecentRounds(ctx context.Context, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	items, err := rs.client.LRange(ctx, rs.key(roundsKey), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]RoundRecord, 0, len(items))
	for _, item := range items {
		var rec RoundRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("反序列化对局记录失败: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
