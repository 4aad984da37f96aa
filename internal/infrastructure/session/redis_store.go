package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "roster:upload:"

// RedisStore keeps parsed uploads in Redis so any replica can take the
// confirmation request.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, upload domain.PendingUpload) error {
	payload, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("marshal upload: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+upload.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save upload %s: %w", upload.ID, err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, uploadID string) (domain.PendingUpload, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+uploadID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PendingUpload{}, domain.ErrUploadNotFound
		}
		return domain.PendingUpload{}, fmt.Errorf("take upload %s: %w", uploadID, err)
	}

	var upload domain.PendingUpload
	if err := json.Unmarshal(payload, &upload); err != nil {
		return domain.PendingUpload{}, fmt.Errorf("unmarshal upload %s: %w", uploadID, err)
	}
	return upload, nil
}

func (s *RedisStore) Delete(ctx context.Context, uploadID string) error {
	if err := s.client.Del(ctx, keyPrefix+uploadID).Err(); err != nil {
		return fmt.Errorf("delete upload %s: %w", uploadID, err)
	}
	return nil
}
