package redis

import (
	"context"
	"errors"
	"fmt"

	"countdown-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RecordStore keeps named records as plain Redis strings without expiry.
type RecordStore struct {
	client *redis.Client
}

func NewRecordStore(client *redis.Client) *RecordStore {
	return &RecordStore{client: client}
}

func (s *RecordStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", name, err)
	}
	return data, nil
}

func (s *RecordStore) Save(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("set record %s: %w", name, err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("delete record %s: %w", name, err)
	}
	return nil
}

func (s *RecordStore) key(name string) string {
	return "trivia:record:" + name
}
