package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"countdown-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches question banks from a backing store (YAML files, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// QuestionRepository caches banks in Redis and falls back to a loader on cache miss.
// Banks are stored as JSON: SET trivia:bank:{bankID} {json} EX ttl
type QuestionRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.cached(ctx, bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := r.cached(ctx, bankID); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.Bank{}, err
		}
		if err := bank.Validate(); err != nil {
			return domain.Bank{}, err
		}

		data, err := json.Marshal(bank)
		if err != nil {
			return domain.Bank{}, err
		}
		if err := r.client.Set(ctx, r.key(bankID), data, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache bank %s: %v", bankID, err)
		}
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *QuestionRepository) cached(ctx context.Context, bankID string) (domain.Bank, bool) {
	data, err := r.client.Get(ctx, r.key(bankID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached bank %s: %v", bankID, err)
		}
		return domain.Bank{}, false
	}
	var bank domain.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, false
	}
	return bank, true
}

func (r *QuestionRepository) key(bankID string) string {
	return "trivia:bank:" + bankID
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
