package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"countdown-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches question banks from a backing store (YAML files, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// QuestionRepository caches banks with TTL to avoid repeated loads.
type QuestionRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	bank      domain.Bank
	expiresAt time.Time
}

func NewQuestionRepository(loader BankLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

// GetBank returns a validated bank, loading it at most once per TTL window.
func (r *QuestionRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.cached(bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if bank, ok := r.cached(bankID); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.Bank{}, err
		}
		if err := bank.Validate(); err != nil {
			return domain.Bank{}, err
		}

		expiresAt := r.clock().Add(r.ttlWithJitter())
		r.mu.Lock()
		r.cache[bankID] = cachedBank{bank: bank, expiresAt: expiresAt}
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *QuestionRepository) cached(bankID string) (domain.Bank, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[bankID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Bank{}, false
	}
	return entry.bank, true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks map[string]domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
}

// SampleBanks is the built-in question data used when no other source is configured.
func SampleBanks() map[string]domain.Bank {
	return map[string]domain.Bank{
		"default": {
			ID: "default",
			Questions: []domain.Question{
				{
					Prompt:       "This is a randomized question?",
					Answers:      []string{"Correct Answer", "Wrong Answer", "Wrong Answer", "Wrong Answer"},
					CorrectIndex: 0,
				},
			},
		},
	}
}
