package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"countdown-quiz/internal/domain"
	"countdown-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(map[string]domain.Bank{
			"default": sampleBank(),
		}),
	}
	repo := NewQuestionRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), "default")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(bank.Questions) != 1 || bank.Questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected bank %+v", bank)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("trivia:bank:default") {
		t.Fatalf("expected bank cached in redis")
	}
	if ttl := mr.TTL("trivia:bank:default"); ttl < time.Minute || ttl > 66*time.Second {
		t.Fatalf("expected ttl with up to 10%% jitter, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, _ := repo.GetBank(context.Background(), "default")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Questions[0].Answers[1] != "4" {
		t.Fatalf("cached bank lost its answers: %+v", cached)
	}

	mr.FastForward(2 * time.Minute)
	_, _ = repo.GetBank(context.Background(), "default")
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

func TestQuestionRepositoryPropagatesLoaderErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuestionRepository(newClient(mr), memory.NewStaticBankLoader(nil), time.Minute)
	if _, err := repo.GetBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
	if mr.Exists("trivia:bank:nope") {
		t.Fatalf("expected nothing cached for a missing bank")
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "default",
		Questions: []domain.Question{
			{
				Prompt:       "What is 2 + 2?",
				Answers:      []string{"3", "4", "5", "22"},
				CorrectIndex: 1,
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
