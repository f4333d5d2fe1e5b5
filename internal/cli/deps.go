package cli

import (
	"context"
	"log"
	"time"

	"countdown-quiz/internal/app"
	"countdown-quiz/internal/config"
	"countdown-quiz/internal/infra/file"
	"countdown-quiz/internal/infra/memory"
	pgstore "countdown-quiz/internal/infra/postgres"
	redisstore "countdown-quiz/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// newQuizService builds the quiz service from config. Postgres wins over Redis
// for high scores; Redis, when configured, caches question banks.
func newQuizService(ctx context.Context, cfg config.Config) (*app.QuizService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(memory.SampleBanks())
	switch {
	case pool != nil:
		loader = pgstore.NewBankLoader(pool)
		log.Printf("loading question banks from postgres")
	case cfg.Questions.Dir != "":
		loader = file.NewBankLoader(cfg.Questions.Dir)
		log.Printf("loading question banks from %s", cfg.Questions.Dir)
	default:
		log.Printf("using built-in sample questions")
	}

	bankTTL := config.Duration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, bankTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, bankTTL)
	}

	var records app.RecordStorage
	switch {
	case pool != nil:
		records = pgstore.NewRecordStore(pool)
	case redisClient != nil:
		records = redisstore.NewRecordStore(redisClient)
	default:
		records = memory.NewRecordStore()
	}

	scores := app.NewScoreBoard(records, cfg.Scores.Record)
	return app.NewQuizService(questions, scores, cfg.QuizSettings()), cleanup, nil
}
