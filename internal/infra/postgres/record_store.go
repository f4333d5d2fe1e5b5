package postgres

import (
	"context"
	"errors"
	"fmt"

	"countdown-quiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RecordStore keeps named records in the records table. Data is stored as
// text, not JSONB, so a corrupt record can still be read back and recovered.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

func (s *RecordStore) Load(ctx context.Context, name string) ([]byte, error) {
	var data string
	err := s.pool.QueryRow(ctx, `SELECT data FROM records WHERE name=$1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", name, err)
	}
	return []byte(data), nil
}

func (s *RecordStore) Save(ctx context.Context, name string, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO records (name, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("save record %s: %w", name, err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, name string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM records WHERE name=$1`, name); err != nil {
		return fmt.Errorf("delete record %s: %w", name, err)
	}
	return nil
}
