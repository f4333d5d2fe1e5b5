package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"countdown-quiz/internal/domain"
)

// DefaultScoresRecord is the record name the high-score list is stored under.
const DefaultScoresRecord = "highscores"

// RecordStorage persists named opaque records (in-memory, Redis, Postgres).
// Load returns domain.ErrRecordNotFound when the record is absent.
type RecordStorage interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// ScoreBoard is the append-only high-score list. Every write rewrites the whole
// record; a single writer is assumed.
type ScoreBoard struct {
	storage RecordStorage
	record  string
}

func NewScoreBoard(storage RecordStorage, record string) *ScoreBoard {
	if record == "" {
		record = DefaultScoresRecord
	}
	return &ScoreBoard{storage: storage, record: record}
}

// List returns the saved records in insertion order. Undecodable data is
// logged and treated as an empty list.
func (b *ScoreBoard) List(ctx context.Context) ([]domain.HighScoreRecord, error) {
	raw, err := b.storage.Load(ctx, b.record)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return []domain.HighScoreRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load high scores: %w", err)
	}

	var records []domain.HighScoreRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("%v: %v", domain.ErrCorruptScores, err)
		return []domain.HighScoreRecord{}, nil
	}
	if records == nil {
		records = []domain.HighScoreRecord{}
	}
	return records, nil
}

// Append saves a result under the given initials, upper-cased. Blank initials
// fail with domain.ErrEmptyInitials and nothing is written.
func (b *ScoreBoard) Append(ctx context.Context, initials, percent string) (domain.HighScoreRecord, error) {
	initials = strings.ToUpper(strings.TrimSpace(initials))
	if initials == "" {
		return domain.HighScoreRecord{}, domain.ErrEmptyInitials
	}

	records, err := b.List(ctx)
	if err != nil {
		return domain.HighScoreRecord{}, err
	}
	record := domain.HighScoreRecord{Initials: initials, ScorePercent: percent}
	records = append(records, record)

	data, err := json.Marshal(records)
	if err != nil {
		return domain.HighScoreRecord{}, fmt.Errorf("encode high scores: %w", err)
	}
	if err := b.storage.Save(ctx, b.record, data); err != nil {
		return domain.HighScoreRecord{}, fmt.Errorf("save high scores: %w", err)
	}
	return record, nil
}

// Clear removes every saved record.
func (b *ScoreBoard) Clear(ctx context.Context) error {
	if err := b.storage.Delete(ctx, b.record); err != nil {
		return fmt.Errorf("clear high scores: %w", err)
	}
	return nil
}
