package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"countdown-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

// BankLoader reads question banks from <dir>/<bankID>.yaml.
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bankID == "" || filepath.Base(bankID) != bankID {
		return domain.Bank{}, fmt.Errorf("%w: invalid id %q", domain.ErrBankNotFound, bankID)
	}

	data, err := os.ReadFile(filepath.Join(l.dir, bankID+".yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("read bank %s: %w", bankID, err)
	}

	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("parse bank %s: %w", bankID, err)
	}
	bank.ID = bankID
	return bank, nil
}
