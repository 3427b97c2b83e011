package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"dealmatch/internal/model"
)

// DecodeInvestors reads a JSON array of investor records.
func DecodeInvestors(r io.Reader) ([]model.Investor, error) {
	var out []model.Investor
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode investors: %w", err)
	}
	return out, nil
}

// LoadInvestorsFile reads a JSON array of investor records from path.
func LoadInvestorsFile(path string) ([]model.Investor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeInvestors(f)
}
