package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	model "waste-tender-bidding/internal/models"
	"waste-tender-bidding/internal/tendererrors"
)

// Storage keys for the persisted platform state.
const (
	KeyWasteTenders      = "wasteTenders"
	KeyRecyclerCount     = "recyclerCount"
	KeyMunicipalityCount = "municipalityCount"
)

// TenderStore persists the authoritative tender list and display counters as
// JSON values in a KVStore.
type TenderStore struct {
	kv KVStore
}

// NewTenderStore creates a TenderStore over the given key-value store
func NewTenderStore(kv KVStore) *TenderStore {
	return &TenderStore{kv: kv}
}

// LoadTenders reads the tender list. A missing key yields (nil, false, nil)
// so the caller can decide to seed.
func (s *TenderStore) LoadTenders() ([]model.Tender, bool, error) {
	raw, found, err := s.kv.Get(KeyWasteTenders)
	if err != nil {
		return nil, false, fmt.Errorf("load tenders: %w: %v", tendererrors.ErrStorageUnavailable, err)
	}
	if !found {
		return nil, false, nil
	}

	var tenders []model.Tender
	if err := json.Unmarshal([]byte(raw), &tenders); err != nil {
		return nil, false, fmt.Errorf("load tenders: corrupt snapshot: %w", err)
	}
	return tenders, true, nil
}

// SaveTenders writes the full tender list back as the authoritative snapshot
func (s *TenderStore) SaveTenders(tenders []model.Tender) error {
	data, err := json.Marshal(tenders)
	if err != nil {
		return fmt.Errorf("save tenders: marshal: %w", err)
	}
	if err := s.kv.Set(KeyWasteTenders, string(data)); err != nil {
		return fmt.Errorf("save tenders: %w: %v", tendererrors.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadCounter reads one of the display-only integer counters. Missing or
// malformed values default to zero.
func (s *TenderStore) LoadCounter(key string) (int, error) {
	raw, found, err := s.kv.Get(key)
	if err != nil {
		return 0, fmt.Errorf("load counter %s: %w: %v", key, tendererrors.ErrStorageUnavailable, err)
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SaveCounter writes one of the display-only integer counters
func (s *TenderStore) SaveCounter(key string, n int) error {
	if err := s.kv.Set(key, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("save counter %s: %w: %v", key, tendererrors.ErrStorageUnavailable, err)
	}
	return nil
}

// Reset removes the persisted snapshot and counters, forcing a reseed on the
// next startup.
func (s *TenderStore) Reset() error {
	for _, key := range []string{KeyWasteTenders, KeyRecyclerCount, KeyMunicipalityCount} {
		if err := s.kv.Remove(key); err != nil {
			return fmt.Errorf("reset: %w: %v", tendererrors.ErrStorageUnavailable, err)
		}
	}
	return nil
}
