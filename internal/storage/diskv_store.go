package storage

import (
	"fmt"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per slot under a base directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{basePath: basePath}
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.d = diskv.New(diskv.Options{
		BasePath:          s.basePath,
		AdvancedTransform: slotToPathTransform,
		InverseTransform:  pathToSlotTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}

func (s *DiskvStore) Load(slot string) ([]byte, bool, error) {
	if s.d == nil {
		return nil, false, ErrNotInitialized
	}
	if !s.d.Has(slot) {
		return nil, false, nil
	}
	val, err := s.d.Read(slot)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return val, true, nil
}

func (s *DiskvStore) Save(slot string, blob []byte) error {
	if s.d == nil {
		return ErrNotInitialized
	}
	if err := s.d.Write(slot, blob); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}

func (s *DiskvStore) Slots() ([]string, error) {
	if s.d == nil {
		return nil, ErrNotInitialized
	}
	var slots []string
	for key := range s.d.Keys(nil) {
		slots = append(slots, key)
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}

// Slots live directly under the base path.
func slotToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToSlotTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
