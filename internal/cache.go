package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ResultCache keeps the last successful result of each flow on disk
type ResultCache struct {
	cacheDir string
}

// CacheMetadata stores metadata about the cache
type CacheMetadata struct {
	CacheVersion string    `yaml:"cache_version"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// ResultIndexEntry represents a cached record in the index
type ResultIndexEntry struct {
	ID        string    `yaml:"id"`
	Source    Source    `yaml:"source"`
	Title     string    `yaml:"title"`
	ItemCount int       `yaml:"item_count"`
	CreatedAt time.Time `yaml:"created_at"`
}

// ResultIndex represents the YAML index of all cached records
type ResultIndex struct {
	Results  []ResultIndexEntry `yaml:"results"`
	Metadata CacheMetadata      `yaml:"metadata"`
}

// NewResultCache creates a cache rooted at cacheDir
func NewResultCache(cacheDir string) *ResultCache {
	return &ResultCache{cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists
func (rc *ResultCache) EnsureCacheDir() error {
	return os.MkdirAll(rc.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path
func (rc *ResultCache) GetCacheDir() string {
	return rc.cacheDir
}

// GetIndexPath returns the path to the index YAML file
func (rc *ResultCache) GetIndexPath() string {
	return filepath.Join(rc.cacheDir, "results.yaml")
}

// GetRecordPath returns the path to a record's cache file
func (rc *ResultCache) GetRecordPath(id string) string {
	return filepath.Join(rc.cacheDir, fmt.Sprintf("result_%s.json", id))
}

// LoadIndex loads the index. A missing index is an empty one.
func (rc *ResultCache) LoadIndex() (*ResultIndex, error) {
	data, err := os.ReadFile(rc.GetIndexPath())
	if os.IsNotExist(err) {
		return &ResultIndex{Results: []ResultIndexEntry{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var index ResultIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// SaveIndex saves the index
func (rc *ResultCache) SaveIndex(index *ResultIndex) error {
	if err := rc.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(rc.GetIndexPath(), data, 0644)
}

// SaveRecord writes record and makes it the cached result for its flow,
// replacing the previous one.
func (rc *ResultCache) SaveRecord(record *Record) error {
	if err := rc.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(rc.GetRecordPath(record.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	index, err := rc.LoadIndex()
	if err != nil {
		LogWarn("Rebuilding unreadable result index: %v", err)
		index = &ResultIndex{}
	}

	now := time.Now()
	if index.Metadata.CreatedAt.IsZero() {
		index.Metadata = CacheMetadata{CacheVersion: "1.0", CreatedAt: now}
	}
	index.Metadata.UpdatedAt = now

	entry := ResultIndexEntry{
		ID:        record.ID,
		Source:    record.Options.Source,
		Title:     record.Title(),
		ItemCount: len(record.Result.Items),
		CreatedAt: record.CreatedAt,
	}

	kept := make([]ResultIndexEntry, 0, len(index.Results)+1)
	for _, e := range index.Results {
		if e.Source == entry.Source {
			if e.ID != entry.ID {
				_ = os.Remove(rc.GetRecordPath(e.ID))
			}
			continue
		}
		kept = append(kept, e)
	}
	index.Results = append(kept, entry)

	return rc.SaveIndex(index)
}

// LoadRecord loads a single record from its cache file
func (rc *ResultCache) LoadRecord(id string) (*Record, error) {
	data, err := os.ReadFile(rc.GetRecordPath(id))
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

// Latest returns the newest cached record for source, or for any flow when
// source is empty. It returns nil, nil when nothing is cached.
func (rc *ResultCache) Latest(source Source) (*Record, error) {
	index, err := rc.LoadIndex()
	if err != nil {
		return nil, err
	}

	entries := make([]ResultIndexEntry, 0, len(index.Results))
	for _, e := range index.Results {
		if source == "" || e.Source == source {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return rc.LoadRecord(entries[0].ID)
}

// Clear clears the cache
func (rc *ResultCache) Clear() error {
	index, err := rc.LoadIndex()
	if err == nil {
		for _, entry := range index.Results {
			_ = os.Remove(rc.GetRecordPath(entry.ID))
		}
	}

	if err := os.Remove(rc.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
