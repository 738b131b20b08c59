package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/thread-digest/testutil"
)

func TestNewResultCache(t *testing.T) {
	cacheDir := testutil.CreateTempDir(t)
	rc := NewResultCache(cacheDir)
	if rc.GetCacheDir() != cacheDir {
		t.Errorf("GetCacheDir() = %q, want %q", rc.GetCacheDir(), cacheDir)
	}
}

func TestResultCache_EnsureCacheDir(t *testing.T) {
	cacheDir := filepath.Join(testutil.CreateTempDir(t), "cache")
	rc := NewResultCache(cacheDir)

	if err := rc.EnsureCacheDir(); err != nil {
		t.Errorf("EnsureCacheDir() error = %v", err)
	}
	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		t.Error("Cache directory was not created")
	}
}

func TestResultCache_Paths(t *testing.T) {
	cacheDir := testutil.CreateTempDir(t)
	rc := NewResultCache(cacheDir)

	if got, want := rc.GetIndexPath(), filepath.Join(cacheDir, "results.yaml"); got != want {
		t.Errorf("GetIndexPath() = %q, want %q", got, want)
	}
	if got, want := rc.GetRecordPath("abc"), filepath.Join(cacheDir, "result_abc.json"); got != want {
		t.Errorf("GetRecordPath() = %q, want %q", got, want)
	}
}

func TestResultCache_SaveAndLoad(t *testing.T) {
	rc := NewResultCache(testutil.CreateTempDir(t))
	record := CreateTestRecord("rec-1", "golang")

	if err := rc.SaveRecord(record); err != nil {
		t.Fatalf("SaveRecord() error = %v", err)
	}

	loaded, err := rc.LoadRecord("rec-1")
	if err != nil {
		t.Fatalf("LoadRecord() error = %v", err)
	}
	if loaded.Options.Query != "golang" {
		t.Errorf("Query = %q, want golang", loaded.Options.Query)
	}
	if loaded.Result.SummaryText != record.Result.SummaryText {
		t.Errorf("SummaryText = %q, want %q", loaded.Result.SummaryText, record.Result.SummaryText)
	}
	if len(loaded.Result.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(loaded.Result.Items))
	}
	if !loaded.Result.GeneratedAt.Equal(*record.Result.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", loaded.Result.GeneratedAt, record.Result.GeneratedAt)
	}

	index, err := rc.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if len(index.Results) != 1 || index.Results[0].Title != "Topic: golang" || index.Results[0].ItemCount != 2 {
		t.Errorf("index = %+v", index.Results)
	}
	if index.Metadata.CacheVersion != "1.0" {
		t.Errorf("CacheVersion = %q, want 1.0", index.Metadata.CacheVersion)
	}
}

func TestResultCache_OnePerSource(t *testing.T) {
	rc := NewResultCache(testutil.CreateTempDir(t))

	first := CreateTestRecord("first", "golang")
	second := CreateTestRecord("second", "rust")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	hnOpts := RequestOptions{Source: SourceAggregator}.Normalized()
	hn := CreateTestRecordWithResult("hn", hnOpts, *CreateTestResult("hn summary"))
	hn.CreatedAt = first.CreatedAt.Add(-time.Minute)

	for _, r := range []*Record{first, second, hn} {
		if err := rc.SaveRecord(r); err != nil {
			t.Fatalf("SaveRecord(%s) error = %v", r.ID, err)
		}
	}

	index, _ := rc.LoadIndex()
	if len(index.Results) != 2 {
		t.Errorf("index has %d entries, want 2", len(index.Results))
	}
	if _, err := os.Stat(rc.GetRecordPath("first")); !os.IsNotExist(err) {
		t.Error("replaced record file was not removed")
	}

	latest, err := rc.Latest("")
	if err != nil || latest == nil {
		t.Fatalf("Latest(\"\") = %v, %v", latest, err)
	}
	if latest.ID != "second" {
		t.Errorf("Latest(\"\").ID = %q, want second", latest.ID)
	}

	latestHN, err := rc.Latest(SourceAggregator)
	if err != nil || latestHN == nil || latestHN.ID != "hn" {
		t.Errorf("Latest(hn) = %v, %v", latestHN, err)
	}

	none, err := rc.Latest(SourceText)
	if err != nil || none != nil {
		t.Errorf("Latest(text) = %v, %v, want nil, nil", none, err)
	}
}

func TestResultCache_Empty(t *testing.T) {
	rc := NewResultCache(filepath.Join(testutil.CreateTempDir(t), "missing"))

	record, err := rc.Latest("")
	if err != nil || record != nil {
		t.Errorf("Latest() on empty cache = %v, %v, want nil, nil", record, err)
	}
}

func TestResultCache_Clear(t *testing.T) {
	rc := NewResultCache(testutil.CreateTempDir(t))
	_ = rc.SaveRecord(CreateTestRecord("rec-1", "golang"))

	if err := rc.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(rc.GetIndexPath()); !os.IsNotExist(err) {
		t.Error("index still exists after Clear()")
	}
	if _, err := os.Stat(rc.GetRecordPath("rec-1")); !os.IsNotExist(err) {
		t.Error("record still exists after Clear()")
	}
	if err := rc.Clear(); err != nil {
		t.Errorf("Clear() on empty cache error = %v", err)
	}
}
