package internal

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/iksnae/thread-digest/testutil"
)

func TestOpenDatabase(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(testutil.CreateTempDir(t), "nested", "state.db")
			},
			wantErr: false,
		},
		{
			name: "parent is a file",
			setup: func(t *testing.T) string {
				blocker := filepath.Join(testutil.CreateTempDir(t), "blocker")
				testutil.WriteFile(t, blocker, []byte("x"))
				return filepath.Join(blocker, "state.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := tt.setup(t)
			db, err := OpenDatabase(dbPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("OpenDatabase() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if db == nil {
					t.Error("OpenDatabase() returned nil database")
					return
				}
				if err := db.Ping(); err != nil {
					t.Errorf("Database ping failed: %v", err)
				}
				db.Close()
			}
		})
	}
}

func TestSQLiteKV(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("NewSQLiteKV() error = %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v, want not found", ok, err)
	}

	if err := kv.Set(ThemeKey, "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := kv.Set(ThemeKey, "false"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	value, ok, err := kv.Get(ThemeKey)
	if err != nil || !ok {
		t.Fatalf("Get() ok = %v, err = %v", ok, err)
	}
	if value != "false" {
		t.Errorf("Get() = %q, want %q", value, "false")
	}

	if err := kv.Delete(ThemeKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := kv.Get(ThemeKey); ok {
		t.Error("Get() after Delete() still found value")
	}
}

func TestSQLiteKV_ExistingData(t *testing.T) {
	db := testutil.CreateTestDB(t)
	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("NewSQLiteKV() error = %v", err)
	}
	defer kv.Close()

	history := NewHistoryStore(kv).Load()
	if len(history.Topics) != 3 || history.Topics[0] != "golang" {
		t.Errorf("Topics = %v, want [golang rust python]", history.Topics)
	}
	if !history.Dark {
		t.Error("Dark = false, want true")
	}
}

func TestOpenSQLiteKV_Persists(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "state.db")

	kv, err := OpenSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	NewHistoryStore(kv).RecordTopic("golang")
	kv.Close()

	kv, err = OpenSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLiteKV() reopen error = %v", err)
	}
	defer kv.Close()

	history := NewHistoryStore(kv).Load()
	if len(history.Topics) != 1 || history.Topics[0] != "golang" {
		t.Errorf("Topics after reopen = %v, want [golang]", history.Topics)
	}
}

func TestSQLiteKV_StoredValuesRepaired(t *testing.T) {
	tests := []struct {
		name       string
		topics     string
		theme      string
		wantTopics []string
		wantDark   bool
	}{
		{
			name:       "corrupt values",
			topics:     "{not json",
			theme:      "maybe",
			wantTopics: []string{},
			wantDark:   false,
		},
		{
			name:       "too long with duplicates",
			topics:     `["a","b","a","c","d","e","f"]`,
			theme:      "false",
			wantTopics: []string{"a", "b", "c", "d", "e"},
			wantDark:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.CreateInMemoryDB(t)
			testutil.InsertPreference(t, db, HistoryKey, tt.topics)
			testutil.InsertPreference(t, db, ThemeKey, tt.theme)
			kv, err := NewSQLiteKV(db)
			if err != nil {
				t.Fatalf("NewSQLiteKV() error = %v", err)
			}
			defer kv.Close()

			history := NewHistoryStore(kv).Load()
			if !reflect.DeepEqual(history.Topics, tt.wantTopics) {
				t.Errorf("Topics = %v, want %v", history.Topics, tt.wantTopics)
			}
			if history.Dark != tt.wantDark {
				t.Errorf("Dark = %v, want %v", history.Dark, tt.wantDark)
			}
		})
	}
}
