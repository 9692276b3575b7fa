package persist

import (
	"errors"
	"reflect"
	"testing"

	"github.com/five82/popcorn/internal/kv"
)

type movie struct {
	ID     string `json:"imdbID"`
	Rating int    `json:"userRating"`
}

func TestLoad_MissingKeyUsesDefaultAndWritesBack(t *testing.T) {
	store := kv.NewMemory()

	v := Load(store, "watched", []movie{})
	if got := v.Get(); len(got) != 0 {
		t.Fatalf("Get = %#v, want empty default", got)
	}

	raw, ok, _ := store.Get("watched")
	if !ok || string(raw) != "[]" {
		t.Fatalf("stored = (%q, %v), want initial write-back of []", raw, ok)
	}
}

func TestLoad_CorruptValueFallsBackToDefault(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set("watched", []byte("{not json"))

	v := Load(store, "watched", []movie{{ID: "default"}})
	got := v.Get()
	if len(got) != 1 || got[0].ID != "default" {
		t.Fatalf("Get = %#v, want default", got)
	}
}

func TestLoad_NullFallsBackToDefault(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set("theme", []byte("null"))

	v := Load(store, "theme", "Nightfox")
	if got := v.Get(); got != "Nightfox" {
		t.Fatalf("Get = %q, want Nightfox", got)
	}
}

func TestValue_RoundTripAcrossRestart(t *testing.T) {
	store := kv.NewMemory()

	first := Load(store, "watched", []movie(nil))
	want := []movie{{ID: "tt1", Rating: 8}, {ID: "tt2", Rating: 3}}
	if err := first.Set(want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	second := Load(store, "watched", []movie(nil))
	if got := second.Get(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded = %#v, want %#v", got, want)
	}
}

type failingStore struct{ kv.Memory }

func (f *failingStore) Set(string, []byte) error { return errors.New("disk full") }

func TestValue_SetReportsWriteErrorButKeepsValue(t *testing.T) {
	v := Load[string](&failingStore{}, "theme", "Slate")

	err := v.Set("Kanagawa")
	if err == nil {
		t.Fatalf("Set returned nil error, want write failure")
	}
	if got := v.Get(); got != "Kanagawa" {
		t.Fatalf("Get = %q, want Kanagawa", got)
	}
}
