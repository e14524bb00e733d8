package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWeights(t *testing.T) {
	w, err := LoadWeights("guarded")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	if w.AttackedPenaltyDiv != 2 || w.KingProximityBonus != 15 {
		t.Fatalf("unexpected guarded weights %+v", w)
	}
	if _, err := LoadWeights("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "w.json")
	if err := os.WriteFile(path, []byte(`{"center_bonus": 40}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err = LoadWeights(path)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	want := DefaultWeights()
	want.CenterBonus = 40
	if w != want {
		t.Fatalf("got %+v, want %+v", w, want)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"attacked_penalty_div": 5}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWeights(bad); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
}
