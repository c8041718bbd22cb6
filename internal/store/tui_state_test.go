package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	v := Vault{Dir: t.TempDir()}

	// Missing file => default state.
	st0, err := v.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{
		Version:    1,
		Project:    "home",
		Filter:     "milk",
		SelectedID: "0190-abc",
		ShowDetail: true,
	}
	if err := v.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	if _, err := os.Stat(filepath.Join(v.Dir, ".tm", "tui_state.json")); err != nil {
		t.Fatalf("state file: %v", err)
	}

	got, err := v.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptReadsAsDefault(t *testing.T) {
	t.Parallel()

	v := Vault{Dir: t.TempDir()}
	if err := os.MkdirAll(v.StateDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(v.StateDir(), "tui_state.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := v.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Version != 1 || st.Project != "" {
		t.Fatalf("expected default state; got %#v", st)
	}
}
