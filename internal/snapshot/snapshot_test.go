package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type countingSource struct {
	calls int
}

func (s *countingSource) Snapshot() *Document {
	s.calls++
	name := "Manny's Office"
	return &Document{
		CurrentSet: &CurrentSet{SetFile: "mo.set", VariableName: "mo", DisplayName: &name},
		LoadedSets: []string{"mo.set"},
		Inventory:  []string{"scythe", "123"},
		Events:     []string{"set.switch mo.set"},
	}
}

func TestEncode(t *testing.T) {
	tests := map[string]struct {
		format   string
		contains string
		expErr   string
	}{
		"default is json": {format: "", contains: `"set_file": "mo.set"`},
		"json":            {format: FormatJSON, contains: `"display_name": "Manny's Office"`},
		"yaml":            {format: FormatYAML, contains: "set_file: mo.set"},
		"yaml quotes numeric strings": {
			format:   FormatYAML,
			contains: `- "123"`,
		},
		"unknown format": {format: "toml", expErr: `unknown snapshot format "toml"`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			src := &countingSource{}
			data, err := Encode(src.Snapshot(), tt.format)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "contains", strings.Contains(string(data), tt.contains), true)

			again, err := Encode(src.Snapshot(), tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "stable", string(again), string(data))
		})
	}
}

func TestEncodeYAML_BlockStyle(t *testing.T) {
	data, err := EncodeYAML(&Document{LoadedSets: []string{"mo.set", "gs.set"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(data)
	testutil.AssertEqual(t, "no flow sequences", strings.Contains(out, "[mo.set"), false)
	testutil.AssertEqual(t, "block entry", strings.Contains(out, "- mo.set\n"), true)
	testutil.AssertEqual(t, "key order", strings.Index(out, "current_set:") < strings.Index(out, "loaded_sets:"), true)
}

func TestExporter_Tick(t *testing.T) {
	tests := map[string]struct {
		every    int
		ticks    int
		expCalls int
	}{
		"every tick":       {every: 1, ticks: 3, expCalls: 3},
		"every third tick": {every: 3, ticks: 7, expCalls: 2},
		"not reached":      {every: 5, ticks: 4, expCalls: 0},
		"invalid uses one": {every: 0, ticks: 2, expCalls: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			src := &countingSource{}
			path := filepath.Join(t.TempDir(), "world.json")
			e := NewExporter(src, path, WithEvery(tt.every))

			for range tt.ticks {
				if err := e.Tick(context.Background()); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			testutil.AssertEqual(t, "calls", src.calls, tt.expCalls)

			_, err := os.Stat(path)
			testutil.AssertEqual(t, "written", err == nil, tt.expCalls > 0)
		})
	}
}

func TestExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	e := NewExporter(&countingSource{}, path, WithFormat(FormatYAML))

	if err := e.Export(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	testutil.AssertEqual(t, "yaml", strings.HasPrefix(string(data), "current_set:\n"), true)
}

func TestExporter_BadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.txt")
	e := NewExporter(&countingSource{}, path, WithFormat("toml"))

	testutil.AssertErrorContains(t, e.Export(context.Background()), "unknown snapshot format")
	_, err := os.Stat(path)
	testutil.AssertEqual(t, "not written", os.IsNotExist(err), true)
}
