package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGeometryDir_SetGeometry(t *testing.T) {
	tests := map[string]struct {
		files      map[string]string
		setFile    string
		expSectors int
		expNil     bool
		expErr     string
	}{
		"yaml document": {
			files: map[string]string{
				"mo.yaml": "sectors:\n  - id: 1\n    name: mo_floor\n    kind: walk\n    vertices: [[0, 0], [1, 0], [1, 1]]\n",
			},
			setFile:    "mo.set",
			expSectors: 1,
		},
		"yml extension": {
			files: map[string]string{
				"ly.yml": "setups:\n  - name: ly_overhead\n",
			},
			setFile: "ly.set",
		},
		"missing document": {
			setFile: "zz.set",
			expNil:  true,
		},
		"malformed document": {
			files: map[string]string{
				"mo.yaml": "sectors: [",
			},
			setFile: "mo.set",
			expErr:  "decoding geometry for mo.set",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for file, body := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			}

			g, err := NewGeometryDir(dir).SetGeometry(tt.setFile)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expNil {
				if g != nil {
					t.Fatal("expected no geometry")
				}
				return
			}
			if g == nil {
				t.Fatal("expected geometry")
			}
			testutil.AssertEqual(t, "sectors", len(g.Sectors), tt.expSectors)
		})
	}
}
