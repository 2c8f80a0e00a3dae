package embedded

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/decker502/sloth/data"
)

func withTestFS(t *testing.T) {
	t.Helper()
	prev := dataFS
	t.Cleanup(func() { dataFS = prev })

	Init(fstest.MapFS{
		"sloth.yaml":        {Data: []byte("reelLength: 6\n")},
		"machines/big.yaml": {Data: []byte("reelLength: 8\n")},
	})
}

func TestNotInitialized(t *testing.T) {
	prev := dataFS
	dataFS = nil
	t.Cleanup(func() { dataFS = prev })

	if IsInitialized() {
		t.Error("IsInitialized() should be false before Init")
	}
	if _, err := ReadFile(MachineConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if Exists(MachineConfigPath) {
		t.Error("Exists() should be false before Init")
	}
}

func TestReadFile(t *testing.T) {
	withTestFS(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "machine config", path: MachineConfigPath, want: "reelLength: 6\n"},
		{name: "dot slash prefix", path: "./data/sloth.yaml", want: "reelLength: 6\n"},
		{name: "nested", path: "data/machines/big.yaml", want: "reelLength: 8\n"},
		{name: "missing", path: "data/missing.yaml", wantErr: true},
		{name: "wrong prefix", path: "assets/sloth.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	withTestFS(t)

	if !Exists(MachineConfigPath) {
		t.Error("Exists() should find the machine config")
	}
	if Exists("data/nope.yaml") || Exists("sloth.yaml") || Exists("data/") {
		t.Error("Exists() should reject missing or unprefixed paths")
	}

	matches, err := Glob("data/machines/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 1 || matches[0] != "data/machines/big.yaml" {
		t.Errorf("Glob() = %v, want [data/machines/big.yaml]", matches)
	}
}

func TestShippedData(t *testing.T) {
	prev := dataFS
	t.Cleanup(func() { dataFS = prev })

	Init(data.FS)
	raw, err := ReadFile(MachineConfigPath)
	if err != nil {
		t.Fatalf("ReadFile(%q) error: %v", MachineConfigPath, err)
	}
	if len(raw) == 0 {
		t.Error("embedded machine config is empty")
	}
}
