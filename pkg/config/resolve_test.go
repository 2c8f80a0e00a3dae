package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/decker502/sloth/data"
	"github.com/decker502/sloth/pkg/embedded"
)

func TestResolveMachineConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.yaml")
	raw := []byte(`reelLength: 5
visibleRows: 3
cellHeight: 60
spacing: 15
spinVelocity: 5
stopDuration: 0.2
snapSpace: 15
snapVelocity: -10
spinDurations: [0.5, 1.0]
winLines:
  - [1, 1]
symbols: [a, b, c]
`)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ResolveMachineConfig(path)
	if err != nil {
		t.Fatalf("ResolveMachineConfig() error: %v", err)
	}
	if cfg.ReelCount() != 2 || cfg.ReelLength != 5 {
		t.Errorf("unexpected config: reels=%d length=%d", cfg.ReelCount(), cfg.ReelLength)
	}
}

func TestResolveMachineConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "machine.yaml")
	if err := os.WriteFile(path, []byte("spinDurations: [1.0]\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := ResolveMachineConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestResolveMachineConfig_Embedded(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })

	embedded.Init(nil)
	cfg, err := ResolveMachineConfig("")
	if err != nil {
		t.Fatalf("uninitialized embedded FS should fall back to defaults: %v", err)
	}
	if cfg.ReelCount() != DefaultMachineConfig().ReelCount() {
		t.Error("expected the built-in default config")
	}

	embedded.Init(fstest.MapFS{})
	if _, err := ResolveMachineConfig(""); err == nil {
		t.Error("missing embedded file should be an error")
	}
}

// 不依赖工作目录：嵌入的配置与仓库中的 data/sloth.yaml 一致
func TestResolveMachineConfig_ShippedData(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	embedded.Init(data.FS)
	got, err := ResolveMachineConfig("")
	if err != nil {
		t.Fatalf("ResolveMachineConfig() error: %v", err)
	}

	raw, err := data.FS.ReadFile("sloth.yaml")
	if err != nil {
		t.Fatalf("failed to read embedded sloth.yaml: %v", err)
	}
	want, err := ParseMachineConfig(raw)
	if err != nil {
		t.Fatalf("ParseMachineConfig() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved config differs from data/sloth.yaml (-want +got):\n%s", diff)
	}
}
