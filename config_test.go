package luminal_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-theft-auto/luminal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "luminal.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := luminal.DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 1280
height: 720
title: demo
vsync: false
clear_color: [0.2, 0.3, 0.3, 1]
fullscreen_key: F2
font: gofont:mono
`)

	cfg, err := luminal.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 720 || cfg.Title != "demo" || cfg.VSync {
		t.Errorf("loaded config = %+v", cfg)
	}
	if cfg.FontSize != 28 || cfg.Samples != 4 || cfg.FOV != 45 {
		t.Errorf("defaults lost: size=%v samples=%d fov=%v", cfg.FontSize, cfg.Samples, cfg.FOV)
	}
	if got := cfg.ClearColorValue(); got != (luminal.Color{R: 0.2, G: 0.3, B: 0.3, A: 1}) {
		t.Errorf("ClearColorValue() = %+v", got)
	}
	if cfg.FullscreenKeyValue() != luminal.KeyF2 {
		t.Errorf("FullscreenKeyValue() = %v, want F2", luminal.KeyName(cfg.FullscreenKeyValue()))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := luminal.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want read failure", err)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := luminal.LoadConfig(writeConfig(t, "width: [1, 2"))
		if err == nil || !strings.Contains(err.Error(), "parsing config file") {
			t.Errorf("error = %v, want parse failure", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := luminal.LoadConfig(writeConfig(t, "width: 0\nfont_size: -1\nfullscreen_key: F99\n"))
		if err == nil {
			t.Fatal("LoadConfig() accepted invalid values")
		}
		for _, want := range []string{"window size", "font size", "fullscreen key"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		}
	})
}

func TestConfigValidateClipPlanes(t *testing.T) {
	cfg := luminal.DefaultConfig()
	cfg.Near, cfg.Far = 10, 1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted far < near")
	}
}

func TestFullscreenKeyFallback(t *testing.T) {
	cfg := luminal.DefaultConfig()
	cfg.FullscreenKey = "nonsense"
	if cfg.FullscreenKeyValue() != luminal.KeyF11 {
		t.Error("invalid fullscreen key did not fall back to F11")
	}
}

func TestAtlasOptions(t *testing.T) {
	cfg := luminal.DefaultConfig()
	cfg.AtlasWidth, cfg.AtlasHeight = 256, 128

	ac := luminal.DefaultAtlasConfig(cfg.FontSize)
	for _, opt := range cfg.AtlasOptions() {
		opt(&ac)
	}
	if ac.Width != 256 || ac.Height != 128 {
		t.Errorf("atlas size = %dx%d, want 256x128", ac.Width, ac.Height)
	}
}
