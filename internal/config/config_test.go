package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvOutputDir, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvTimeout, "")

	cfg := LoadConfig()

	if cfg.APIKey != "test-key" {
		t.Errorf("期待値 test-key, 実際の値 %s", cfg.APIKey)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("期待値 %s, 実際の値 %s", DefaultModel, cfg.Model)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("期待値 %s, 実際の値 %s", DefaultOutputDir, cfg.OutputDir)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("期待値 %v, 実際の値 %v", DefaultHTTPTimeout, cfg.HTTPTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvOutputDir, "/tmp/banana")
	t.Setenv(EnvModel, "gemini-3-flash-image")
	t.Setenv(EnvTimeout, "120")

	cfg := LoadConfig()

	if cfg.OutputDir != "/tmp/banana" {
		t.Errorf("期待値 /tmp/banana, 実際の値 %s", cfg.OutputDir)
	}
	if cfg.Model != "gemini-3-flash-image" {
		t.Errorf("期待値 gemini-3-flash-image, 実際の値 %s", cfg.Model)
	}
	if cfg.HTTPTimeout != 120*time.Second {
		t.Errorf("期待値 120s, 実際の値 %v", cfg.HTTPTimeout)
	}
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	t.Run("数値でない値はデフォルトに倒れること", func(t *testing.T) {
		t.Setenv(EnvTimeout, "abc")
		if got := LoadConfig().HTTPTimeout; got != DefaultHTTPTimeout {
			t.Errorf("期待値 %v, 実際の値 %v", DefaultHTTPTimeout, got)
		}
	})

	t.Run("0以下の値はデフォルトに倒れること", func(t *testing.T) {
		t.Setenv(EnvTimeout, "-5")
		if got := LoadConfig().HTTPTimeout; got != DefaultHTTPTimeout {
			t.Errorf("期待値 %v, 実際の値 %v", DefaultHTTPTimeout, got)
		}
	})
}
