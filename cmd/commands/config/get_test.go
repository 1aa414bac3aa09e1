package config

import (
	"strings"
	"testing"

	"github.com/vmspawn/vmspawn/internal/config"
)

func TestGet_SingleKey(t *testing.T) {
	setupTestConfig(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.DefaultFlavor = "tor-2048"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "--key", "default-flavor")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "tor-2048" {
		t.Errorf("expected %q, got %q", "tor-2048", strings.TrimSpace(stdout))
	}
}

func TestGet_SingleKey_Unset(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "get", "--key", "wallet-command")

	if strings.TrimSpace(stdout) != "not set" {
		t.Errorf("expected %q, got %q", "not set", strings.TrimSpace(stdout))
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "--key", "no-such-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected unknown key error, got: %s", stderr)
	}
}

func TestGet_ListsAllKeys(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, name := range config.KeyNames() {
		if !strings.Contains(stdout, name+":") {
			t.Errorf("expected key %q in listing, got:\n%s", name, stdout)
		}
	}
}
