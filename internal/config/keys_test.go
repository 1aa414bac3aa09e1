package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("default-currency")
	if spec == nil {
		t.Fatal("expected to find key 'default-currency', got nil")
	}
	if spec.Name != "default-currency" {
		t.Errorf("expected Name %q, got %q", "default-currency", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("DEFAULT-CURRENCY")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "default-currency" {
		t.Errorf("expected Name %q, got %q", "default-currency", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	for _, k := range Keys {
		cfg := &Config{}
		k.Set(cfg, "test-value")
		got := k.Get(cfg)
		if got != "test-value" {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, "test-value")
		}
	}
}

func TestKeys_Validate(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"tor-proxy", "auto", false},
		{"tor-proxy", "always", false},
		{"tor-proxy", "sometimes", true},
		{"default-currency", "xmr", false},
		{"default-currency", "settlement", false},
		{"default-currency", "doge", true},
		{"default-flavor", "tor-1024", false},
		{"default-flavor", "tor-9999", true},
	}
	for _, tt := range tests {
		spec := Lookup(tt.key)
		if spec == nil {
			t.Fatalf("key %q not found", tt.key)
		}
		if spec.Validate == nil {
			t.Fatalf("key %q has no Validate function", tt.key)
		}
		err := spec.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("key %q value %q: got err=%v, wantErr=%v", tt.key, tt.value, err, tt.wantErr)
		}
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}
