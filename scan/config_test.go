package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PingTimeout != 50*time.Millisecond {
		t.Errorf("Expected 50ms ping timeout, got %v", cfg.PingTimeout)
	}
	if cfg.ConnectTimeout != 100*time.Millisecond {
		t.Errorf("Expected 100ms connect timeout, got %v", cfg.ConnectTimeout)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Expected %d workers, got %d", DefaultWorkers, cfg.Workers)
	}
	if len(cfg.Ports) != 0 {
		t.Errorf("Core should not pick default ports, got %v", cfg.Ports)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netmapper.yaml")
	data := `target: 10.0.0.0/24
ports: [22, 80]
ping_timeout: 75ms
ping_method: tcp
resolve_names: false
dns_server: 10.0.0.53
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Target != "10.0.0.0/24" || len(cfg.Ports) != 2 || cfg.PingMethod != PingTCP {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.PingTimeout != 75*time.Millisecond {
		t.Errorf("Expected 75ms, got %v", cfg.PingTimeout)
	}
	if cfg.ConnectTimeout != 100*time.Millisecond {
		t.Errorf("Expected default connect timeout to survive, got %v", cfg.ConnectTimeout)
	}
	if cfg.ResolveNames || cfg.DNSServer != "10.0.0.53" {
		t.Errorf("Unexpected resolver settings: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("unknown_key: 1\n"), 0644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Ports: []int{22}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.PingTimeout <= 0 || cfg.ConnectTimeout <= 0 || cfg.Workers <= 0 || cfg.ResolveTimeout <= 0 {
		t.Errorf("Expected defaults to be filled in, got %+v", cfg)
	}

	for _, port := range []int{0, -5, 65536} {
		cfg := &Config{Ports: []int{80, port}}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidPort) {
			t.Errorf("Expected ErrInvalidPort for %d, got %v", port, err)
		}
	}
	cfg = &Config{PingPorts: []int{70000}}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("Expected ErrInvalidPort for ping port, got %v", err)
	}
}
