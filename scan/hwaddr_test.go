package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func arpTable(entries map[string]string) func(string) string {
	return func(ip string) string {
		return entries[ip]
	}
}

func writeOUI(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "manuf.txt")
	data := "# test vendors\n00:11:22\tAcme\tAcme Networks\n\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHardwareLookup(t *testing.T) {
	h, err := NewHardwareLookup(writeOUI(t))
	if err != nil {
		t.Fatal(err)
	}
	h.search = arpTable(map[string]string{
		"10.0.0.1": "00:11:22:AA:BB:CC",
		"10.0.0.2": "de:ad:be:ef:00:01",
		"10.0.0.3": "00:00:00:00:00:00",
		"10.0.0.4": "garbage",
	})

	tests := []struct {
		addr   string
		mac    string
		vendor string
	}{
		{"10.0.0.1", "00:11:22:aa:bb:cc", "Acme Networks"},
		{"10.0.0.2", "de:ad:be:ef:00:01", ""}, //OUI中不存在
		{"10.0.0.3", "", ""},                  //不完整的ARP条目
		{"10.0.0.4", "", ""},
		{"10.0.0.5", "", ""}, //不在ARP缓存中
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			mac, vendor := h.Lookup(tt.addr)
			if mac != tt.mac || vendor != tt.vendor {
				t.Errorf("Lookup(%s) = (%q, %q), expected (%q, %q)", tt.addr, mac, vendor, tt.mac, tt.vendor)
			}
		})
	}
}

func TestHardwareLookup_NoVendorDB(t *testing.T) {
	h, err := NewHardwareLookup("")
	if err != nil {
		t.Fatal(err)
	}
	h.search = arpTable(map[string]string{"10.0.0.1": "00:11:22:aa:bb:cc"})
	if mac, vendor := h.Lookup("10.0.0.1"); mac != "00:11:22:aa:bb:cc" || vendor != "" {
		t.Errorf("Unexpected result (%q, %q)", mac, vendor)
	}
}

func TestNewHardwareLookup_MissingFile(t *testing.T) {
	if _, err := NewHardwareLookup(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing OUI database")
	}
}

func TestDiscover_HardwareEnrichment(t *testing.T) {
	h, err := NewHardwareLookup(writeOUI(t))
	if err != nil {
		t.Fatal(err)
	}
	h.search = arpTable(map[string]string{"10.0.0.2": "00:11:22:33:44:55"})

	s, _ := ParseCIDR("10.0.0.0/29")
	pinger := &fakePinger{alive: map[string]bool{"10.0.0.2": true, "10.0.0.5": true}}
	hosts, err := NewDiscoverer(pinger, nil, h, 4).Discover(context.Background(), NewTargetIterator(s))
	if err != nil {
		t.Fatal(err)
	}
	if len(hosts) != 2 {
		t.Fatalf("Expected 2 hosts, got %v", addresses(hosts))
	}
	if hosts[0].MAC != "00:11:22:33:44:55" || hosts[0].Vendor != "Acme Networks" {
		t.Errorf("Expected MAC and vendor on %s, got %q %q", hosts[0].Address, hosts[0].MAC, hosts[0].Vendor)
	}
	if hosts[1].MAC != "" || hosts[1].Vendor != "" {
		t.Errorf("Expected no hardware info on %s, got %q %q", hosts[1].Address, hosts[1].MAC, hosts[1].Vendor)
	}
}
