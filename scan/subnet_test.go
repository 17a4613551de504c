package scan

import (
	"testing"

	"github.com/pkg/errors"
)

func TestAddressRoundTrip(t *testing.T) {
	addrs := []string{"0.0.0.0", "10.0.0.1", "192.168.1.254", "172.16.31.7", "255.255.255.255", "1.2.3.4"}
	for _, addr := range addrs {
		t.Run(addr, func(t *testing.T) {
			v, err := AddressToInteger(addr)
			if err != nil {
				t.Fatalf("AddressToInteger(%s) failed: %v", addr, err)
			}
			if got := IntegerToAddress(v); got != addr {
				t.Errorf("Expected %s, got %s", addr, got)
			}
		})
	}
}

func TestAddressToInteger_BigEndian(t *testing.T) {
	v, err := AddressToInteger("192.168.1.10")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xC0A8010A {
		t.Errorf("Expected 0xC0A8010A, got %#x", v)
	}
}

func TestAddressToInteger_Malformed(t *testing.T) {
	invalid := []string{
		"",
		"10.0.0",
		"10.0.0.1.5",
		"10.0.0.256",
		"10.0.-1.1",
		"10.0.+1.1",
		"a.b.c.d",
		"10..0.1",
		"10.0.0.1 ",
	}
	for _, addr := range invalid {
		t.Run(addr, func(t *testing.T) {
			_, err := AddressToInteger(addr)
			if !errors.Is(err, ErrMalformedAddress) {
				t.Errorf("Expected ErrMalformedAddress for %q, got %v", addr, err)
			}
		})
	}
}

func TestHostCapacity(t *testing.T) {
	for p := 0; p <= MaxPrefix; p++ {
		got, err := HostCapacity(p)
		if err != nil {
			t.Fatalf("HostCapacity(%d) failed: %v", p, err)
		}
		want := uint64(1)<<uint(32-p) - 2
		if uint64(got) != want {
			t.Errorf("HostCapacity(%d) = %d, expected %d", p, got, want)
		}
	}
}

func TestHostCapacity_Invalid(t *testing.T) {
	for _, p := range []int{-1, 31, 32, 33} {
		if _, err := HostCapacity(p); !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("Expected ErrInvalidPrefix for /%d, got %v", p, err)
		}
	}
}

func TestSubnetMask(t *testing.T) {
	tests := []struct {
		prefix int
		mask   string
	}{
		{0, "0.0.0.0"},
		{8, "255.0.0.0"},
		{16, "255.255.0.0"},
		{20, "255.255.240.0"},
		{24, "255.255.255.0"},
		{30, "255.255.255.252"},
		{32, "255.255.255.255"},
	}
	for _, tt := range tests {
		got, err := SubnetMask(tt.prefix)
		if err != nil {
			t.Fatalf("SubnetMask(%d) failed: %v", tt.prefix, err)
		}
		if got != tt.mask {
			t.Errorf("SubnetMask(%d) = %s, expected %s", tt.prefix, got, tt.mask)
		}
	}
	if _, err := SubnetMask(33); !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("Expected ErrInvalidPrefix for /33, got %v", err)
	}
}

func TestParseCIDR(t *testing.T) {
	s, err := ParseCIDR("192.168.1.77/24")
	if err != nil {
		t.Fatal(err)
	}
	if s.Address() != "192.168.1.0" {
		t.Errorf("Expected host bits to be masked, got %s", s.Address())
	}
	if s.MaskString() != "255.255.255.0" {
		t.Errorf("Expected mask 255.255.255.0, got %s", s.MaskString())
	}
	if s.Capacity != 254 {
		t.Errorf("Expected capacity 254, got %d", s.Capacity)
	}
	if IntegerToAddress(s.Broadcast()) != "192.168.1.255" {
		t.Errorf("Expected broadcast 192.168.1.255, got %s", IntegerToAddress(s.Broadcast()))
	}
	if s.String() != "192.168.1.0/24" {
		t.Errorf("Expected 192.168.1.0/24, got %s", s)
	}
}

func TestParseCIDR_Invalid(t *testing.T) {
	tests := []struct {
		cidr string
		err  error
	}{
		{"10.0.0.0/31", ErrInvalidPrefix},
		{"10.0.0.0/32", ErrInvalidPrefix},
		{"10.0.0.0/-1", ErrInvalidPrefix},
		{"10.0.0.0/abc", ErrInvalidPrefix},
		{"10.0.0.0", ErrInvalidPrefix},
		{"10.0.0/24", ErrMalformedAddress},
		{"300.0.0.0/24", ErrMalformedAddress},
	}
	for _, tt := range tests {
		t.Run(tt.cidr, func(t *testing.T) {
			if _, err := ParseCIDR(tt.cidr); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}
