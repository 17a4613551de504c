package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	csvData := `Service Name,Port Number,Transport Protocol,Description
ssh,22,tcp,The Secure Shell (SSH) Protocol
ssh,22,udp,The Secure Shell (SSH) Protocol
http,80,tcp,World Wide Web HTTP
www,80,tcp,World Wide Web HTTP
x11,6000-6063,tcp,X Window System
,81,tcp,Unassigned
`
	var out bytes.Buffer
	count, err := generate(strings.NewReader(csvData), &out)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected 2 ports, got %d", count)
	}
	text := out.String()
	for _, want := range []string{"package scan", `22: "ssh",`, `80: "http",`} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
	for _, unwanted := range []string{`"www",`, `"x11",`, "81:"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("Did not expect %q in output:\n%s", unwanted, text)
		}
	}
}
