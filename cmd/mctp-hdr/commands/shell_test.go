package commands

import (
	"bytes"
	"strings"
	"testing"
)

func newTestShell() (*Shell, *bytes.Buffer, *recorder) {
	s, rec := newTestSession()
	var buf bytes.Buffer
	return NewShell(s, &buf), &buf, rec
}

func TestShellExecute(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bare hex", "7E 12 34 00", "vendor_pci  0x7E123400"},
		{"decode auto", "decode 00800200", "control  0x00800200"},
		{"decode with shape", "decode generic 00 80 02 00", "generic  0x00800200"},
		{"decode error", "d 42000000", "error: field message_type"},
		{"invalid hex", "zzzz", "Invalid header"},
		{"decode usage", "decode", "Usage: decode"},
		{"encode", "encode shape=vendor_pci message_type=0x7E pci_vendor_id=0x1234", "0x7E123400"},
		{"encode error", "e instance_id=0x20", "Error: encode instance_id[16:20]"},
		{"encode bad arg", "encode request_bit", "expected field=value"},
		{"encode bad value", "encode request_bit=x", "Invalid value for request_bit"},
		{"help", "help", "Commands:"},
		{"order", "order", "Byte order: big"},
		{"order invalid", "order middle", "invalid byte order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, buf, _ := newTestShell()
			if sh.Execute(tt.line) {
				t.Fatal("Execute returned quit")
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestShellQuit(t *testing.T) {
	for _, line := range []string{"quit", "exit", "q", "  QUIT  "} {
		sh, _, _ := newTestShell()
		if !sh.Execute(line) {
			t.Errorf("Execute(%q) should quit", line)
		}
	}

	sh, buf, _ := newTestShell()
	if sh.Execute("   ") {
		t.Error("blank line should not quit")
	}
	if buf.Len() != 0 {
		t.Errorf("blank line produced output: %q", buf.String())
	}
}

func TestShellOrderAffectsDecode(t *testing.T) {
	sh, buf, _ := newTestShell()
	sh.Execute("order little")
	if !strings.Contains(buf.String(), "Byte order: little") {
		t.Fatalf("order not set: %s", buf.String())
	}

	buf.Reset()
	sh.Execute("00 34 12 7E")
	if !strings.Contains(buf.String(), "vendor_pci  0x7E123400") {
		t.Errorf("little endian input not decoded: %s", buf.String())
	}
}

func TestShellLogsEvents(t *testing.T) {
	sh, _, rec := newTestShell()
	sh.Execute("7E123400")
	sh.Execute("encode request_bit=1")
	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec.events))
	}
	for _, e := range rec.events {
		if e.Source != "shell" {
			t.Errorf("Source: got %q, want shell", e.Source)
		}
	}
}
