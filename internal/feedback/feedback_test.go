package feedback

import (
	"bytes"
	"testing"
)

func TestBellRings(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	b.Success()
	b.Impact()
	if buf.String() != "\a\a\a" {
		t.Fatalf("unexpected bell output: %q", buf.String())
	}
}

func TestNilSafe(t *testing.T) {
	var b *Bell
	b.Success()
	NewBell(nil).Impact()
	CelebrateFunc(nil).Celebrate()

	called := false
	CelebrateFunc(func() { called = true }).Celebrate()
	if !called {
		t.Fatal("expected celebrate func to run")
	}
	var _ Haptics = Noop{}
	var _ Celebrator = Noop{}
}
