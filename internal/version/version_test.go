package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("shortCommit(abc) = %q", got)
	}
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("shortCommit = %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	t.Parallel()

	if Resolve().Version == "" {
		t.Fatal("empty version")
	}
	if s := String(); s == "" || strings.HasPrefix(s, " ") {
		t.Fatalf("String() = %q", s)
	}
}
