package utils

import "testing"

func TestGravatarURLDeterministic(t *testing.T) {
	a := GravatarURL("john@example.com")
	b := GravatarURL("john@example.com")
	if a != b {
		t.Fatalf("expected identical URLs, got %q and %q", a, b)
	}
}

func TestGravatarURLNormalizesEmail(t *testing.T) {
	a := GravatarURL("john@example.com")
	b := GravatarURL("  John@Example.COM ")
	if a != b {
		t.Fatalf("expected normalized emails to match: %q vs %q", a, b)
	}

	// known md5 of "john@example.com"
	want := "https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?s=200&r=pg&d=mm"
	if a != want {
		t.Fatalf("unexpected URL: got %q want %q", a, want)
	}
}
