package uuid

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatal("expected distinct IDs")
	}
	if !IsValid(a) {
		t.Errorf("expected %q to be valid", a)
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "0190b6a4-7c1e-7a2b-9c3d-4e5f60718293", want: true},
		{in: "0190B6A4-7C1E-7A2B-9C3D-4E5F60718293", want: true},
		{in: "0190b6a47c1e7a2b9c3d4e5f60718293", want: false},
		{in: "urn:uuid:0190b6a4-7c1e-7a2b-9c3d-4e5f60718293", want: false},
		{in: "42", want: false},
		{in: "", want: false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	got, err := Canonical("0190B6A4-7C1E-7A2B-9C3D-4E5F60718293")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != strings.ToLower("0190B6A4-7C1E-7A2B-9C3D-4E5F60718293") {
		t.Errorf("expected lower-case form, got %q", got)
	}
	if _, err := Canonical("nope"); err == nil {
		t.Error("expected an error for a malformed ID")
	}
}

func TestCreatedAt(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, ok := CreatedAt(New())
	if !ok {
		t.Fatal("expected a UUIDv7 timestamp")
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("timestamp %s out of range", ts)
	}

	if _, ok := CreatedAt("f47ac10b-58cc-4372-a567-0e02b2c3d479"); ok {
		t.Error("expected no timestamp for a UUIDv4")
	}
}
