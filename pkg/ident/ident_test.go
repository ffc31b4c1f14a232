package ident_test

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ident"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"LD", "ld"},
		{"Ld", "ld"},
		{"MyVar", "myvar"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ident.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"LD", "ld", true},
		{"S1", "s1", true},
		{"CLK", "clk", true},
		{"CLK", "clock", false},
		{"", "", true},
		{"AND", "OR", false},
	}
	for _, tt := range tests {
		if got := ident.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if ident.Compare("abc", "abc") != 0 {
		t.Error("Compare with identical normalized forms should be 0")
	}
	if ident.Compare("ABC", "abc") != 0 {
		t.Error("Compare should be case-insensitive")
	}
	if ident.Compare("abc", "abd") >= 0 {
		t.Error("Compare(abc, abd) should be negative")
	}
	if ident.Compare("abd", "abc") <= 0 {
		t.Error("Compare(abd, abc) should be positive")
	}
}

func TestContainsAndIndex(t *testing.T) {
	params := []string{"IN", "PT", "Q", "ET"}

	if !ident.Contains(params, "in") {
		t.Error("Contains should be case-insensitive")
	}
	if ident.Contains(params, "XYZ") {
		t.Error("Contains should not find an absent name")
	}
	if idx := ident.Index(params, "pt"); idx != 1 {
		t.Errorf("Index(params, pt) = %d, want 1", idx)
	}
	if idx := ident.Index(params, "nope"); idx != -1 {
		t.Errorf("Index for an absent name should be -1, got %d", idx)
	}
}

func TestIsKeyword(t *testing.T) {
	if !ident.IsKeyword("if", "IF", "THEN", "ELSE") {
		t.Error("IsKeyword should match case-insensitively")
	}
	if ident.IsKeyword("foo", "IF", "THEN", "ELSE") {
		t.Error("IsKeyword should not match a non-keyword")
	}
}
