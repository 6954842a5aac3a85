package inventory

import "testing"

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		input string
		def   int
		want  int
	}{
		{"2", 1, 2},
		{"0", 1, 0},
		{"-3", 1, -3},
		{" 7 ", 1, 7},
		{"", 1, 1},
		{"abc", 1, 1},
		{"2.5", 1, 1},
		{"NaN", 1, 1},
	}

	for _, tt := range tests {
		if got := ParseIntDefault(tt.input, tt.def); got != tt.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"t", true},
		{"yes", true},
		{"1", true},
		{" y ", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := ParseBool(tt.input); got != tt.want {
			t.Errorf("ParseBool(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
	if p := StringPtr("x"); p == nil || *p != "x" {
		t.Errorf("StringPtr(\"x\") = %v", p)
	}
	if Deref(nil) != "" {
		t.Error("Deref(nil) should be empty")
	}
	if Deref(StringPtr("x")) != "x" {
		t.Error("Deref round trip failed")
	}
}
