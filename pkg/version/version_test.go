package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
		patch uint16
	}{
		{"1.0.0", 1, 0, 0},
		{"1.1.0", 1, 1, 0},
		{"2.0.3", 2, 0, 3},
		{"10.23.4", 10, 23, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
			if v.Patch != tt.patch {
				t.Errorf("Patch = %d, want %d", v.Patch, tt.patch)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.0",
		"abc",
		"1.0.0.0",
		"1.0.x",
		"-1.0.0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	v, err := Parse("1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1.0.0" {
		t.Errorf("String() = %q, want %q", v.String(), "1.0.0")
	}

	v2, err := Parse("10.23.4")
	if err != nil {
		t.Fatal(err)
	}
	if v2.String() != "10.23.4" {
		t.Errorf("String() = %q, want %q", v2.String(), "10.23.4")
	}
}

func TestCompatible_SameMajor(t *testing.T) {
	v1, _ := Parse("1.0.0")
	v2, _ := Parse("1.1.0")

	if !v1.Compatible(v2) {
		t.Error("1.0.0 should be compatible with 1.1.0")
	}
	if !v2.Compatible(v1) {
		t.Error("1.1.0 should be compatible with 1.0.0")
	}
}

func TestCompatible_DifferentMajor(t *testing.T) {
	v1, _ := Parse("1.0.0")
	v2, _ := Parse("2.0.0")

	if v1.Compatible(v2) {
		t.Error("1.0.0 should NOT be compatible with 2.0.0")
	}
	if v2.Compatible(v1) {
		t.Error("2.0.0 should NOT be compatible with 1.0.0")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"1.9.9", "2.0.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, _ := Parse(tt.a)
			b, _ := Parse(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	v, err := Parse(Current)
	if err != nil {
		t.Fatalf("Parse(Current) returned error: %v", err)
	}
	if v.Major != 1 {
		t.Errorf("Current version = %s, want major 1", v)
	}
}
