package domain

import "testing"

func TestMaskName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"korean name", "김철수", "김*"},
		{"single rune", "김", "김*"},
		{"ascii name", "kim", "k*"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskName(tt.in); got != tt.want {
				t.Errorf("MaskName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dashed", "010-1234-5678", "010***78"},
		{"plain digits", "01012345678", "010***78"},
		{"short", "0101", "****"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskPhone(tt.in); got != tt.want {
				t.Errorf("MaskPhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCustomerMasked(t *testing.T) {
	c := Customer{Name: "김철수", Phone: "010-1234-5678"}
	masked := c.Masked()
	if masked.Name != "김*" || masked.Phone != "010***78" {
		t.Errorf("Masked() = %+v", masked)
	}
	// original untouched
	if c.Name != "김철수" {
		t.Errorf("Masked mutated the receiver: %+v", c)
	}
}
