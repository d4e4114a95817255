package corpus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"Vol 2", "Vol 10", true},
		{"Vol 10", "Vol 2", false},
		{"19th Century", "20th Century", true},
		{"100", "20", false},
		{"007", "7", true},
		{"7", "007", false},
		{"2nd", "Drama", true},
		{"Drama", "Drama 2", true},
		{"Fiction", "Fiction", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			if got := NaturalLess(tt.a, tt.b); got != tt.expected {
				t.Errorf("NaturalLess(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestNaturalSort(t *testing.T) {
	values := []string{"Chapter 10", "Chapter 1", "Appendix", "Chapter 2", "1900s", "190s"}
	NaturalSort(values)

	want := []string{"190s", "1900s", "Appendix", "Chapter 1", "Chapter 2", "Chapter 10"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("NaturalSort mismatch (-want +got):\n%s", diff)
	}
}
