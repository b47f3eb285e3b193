package domain_test

import (
	"testing"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
)

func TestSingletonSet_Matches(t *testing.T) {
	set := domain.NewSingletonSet([]string{"ui-runtime", "design-tokens"})

	cases := []struct {
		specifier string
		want      bool
	}{
		{"ui-runtime", true},
		{"ui-runtime/hooks", true},
		{"design-tokens", true},
		{"ui-runtime-extras", false},
		{"left-pad", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := set.Matches(tc.specifier); got != tc.want {
			t.Errorf("Matches(%q) = %t, want %t", tc.specifier, got, tc.want)
		}
	}
}

func TestSingletonSet_Primary(t *testing.T) {
	if got := domain.NewSingletonSet([]string{"ui-runtime", "other"}).Primary(); got != "ui-runtime" {
		t.Errorf("primary = %q", got)
	}
	if got := (domain.SingletonSet{}).Primary(); got != "" {
		t.Errorf("empty primary = %q", got)
	}
}

func TestSingletonSet_Immutable(t *testing.T) {
	names := []string{"ui-runtime"}
	set := domain.NewSingletonSet(names)
	names[0] = "mutated"

	if !set.Matches("ui-runtime") {
		t.Error("set shared the caller's backing array")
	}
	got := set.Names()
	got[0] = "mutated"
	if !set.Matches("ui-runtime") {
		t.Error("Names leaked the backing array")
	}
}
