package library_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/mosaic-ui/mosaic/internal/adapters/library"
	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

func TestLookup_StockComponent(t *testing.T) {
	l := library.New()

	c, err := l.Lookup("Card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Card" || c.Source == "" {
		t.Errorf("component = %+v", c)
	}
}

func TestLookup_Unknown(t *testing.T) {
	l := library.New()

	_, err := l.Lookup("NoSuchThing")
	if !errors.Is(err, domain.ErrComponentNotFound) {
		t.Errorf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	l := library.New()

	names := l.Names()
	if len(names) == 0 {
		t.Fatal("stock collection must not be empty")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}

func TestFromComponents_SkipsDuplicates(t *testing.T) {
	l := library.FromComponents([]ports.LibraryComponent{
		{Name: "X", Source: "first"},
		{Name: "X", Source: "second"},
	})

	c, err := l.Lookup("X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Source != "first" {
		t.Error("first registration must win")
	}
	if len(l.Names()) != 1 {
		t.Errorf("names = %v", l.Names())
	}
}

func TestStock_PrecompiledSpinner(t *testing.T) {
	l := library.New()

	c, err := l.Lookup("Spinner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Precompiled == "" {
		t.Error("Spinner should ship precompiled output")
	}
}
