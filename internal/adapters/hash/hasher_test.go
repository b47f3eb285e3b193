package hash_test

import (
	"testing"

	"github.com/mosaic-ui/mosaic/internal/adapters/hash"
)

func TestHashSource_Deterministic(t *testing.T) {
	h := hash.New()
	src := "const A = 1;\nexport default A;\n"

	first := h.HashSource(src)
	second := h.HashSource(src)

	if first != second {
		t.Fatalf("expected identical hashes, got %q and %q", first, second)
	}
	if len(first) != 16 {
		t.Errorf("expected 16 hex chars, got %q", first)
	}
}

func TestHashSource_NormalizesLineEndings(t *testing.T) {
	h := hash.New()

	unix := h.HashSource("const a = 1;\nconst b = 2;\n")
	dos := h.HashSource("const a = 1;\r\nconst b = 2;\r\n")

	if unix != dos {
		t.Errorf("CRLF and LF variants should hash equal, got %q vs %q", unix, dos)
	}
}

func TestHashSource_TrimsTrailingWhitespace(t *testing.T) {
	h := hash.New()

	plain := h.HashSource("const a = 1;\n")
	trailing := h.HashSource("const a = 1;  \t\n")

	if plain != trailing {
		t.Errorf("trailing whitespace should not change the hash")
	}
}

func TestHashSource_DistinctContent(t *testing.T) {
	h := hash.New()

	if h.HashSource("const a = 1;") == h.HashSource("const a = 2;") {
		t.Error("different content should hash differently")
	}
}

func TestNormalize_PreservesInteriorWhitespace(t *testing.T) {
	got := hash.Normalize("a  b\t c\n")
	if got != "a  b\t c\n" {
		t.Errorf("interior whitespace must survive normalization, got %q", got)
	}
}
