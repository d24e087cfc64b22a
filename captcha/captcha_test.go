package captcha

import (
	"strings"
	"testing"
)

func TestGenerateTextLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{4, 5, 8} {
		text, err := GenerateText(length)
		if err != nil {
			t.Fatalf("GenerateText(%d) failed: %v", length, err)
		}
		if len(text) != length {
			t.Fatalf("expected length %d, got %d", length, len(text))
		}
		for _, r := range text {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("unexpected rune %q outside alphabet", r)
			}
		}
	}
}

func TestGenerateTextRejectsNonPositiveLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := GenerateText(length); err == nil {
			t.Fatalf("expected error for length %d", length)
		}
	}
}

func TestGenerateTextVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		text, err := GenerateText(6)
		if err != nil {
			t.Fatalf("GenerateText failed: %v", err)
		}
		seen[text] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varied challenge text")
	}
}

func TestAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, r := range "0O1lIi" {
		if strings.ContainsRune(alphabet, r) {
			t.Fatalf("alphabet must not contain ambiguous glyph %q", r)
		}
	}
}

func TestRendererProducesImage(t *testing.T) {
	renderer := NewRenderer()

	img, err := renderer.Render("abc45")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("expected non-empty image bytes")
	}
}
