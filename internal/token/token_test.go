package token

import "testing"

func TestGenerate(t *testing.T) {
	t.Run("produces six digit codes", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := Generate()
			if len(code) != Length {
				t.Fatalf("expected %d characters, got %q", Length, code)
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					t.Fatalf("expected only digits, got %q", code)
				}
			}
		}
	})

	t.Run("codes vary across calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			seen[Generate()] = true
		}
		// 50 draws from a million-code space collapsing to one value would
		// mean a broken generator, not bad luck.
		if len(seen) < 2 {
			t.Fatalf("expected varied codes, got %d distinct values", len(seen))
		}
	})
}
