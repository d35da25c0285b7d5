package passages

import (
	"testing"

	"github.com/tienganhkids/megatest/internal/megatest"
)

func TestForLevel(t *testing.T) {
	for _, lvl := range megatest.ValidLevels {
		pair, ok := ForLevel(lvl)
		if !ok {
			t.Fatalf("no passages for level %s", lvl)
		}
		for name, p := range map[string]Passage{"reading": pair.Reading, "true/false": pair.TrueFalse} {
			if p.Title == "" || p.Text == "" || p.Translation == "" {
				t.Errorf("%s %s passage incomplete: %+v", lvl, name, p)
			}
		}
	}
	if _, ok := ForLevel(megatest.Level("C1")); ok {
		t.Error("C1 has no fixed passages")
	}
}
