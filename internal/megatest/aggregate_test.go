package megatest

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// buildMega50Doc assembles a document satisfying the canonical blueprint,
// with extra counts per section so truncation can be exercised.
func buildMega50Doc(extra int) map[string]any {
	doc := map[string]any{
		"level":                  "A2",
		"passage":                "Last summer, my family went to Da Nang for a holiday.",
		"passage_translation":    "Mùa hè năm ngoái, gia đình tôi đi Đà Nẵng.",
		"tf_passage":             "I have many hobbies. I like reading books.",
		"tf_passage_translation": "Tôi có nhiều sở thích.",
	}
	for _, s := range Mega50.Sections {
		n := s.Need + extra
		items := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, sampleItem(s.Kind, i))
		}
		doc[s.Key] = items
	}
	return doc
}

func sampleItem(kind Kind, i int) map[string]any {
	switch kind {
	case KindMultipleChoice:
		m := validMCDoc()
		m["id"] = fmt.Sprintf("mc-%d", i+1)
		return m
	case KindFillBlank:
		m := validFillBlankDoc()
		m["id"] = fmt.Sprintf("fb-%d", i+1)
		return m
	case KindScramble:
		m := validScrambleDoc()
		m["id"] = fmt.Sprintf("sc-%d", i+1)
		return m
	case KindRewrite:
		m := validRewriteDoc()
		m["id"] = fmt.Sprintf("rw-%d", i+1)
		return m
	case KindReading:
		m := validReadingDoc()
		m["id"] = fmt.Sprintf("rd-%d", i+1)
		return m
	case KindTrueFalse:
		return map[string]any{
			"id":             fmt.Sprintf("tf-%d", i+1),
			"statement":      "The writer plays badminton on Saturdays.",
			"answer":         true,
			"explanation_vi": "Đoạn văn nói rõ điều đó.",
			"level":          "A2",
		}
	case KindFillBox:
		m := validFillBoxDoc()
		m["id"] = fmt.Sprintf("box-%d", i+1)
		return m
	case KindPronunciation:
		m := validPronunciationDoc()
		m["id"] = fmt.Sprintf("pr-%d", i+1)
		return m
	}
	return nil
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestValidateTestAccepts(t *testing.T) {
	res := ValidateTest(marshal(t, buildMega50Doc(0)))
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if res.Filtered == nil {
		t.Fatal("valid result must carry the filtered test")
	}
	if got := res.Filtered.TotalQuestions(); got != Mega50.TotalQuestions() {
		t.Errorf("filtered test has %d questions, want %d", got, Mega50.TotalQuestions())
	}
	if res.Filtered.Level != LevelA2 {
		t.Errorf("level = %q, want A2", res.Filtered.Level)
	}
}

func TestValidateTestTruncatesSurplus(t *testing.T) {
	res := ValidateTest(marshal(t, buildMega50Doc(2)))
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if got := len(res.Filtered.MultipleChoice); got != 10 {
		t.Errorf("multipleChoice truncated to %d, want 10", got)
	}
	if got := len(res.Filtered.FillBox); got != 5 {
		t.Errorf("fillBox truncated to %d, want 5", got)
	}
	// Truncation keeps original order.
	if res.Filtered.MultipleChoice[0].ID != "mc-1" || res.Filtered.MultipleChoice[9].ID != "mc-10" {
		t.Error("truncation must preserve section order")
	}
}

func TestValidateTestAllOrNothing(t *testing.T) {
	doc := buildMega50Doc(0)
	// Break a single rewrite question.
	items := doc["rewrite"].([]map[string]any)
	items[2]["hint_sample"] = items[2]["rewritten_correct"]

	res := ValidateTest(marshal(t, doc))
	if res.Valid {
		t.Fatal("one bad question must invalidate the whole test")
	}
	if res.Filtered != nil {
		t.Error("invalid result must not carry a filtered test")
	}
	// The broken item's own error plus the quota shortfall are both reported.
	var itemErr, quotaErr bool
	for _, e := range res.Errors {
		if strings.Contains(e, "Rewrite Q3") {
			itemErr = true
		}
		if strings.Contains(e, "Chỉ có 4/5 rewrite questions hợp lệ") {
			quotaErr = true
		}
	}
	if !itemErr || !quotaErr {
		t.Errorf("want item error and quota error, got %v", res.Errors)
	}
}

func TestValidateTestAccumulatesAcrossSections(t *testing.T) {
	doc := buildMega50Doc(0)
	doc["level"] = "C1"
	delete(doc, "passage")
	delete(doc, "scramble")

	res := ValidateTest(marshal(t, doc))
	if res.Valid {
		t.Fatal("expected invalid")
	}
	joined := strings.Join(res.Errors, "\n")
	for _, want := range []string{
		`Level "C1" không hợp lệ`,
		"Thiếu passage đọc hiểu",
		"Thiếu mảng scramble questions",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in errors:\n%s", want, joined)
		}
	}
}

func TestValidateTestCatastrophic(t *testing.T) {
	for _, raw := range []string{`[]`, `"x"`, `null`, `not json`} {
		res := ValidateTest([]byte(raw))
		if res.Valid {
			t.Errorf("input %q must be invalid", raw)
		}
		if len(res.Errors) != 1 || res.Errors[0] != "MegaTest không phải object hợp lệ" {
			t.Errorf("input %q: want single catastrophic error, got %v", raw, res.Errors)
		}
	}
}

func TestValidateTestLegacyBlueprint(t *testing.T) {
	doc := map[string]any{
		"level":               "B1",
		"passage":             "Nowadays, English is one of the most important languages.",
		"passage_translation": "Ngày nay, tiếng Anh rất quan trọng.",
	}
	for _, s := range Mega50Legacy.Sections {
		items := make([]map[string]any, 0, s.Need)
		for i := 0; i < s.Need; i++ {
			items = append(items, sampleItem(s.Kind, i))
		}
		doc[s.Key] = items
	}

	res := ValidateTestWith(marshal(t, doc), Mega50Legacy)
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if got := len(res.Filtered.Rewrite); got != 40 {
		t.Errorf("rewrite = %d, want 40", got)
	}
	if got := len(res.Filtered.Pronunciation); got != 5 {
		t.Errorf("pronunciation = %d, want 5", got)
	}
}

func TestBlueprintByName(t *testing.T) {
	if bp, ok := BlueprintByName(""); !ok || bp.Name != Mega50.Name {
		t.Error("empty name must resolve to the canonical blueprint")
	}
	if bp, ok := BlueprintByName("mega50-legacy"); !ok || bp.Name != Mega50Legacy.Name {
		t.Error("mega50-legacy must resolve to the legacy blueprint")
	}
	if _, ok := BlueprintByName("nope"); ok {
		t.Error("unknown name must not resolve")
	}
}
