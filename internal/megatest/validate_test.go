package megatest

import (
	"encoding/json"
	"strings"
	"testing"
)

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func validRewriteDoc() map[string]any {
	return map[string]any{
		"id":                "rw-1",
		"original_sentence": "She is taller than me.",
		"instruction":       "Rewrite using 'as ... as'.",
		"hint_sample":       "I am not as ...",
		"rewritten_correct": "I am not as tall as her.",
		"allowed_variants":  []string{"I'm not as tall as her."},
		"explanation_vi":    "So sánh bằng.",
		"level":             "A2",
	}
}

func TestValidateRewrite(t *testing.T) {
	if _, err := ValidateRewrite(mustRaw(t, validRewriteDoc()), 0); err != nil {
		t.Fatalf("valid rewrite rejected: %v", err)
	}

	doc := validRewriteDoc()
	doc["hint_sample"] = "I am not as tall as her."
	if _, err := ValidateRewrite(mustRaw(t, doc), 0); err == nil {
		t.Error("hint equal to answer should be rejected")
	} else if !strings.Contains(err.Error(), "hint không được là đáp án đầy đủ") {
		t.Errorf("unexpected error: %v", err)
	}

	doc = validRewriteDoc()
	delete(doc, "explanation_vi")
	if _, err := ValidateRewrite(mustRaw(t, doc), 2); err == nil {
		t.Error("missing explanation_vi should be rejected")
	} else if !strings.Contains(err.Error(), "Q3") {
		t.Errorf("error should carry 1-based index, got %v", err)
	}

	doc = validRewriteDoc()
	doc["level"] = "C2"
	if _, err := ValidateRewrite(mustRaw(t, doc), 0); err == nil {
		t.Error("invalid level should be rejected")
	}

	if _, err := ValidateRewrite(json.RawMessage(`"not an object"`), 0); err == nil {
		t.Error("non-object item should be rejected")
	}
}

func validReadingDoc() map[string]any {
	return map[string]any{
		"id":             "rd-1",
		"question_text":  "Where does Lan live?",
		"choices":        []string{"In Hanoi", "In Hue", "In Da Nang"},
		"correct_choice": "A",
		"explanation_vi": "Đoạn văn nói Lan sống ở Hà Nội.",
		"level":          "A1",
	}
}

func TestValidateReading(t *testing.T) {
	if _, err := ValidateReading(mustRaw(t, validReadingDoc()), 0); err != nil {
		t.Fatalf("valid reading rejected: %v", err)
	}

	doc := validReadingDoc()
	doc["choices"] = []string{"In Hanoi", "In Hue"}
	if _, err := ValidateReading(mustRaw(t, doc), 0); err == nil {
		t.Error("two choices should be rejected")
	}

	doc = validReadingDoc()
	doc["correct_choice"] = "D"
	if _, err := ValidateReading(mustRaw(t, doc), 0); err == nil {
		t.Error("correct_choice D should be rejected")
	}
}

func validPronunciationDoc() map[string]any {
	return map[string]any{
		"id":          "pr-1",
		"instruction": "Choose the word with the different underlined sound.",
		"choices": []map[string]string{
			{"word": "head", "underlined": "ea"},
			{"word": "bread", "underlined": "ea"},
			{"word": "sea", "underlined": "ea"},
		},
		"correct_choice": "C",
		"explanation_vi": "'sea' đọc là /i:/.",
		"level":          "B1",
	}
}

func TestValidatePronunciation(t *testing.T) {
	if _, err := ValidatePronunciation(mustRaw(t, validPronunciationDoc()), 0); err != nil {
		t.Fatalf("valid pronunciation rejected: %v", err)
	}

	doc := validPronunciationDoc()
	doc["choices"] = []map[string]string{
		{"word": "head", "underlined": "zzz"},
		{"word": "bread", "underlined": "ea"},
		{"word": "sea", "underlined": "ea"},
	}
	if _, err := ValidatePronunciation(mustRaw(t, doc), 0); err == nil {
		t.Error("underlined fragment absent from word should be rejected")
	} else if !strings.Contains(err.Error(), `"zzz"`) {
		t.Errorf("error should name the fragment, got %v", err)
	}
}

func validMCDoc() map[string]any {
	return map[string]any{
		"id":            "mc-1",
		"question":      "She ___ to school every day.",
		"options":       []string{"go", "goes", "going", "gone"},
		"correctAnswer": 1,
		"explanation":   "Chủ ngữ số ít dùng 'goes'.",
		"level":         "A1",
	}
}

func TestValidateMultipleChoice(t *testing.T) {
	if _, err := ValidateMultipleChoice(mustRaw(t, validMCDoc()), 0); err != nil {
		t.Fatalf("valid mc rejected: %v", err)
	}

	doc := validMCDoc()
	doc["correctAnswer"] = 4
	if _, err := ValidateMultipleChoice(mustRaw(t, doc), 0); err == nil {
		t.Error("correctAnswer out of range should be rejected")
	}

	doc = validMCDoc()
	delete(doc, "correctAnswer")
	if _, err := ValidateMultipleChoice(mustRaw(t, doc), 0); err == nil {
		t.Error("absent correctAnswer should be rejected, not defaulted to 0")
	}

	doc = validMCDoc()
	doc["options"] = []string{"go", "goes", "going"}
	if _, err := ValidateMultipleChoice(mustRaw(t, doc), 0); err == nil {
		t.Error("three options should be rejected")
	}
}

func validFillBlankDoc() map[string]any {
	return map[string]any{
		"id":            "fb-1",
		"question":      "I ___ breakfast at 7 o'clock.",
		"correctAnswer": "have",
		"clueEmoji":     "🍳",
		"level":         "A1",
	}
}

func TestValidateFillBlank(t *testing.T) {
	if _, err := ValidateFillBlank(mustRaw(t, validFillBlankDoc()), 0); err != nil {
		t.Fatalf("valid fill blank rejected: %v", err)
	}

	doc := validFillBlankDoc()
	doc["question"] = "I ___ breakfast ___ 7."
	if _, err := ValidateFillBlank(mustRaw(t, doc), 0); err == nil {
		t.Error("two blanks should be rejected")
	}

	doc = validFillBlankDoc()
	doc["question"] = "I eat breakfast at 7."
	if _, err := ValidateFillBlank(mustRaw(t, doc), 0); err == nil {
		t.Error("no blank should be rejected")
	}

	doc = validFillBlankDoc()
	doc["correctAnswer"] = "have had"
	if _, err := ValidateFillBlank(mustRaw(t, doc), 0); err == nil {
		t.Error("multi-word answer should be rejected")
	}
}

func validScrambleDoc() map[string]any {
	return map[string]any{
		"id":              "sc-1",
		"scrambled":       []string{"bat", "a", "He", "has", "."},
		"correctSentence": "He has a bat.",
		"translation":     "Cậu ấy có một cây gậy.",
		"level":           "A1",
	}
}

func TestValidateScramble(t *testing.T) {
	if _, err := ValidateScramble(mustRaw(t, validScrambleDoc()), 0); err != nil {
		t.Fatalf("valid scramble rejected: %v", err)
	}

	doc := validScrambleDoc()
	doc["scrambled"] = []string{"to", "bat", "a", "He", "has", "."}
	if _, err := ValidateScramble(mustRaw(t, doc), 0); err == nil {
		t.Error("extra word should be rejected")
	}

	doc = validScrambleDoc()
	doc["scrambled"] = []string{"bat", "a", "He", "has"}
	if _, err := ValidateScramble(mustRaw(t, doc), 0); err == nil {
		t.Error("missing punctuation token should be rejected")
	}
}

func TestValidateTrueFalse(t *testing.T) {
	doc := map[string]any{
		"id":             "tf-1",
		"statement":      "Lan has two brothers.",
		"answer":         false,
		"explanation_vi": "Lan chỉ có một anh trai.",
		"level":          "A1",
	}
	if _, err := ValidateTrueFalse(mustRaw(t, doc), 0); err != nil {
		t.Fatalf("valid true/false rejected: %v", err)
	}

	raw := json.RawMessage(`{"id":"tf-1","statement":"Lan has two brothers.","answer":"true","explanation_vi":"x","level":"A1"}`)
	if _, err := ValidateTrueFalse(raw, 0); err == nil {
		t.Error(`string "true" should be rejected, boolean required`)
	}

	raw = json.RawMessage(`{"id":"tf-1","statement":"Lan has two brothers.","answer":1,"explanation_vi":"x","level":"A1"}`)
	if _, err := ValidateTrueFalse(raw, 0); err == nil {
		t.Error("numeric answer should be rejected")
	}
}

func validFillBoxDoc() map[string]any {
	return map[string]any{
		"id":        "box-1",
		"paragraph": "My (1) ___ is a teacher. She (2) ___ English. We (3) ___ her very much. She is very (4) ___.",
		"wordBox":   []string{"mother", "teaches", "love", "kind", "happy"},
		"blanks": []map[string]any{
			{"number": 1, "answer": "mother"},
			{"number": 2, "answer": "teaches"},
			{"number": 3, "answer": "love"},
			{"number": 4, "answer": "kind"},
		},
		"explanation_vi": "Điền từ theo ngữ cảnh.",
		"level":          "A2",
	}
}

func TestValidateFillBox(t *testing.T) {
	if _, err := ValidateFillBox(mustRaw(t, validFillBoxDoc()), 0); err != nil {
		t.Fatalf("valid fill box rejected: %v", err)
	}

	doc := validFillBoxDoc()
	doc["wordBox"] = []string{"mother", "teaches", "love"}
	if _, err := ValidateFillBox(mustRaw(t, doc), 0); err == nil {
		t.Error("word box under 5 words should be rejected")
	}

	doc = validFillBoxDoc()
	doc["blanks"] = []map[string]any{
		{"number": 1, "answer": "mother"},
		{"number": 2, "answer": "teaches"},
	}
	if _, err := ValidateFillBox(mustRaw(t, doc), 0); err == nil {
		t.Error("fewer than 4 blanks should be rejected")
	}

	doc = validFillBoxDoc()
	doc["blanks"] = []map[string]any{
		{"number": 1, "answer": "mother"},
		{"number": 2, "answer": "teaches"},
		{"number": 3, "answer": "love"},
		{"number": 4, "answer": "father"},
	}
	if _, err := ValidateFillBox(mustRaw(t, doc), 0); err == nil {
		t.Error("blank answer outside the pool should be rejected")
	}

	doc = validFillBoxDoc()
	doc["blanks"] = []map[string]any{
		{"answer": "mother"},
		{"number": 2, "answer": "teaches"},
		{"number": 3, "answer": "love"},
		{"number": 4, "answer": "kind"},
	}
	if _, err := ValidateFillBox(mustRaw(t, doc), 0); err == nil {
		t.Error("blank without number should be rejected")
	}
}
