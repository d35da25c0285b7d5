package megatest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Per-type validators. Each takes one raw item plus its 0-based position in
// the section and returns the parsed question or a diagnostic error. The
// diagnostics are user-facing (shown to teachers in the error panel), so they
// are written in Vietnamese and embed the 1-based question number, matching
// the product's tone. Validators never panic and share no state; running them
// in any order yields the same results.

var validChoices = []string{"A", "B", "C"}

func validChoice(c string) bool {
	for _, v := range validChoices {
		if c == v {
			return true
		}
	}
	return false
}

type reqField struct {
	name  string
	value string
}

func checkRequired(label string, index int, fields []reqField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s Q%d: thiếu field %q", label, index+1, f.name)
		}
	}
	return nil
}

func checkLevel(label string, index int, l Level) error {
	if !l.Valid() {
		return fmt.Errorf("%s Q%d: level %q không hợp lệ", label, index+1, l)
	}
	return nil
}

// ValidateRewrite checks a sentence-rewriting question. Beyond field
// presence, the hint must not simply be the full answer.
func ValidateRewrite(raw json.RawMessage, index int) (RewriteQ, error) {
	var q RewriteQ
	if err := json.Unmarshal(raw, &q); err != nil {
		return RewriteQ{}, fmt.Errorf("Rewrite Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Rewrite", index, []reqField{
		{"id", q.ID},
		{"original_sentence", q.OriginalSentence},
		{"instruction", q.Instruction},
		{"hint_sample", q.HintSample},
		{"rewritten_correct", q.RewrittenCorrect},
		{"explanation_vi", q.ExplanationVI},
		{"level", string(q.Level)},
	})
	if err != nil {
		return RewriteQ{}, err
	}
	if err := checkLevel("Rewrite", index, q.Level); err != nil {
		return RewriteQ{}, err
	}
	if strings.EqualFold(q.HintSample, q.RewrittenCorrect) {
		return RewriteQ{}, fmt.Errorf("Rewrite Q%d: hint không được là đáp án đầy đủ", index+1)
	}
	return q, nil
}

// ValidateReading checks a 3-choice reading comprehension question.
func ValidateReading(raw json.RawMessage, index int) (ReadingMCQ, error) {
	var q ReadingMCQ
	if err := json.Unmarshal(raw, &q); err != nil {
		return ReadingMCQ{}, fmt.Errorf("Reading Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Reading", index, []reqField{
		{"id", q.ID},
		{"question_text", q.QuestionText},
		{"explanation_vi", q.ExplanationVI},
		{"level", string(q.Level)},
	})
	if err != nil {
		return ReadingMCQ{}, err
	}
	if err := checkLevel("Reading", index, q.Level); err != nil {
		return ReadingMCQ{}, err
	}
	if len(q.Choices) != 3 {
		return ReadingMCQ{}, fmt.Errorf("Reading Q%d: choices phải có đúng 3 lựa chọn A/B/C", index+1)
	}
	for i, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return ReadingMCQ{}, fmt.Errorf("Reading Q%d: choice %d rỗng", index+1, i+1)
		}
	}
	if !validChoice(q.CorrectChoice) {
		return ReadingMCQ{}, fmt.Errorf("Reading Q%d: correct_choice phải là A, B, hoặc C", index+1)
	}
	return q, nil
}

// ValidatePronunciation checks an odd-one-out sound question. Every choice
// must carry a word and an underlined fragment occurring inside that word.
func ValidatePronunciation(raw json.RawMessage, index int) (PronunciationMCQ, error) {
	var q PronunciationMCQ
	if err := json.Unmarshal(raw, &q); err != nil {
		return PronunciationMCQ{}, fmt.Errorf("Pronunciation Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Pronunciation", index, []reqField{
		{"id", q.ID},
		{"instruction", q.Instruction},
		{"explanation_vi", q.ExplanationVI},
		{"level", string(q.Level)},
	})
	if err != nil {
		return PronunciationMCQ{}, err
	}
	if err := checkLevel("Pronunciation", index, q.Level); err != nil {
		return PronunciationMCQ{}, err
	}
	if len(q.Choices) != 3 {
		return PronunciationMCQ{}, fmt.Errorf("Pronunciation Q%d: choices phải có đúng 3 lựa chọn", index+1)
	}
	for i, c := range q.Choices {
		if strings.TrimSpace(c.Word) == "" || strings.TrimSpace(c.Underlined) == "" {
			return PronunciationMCQ{}, fmt.Errorf("Pronunciation Q%d: choice %d thiếu word hoặc underlined", index+1, i+1)
		}
		if !strings.Contains(strings.ToLower(c.Word), strings.ToLower(c.Underlined)) {
			return PronunciationMCQ{}, fmt.Errorf("Pronunciation Q%d: underlined %q không có trong word %q", index+1, c.Underlined, c.Word)
		}
	}
	if !validChoice(q.CorrectChoice) {
		return PronunciationMCQ{}, fmt.Errorf("Pronunciation Q%d: correct_choice phải là A, B, hoặc C", index+1)
	}
	return q, nil
}

// ValidateMultipleChoice checks a 4-option question graded by index.
func ValidateMultipleChoice(raw json.RawMessage, index int) (MultipleChoiceQ, error) {
	var loose struct {
		ID            string   `json:"id"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer *int     `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
		Level         Level    `json:"level"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return MultipleChoiceQ{}, fmt.Errorf("Multiple Choice Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Multiple Choice", index, []reqField{
		{"id", loose.ID},
		{"question", loose.Question},
		{"explanation", loose.Explanation},
		{"level", string(loose.Level)},
	})
	if err != nil {
		return MultipleChoiceQ{}, err
	}
	if err := checkLevel("Multiple Choice", index, loose.Level); err != nil {
		return MultipleChoiceQ{}, err
	}
	if len(loose.Options) != 4 {
		return MultipleChoiceQ{}, fmt.Errorf("Multiple Choice Q%d: options phải có đúng 4 lựa chọn", index+1)
	}
	for i, o := range loose.Options {
		if strings.TrimSpace(o) == "" {
			return MultipleChoiceQ{}, fmt.Errorf("Multiple Choice Q%d: option %d rỗng", index+1, i+1)
		}
	}
	if loose.CorrectAnswer == nil {
		return MultipleChoiceQ{}, fmt.Errorf("Multiple Choice Q%d: thiếu field %q", index+1, "correctAnswer")
	}
	if *loose.CorrectAnswer < 0 || *loose.CorrectAnswer > 3 {
		return MultipleChoiceQ{}, fmt.Errorf("Multiple Choice Q%d: correctAnswer phải từ 0 đến 3", index+1)
	}
	return MultipleChoiceQ{
		ID:            loose.ID,
		Question:      loose.Question,
		Options:       loose.Options,
		CorrectAnswer: *loose.CorrectAnswer,
		Explanation:   loose.Explanation,
		Level:         loose.Level,
	}, nil
}

// blankRE matches one blank marker: a run of three or more underscores.
var blankRE = regexp.MustCompile(`_{3,}`)

// ValidateFillBlank checks a single-word gap-fill question. The question text
// must contain exactly one blank marker and the answer must be one word.
func ValidateFillBlank(raw json.RawMessage, index int) (FillBlankQ, error) {
	var q FillBlankQ
	if err := json.Unmarshal(raw, &q); err != nil {
		return FillBlankQ{}, fmt.Errorf("Fill Blank Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Fill Blank", index, []reqField{
		{"id", q.ID},
		{"question", q.Question},
		{"correctAnswer", q.CorrectAnswer},
		{"level", string(q.Level)},
	})
	if err != nil {
		return FillBlankQ{}, err
	}
	if err := checkLevel("Fill Blank", index, q.Level); err != nil {
		return FillBlankQ{}, err
	}
	if n := len(blankRE.FindAllString(q.Question, -1)); n != 1 {
		return FillBlankQ{}, fmt.Errorf("Fill Blank Q%d: question phải chứa đúng 1 chỗ trống \"___\"", index+1)
	}
	if len(strings.Fields(q.CorrectAnswer)) != 1 {
		return FillBlankQ{}, fmt.Errorf("Fill Blank Q%d: correctAnswer phải là một từ duy nhất", index+1)
	}
	return q, nil
}

// ValidateScramble checks a word-reordering question. The shuffled list must
// be exactly a permutation of the target sentence's tokens: no extra,
// missing, or substituted words.
func ValidateScramble(raw json.RawMessage, index int) (ScrambleQ, error) {
	var q ScrambleQ
	if err := json.Unmarshal(raw, &q); err != nil {
		return ScrambleQ{}, fmt.Errorf("Scramble Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Scramble", index, []reqField{
		{"id", q.ID},
		{"correctSentence", q.CorrectSentence},
		{"level", string(q.Level)},
	})
	if err != nil {
		return ScrambleQ{}, err
	}
	if err := checkLevel("Scramble", index, q.Level); err != nil {
		return ScrambleQ{}, err
	}
	if len(q.Scrambled) == 0 {
		return ScrambleQ{}, fmt.Errorf("Scramble Q%d: thiếu field %q", index+1, "scrambled")
	}
	if !sameTokenMultiset(Tokenize(q.CorrectSentence), q.Scrambled) {
		return ScrambleQ{}, fmt.Errorf("Scramble Q%d: scrambled không khớp từ với correctSentence", index+1)
	}
	return q, nil
}

// ValidateTrueFalse checks a true/false statement. The answer must be a real
// JSON boolean; a "true" string from the model is rejected.
func ValidateTrueFalse(raw json.RawMessage, index int) (TrueFalseQ, error) {
	var loose struct {
		ID            string          `json:"id"`
		Statement     string          `json:"statement"`
		Answer        json.RawMessage `json:"answer"`
		ExplanationVI string          `json:"explanation_vi"`
		Level         Level           `json:"level"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return TrueFalseQ{}, fmt.Errorf("True/False Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("True/False", index, []reqField{
		{"id", loose.ID},
		{"statement", loose.Statement},
		{"explanation_vi", loose.ExplanationVI},
		{"level", string(loose.Level)},
	})
	if err != nil {
		return TrueFalseQ{}, err
	}
	if err := checkLevel("True/False", index, loose.Level); err != nil {
		return TrueFalseQ{}, err
	}
	var answer bool
	switch strings.TrimSpace(string(loose.Answer)) {
	case "true":
		answer = true
	case "false":
		answer = false
	default:
		return TrueFalseQ{}, fmt.Errorf("True/False Q%d: answer phải là true hoặc false", index+1)
	}
	return TrueFalseQ{
		ID:            loose.ID,
		Statement:     loose.Statement,
		Answer:        answer,
		ExplanationVI: loose.ExplanationVI,
		Level:         loose.Level,
	}, nil
}

// ValidateFillBox checks a word-box paragraph exercise: a pool of at least 5
// candidate words, at least 4 numbered blanks, and every blank's answer
// present in the pool.
func ValidateFillBox(raw json.RawMessage, index int) (FillBoxQ, error) {
	var loose struct {
		ID        string   `json:"id"`
		Paragraph string   `json:"paragraph"`
		WordBox   []string `json:"wordBox"`
		Blanks    []struct {
			Number *int   `json:"number"`
			Answer string `json:"answer"`
		} `json:"blanks"`
		ExplanationVI string `json:"explanation_vi"`
		Level         Level  `json:"level"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return FillBoxQ{}, fmt.Errorf("Word Box Q%d: không phải object hợp lệ", index+1)
	}
	err := checkRequired("Word Box", index, []reqField{
		{"id", loose.ID},
		{"paragraph", loose.Paragraph},
		{"level", string(loose.Level)},
	})
	if err != nil {
		return FillBoxQ{}, err
	}
	if err := checkLevel("Word Box", index, loose.Level); err != nil {
		return FillBoxQ{}, err
	}
	if len(loose.WordBox) < 5 {
		return FillBoxQ{}, fmt.Errorf("Word Box Q%d: wordBox phải có ít nhất 5 từ", index+1)
	}
	if len(loose.Blanks) < 4 {
		return FillBoxQ{}, fmt.Errorf("Word Box Q%d: cần ít nhất 4 chỗ trống", index+1)
	}
	pool := make(map[string]bool, len(loose.WordBox))
	for _, w := range loose.WordBox {
		pool[w] = true
	}
	blanks := make([]FillBoxBlank, 0, len(loose.Blanks))
	for i, b := range loose.Blanks {
		if b.Number == nil || *b.Number <= 0 || strings.TrimSpace(b.Answer) == "" {
			return FillBoxQ{}, fmt.Errorf("Word Box Q%d: blank %d thiếu số thứ tự hoặc đáp án", index+1, i+1)
		}
		if !pool[b.Answer] {
			return FillBoxQ{}, fmt.Errorf("Word Box Q%d: đáp án %q không có trong wordBox", index+1, b.Answer)
		}
		blanks = append(blanks, FillBoxBlank{Number: *b.Number, Answer: b.Answer})
	}
	return FillBoxQ{
		ID:            loose.ID,
		Paragraph:     loose.Paragraph,
		WordBox:       loose.WordBox,
		Blanks:        blanks,
		ExplanationVI: loose.ExplanationVI,
		Level:         loose.Level,
	}, nil
}
