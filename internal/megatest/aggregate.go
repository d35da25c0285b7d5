package megatest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionSpec names one section of a test composition: the JSON key the
// provider emits, the exercise kind behind it, and the required item count.
type SectionSpec struct {
	Key  string
	Kind Kind
	Need int
}

// Blueprint is a test composition. The aggregate validator admits a raw test
// only when every section meets its required count after per-item filtering.
type Blueprint struct {
	Name          string
	Sections      []SectionSpec
	NeedTFPassage bool
}

// TotalQuestions sums the required counts of all sections.
func (bp Blueprint) TotalQuestions() int {
	n := 0
	for _, s := range bp.Sections {
		n += s.Need
	}
	return n
}

// Mega50 is the canonical 50-question composition: the latest schema the
// product converged on after the earlier rewrite-heavy mix.
var Mega50 = Blueprint{
	Name: "mega50",
	Sections: []SectionSpec{
		{Key: "multipleChoice", Kind: KindMultipleChoice, Need: 10},
		{Key: "fillBlank", Kind: KindFillBlank, Need: 10},
		{Key: "scramble", Kind: KindScramble, Need: 10},
		{Key: "rewrite", Kind: KindRewrite, Need: 5},
		{Key: "reading", Kind: KindReading, Need: 5},
		{Key: "trueFalse", Kind: KindTrueFalse, Need: 5},
		{Key: "fillBox", Kind: KindFillBox, Need: 5},
	},
	NeedTFPassage: true,
}

// Mega50Legacy is the superseded first-generation composition. Kept for
// content generated before the schema change.
var Mega50Legacy = Blueprint{
	Name: "mega50v1",
	Sections: []SectionSpec{
		{Key: "rewrite", Kind: KindRewrite, Need: 40},
		{Key: "reading", Kind: KindReading, Need: 5},
		{Key: "pronunciation", Kind: KindPronunciation, Need: 5},
	},
}

// BlueprintByName resolves a blueprint from its config name.
func BlueprintByName(name string) (Blueprint, bool) {
	switch name {
	case "", Mega50.Name:
		return Mega50, true
	case Mega50Legacy.Name, "mega50-legacy":
		return Mega50Legacy, true
	}
	return Blueprint{}, false
}

// Result is the outcome of aggregate validation: either a filtered test with
// every section truncated to its required count, or the complete list of
// defects found. Errors are data, never panics, so the caller can show the
// whole picture and decide to retry generation or report a bug.
type Result struct {
	Valid    bool      `json:"valid"`
	Errors   []string  `json:"errors"`
	Filtered *MegaTest `json:"filteredTest"`
}

// ValidateTest admits raw provider output against the canonical blueprint.
func ValidateTest(raw []byte) Result {
	return ValidateTestWith(raw, Mega50)
}

// ValidateTestWith runs the full admission gate: level tag, required
// passages, then every item of every section through its type validator.
// Validation never short-circuits after the top-level object check; all
// defects are accumulated and the test is valid only when none were found.
func ValidateTestWith(raw []byte, bp Blueprint) Result {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Result{Errors: []string{"MegaTest không phải object hợp lệ"}}
	}

	var errs []string

	level := Level(rawString(obj["level"]))
	if !level.Valid() {
		errs = append(errs, fmt.Sprintf("Level %q không hợp lệ - phải là A1, A2, hoặc B1", level))
	}

	passage := rawString(obj["passage"])
	if strings.TrimSpace(passage) == "" {
		errs = append(errs, "Thiếu passage đọc hiểu")
	}
	tfPassage := rawString(obj["tf_passage"])
	if bp.NeedTFPassage && strings.TrimSpace(tfPassage) == "" {
		errs = append(errs, "Thiếu passage true/false")
	}

	test := MegaTest{
		Level:              level,
		Passage:            passage,
		PassageTranslation: rawString(obj["passage_translation"]),
		TFPassage:          tfPassage,
		TFTranslation:      rawString(obj["tf_passage_translation"]),
	}

	for _, s := range bp.Sections {
		items, ok := sectionItems(obj, s.Key)
		if !ok {
			errs = append(errs, fmt.Sprintf("Thiếu mảng %s questions", s.Key))
			continue
		}
		switch s.Kind {
		case KindRewrite:
			test.Rewrite = validateSection(items, s, ValidateRewrite, &errs)
		case KindReading:
			test.Reading = validateSection(items, s, ValidateReading, &errs)
		case KindPronunciation:
			test.Pronunciation = validateSection(items, s, ValidatePronunciation, &errs)
		case KindMultipleChoice:
			test.MultipleChoice = validateSection(items, s, ValidateMultipleChoice, &errs)
		case KindFillBlank:
			test.FillBlank = validateSection(items, s, ValidateFillBlank, &errs)
		case KindScramble:
			test.Scramble = validateSection(items, s, ValidateScramble, &errs)
		case KindTrueFalse:
			test.TrueFalse = validateSection(items, s, ValidateTrueFalse, &errs)
		case KindFillBox:
			test.FillBox = validateSection(items, s, ValidateFillBox, &errs)
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Valid: true, Errors: []string{}, Filtered: &test}
}

// validateSection filters one section through its item validator, records
// every per-item defect plus a quota error when too few items survive, and
// truncates surplus valid items to the required count in original order.
func validateSection[T any](items []json.RawMessage, s SectionSpec, fn func(json.RawMessage, int) (T, error), errs *[]string) []T {
	valid := make([]T, 0, len(items))
	for i, item := range items {
		q, err := fn(item, i)
		if err != nil {
			*errs = append(*errs, err.Error())
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) < s.Need {
		*errs = append(*errs, fmt.Sprintf("Chỉ có %d/%d %s questions hợp lệ", len(valid), s.Need, s.Key))
	}
	if len(valid) > s.Need {
		valid = valid[:s.Need]
	}
	return valid
}

func sectionItems(obj map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func rawString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
