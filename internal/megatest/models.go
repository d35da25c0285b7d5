// Package megatest defines the mega-test content model and the validation
// gate that admits LLM-generated test JSON before it reaches a learner.
package megatest

// Level is the difficulty tier attached to passages and questions.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
)

// ValidLevels lists every accepted level tag, in order.
var ValidLevels = []Level{LevelA1, LevelA2, LevelB1}

func (l Level) Valid() bool {
	for _, v := range ValidLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Kind identifies one exercise type.
type Kind string

const (
	KindRewrite        Kind = "rewrite"
	KindReading        Kind = "reading_mcq"
	KindPronunciation  Kind = "pronunciation_mcq"
	KindMultipleChoice Kind = "multiple_choice"
	KindFillBlank      Kind = "fill_blank"
	KindScramble       Kind = "scramble"
	KindTrueFalse      Kind = "true_false"
	KindFillBox        Kind = "fill_box"
)

// Question is the common view the grading engine needs: a stable ID and the
// exercise kind used to route to a strategy.
type Question interface {
	QuestionID() string
	QuestionKind() Kind
}

// RewriteQ is a paraphrase exercise: the learner rewrites a sentence
// preserving meaning, graded against the canonical answer plus variants.
type RewriteQ struct {
	ID               string   `json:"id"`
	OriginalSentence string   `json:"original_sentence"`
	Instruction      string   `json:"instruction"`
	HintSample       string   `json:"hint_sample"`
	RewrittenCorrect string   `json:"rewritten_correct"`
	AllowedVariants  []string `json:"allowed_variants,omitempty"`
	ExplanationVI    string   `json:"explanation_vi"`
	Level            Level    `json:"level"`
}

func (q RewriteQ) QuestionID() string { return q.ID }
func (q RewriteQ) QuestionKind() Kind { return KindRewrite }

// ReadingMCQ is a 3-option (A/B/C) comprehension question over the passage.
type ReadingMCQ struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	Choices       []string `json:"choices"`
	CorrectChoice string   `json:"correct_choice"`
	ExplanationVI string   `json:"explanation_vi"`
	Level         Level    `json:"level"`
}

func (q ReadingMCQ) QuestionID() string { return q.ID }
func (q ReadingMCQ) QuestionKind() Kind { return KindReading }

// PronChoice is one option of a pronunciation question: a word plus the
// fragment whose sound is being compared. The fragment must occur in the word.
type PronChoice struct {
	Word       string `json:"word"`
	Underlined string `json:"underlined"`
}

// PronunciationMCQ is an odd-one-out sound question with 3 choices.
type PronunciationMCQ struct {
	ID            string       `json:"id"`
	Instruction   string       `json:"instruction"`
	Choices       []PronChoice `json:"choices"`
	CorrectChoice string       `json:"correct_choice"`
	ExplanationVI string       `json:"explanation_vi"`
	Level         Level        `json:"level"`
}

func (q PronunciationMCQ) QuestionID() string { return q.ID }
func (q PronunciationMCQ) QuestionKind() Kind { return KindPronunciation }

// MultipleChoiceQ is a 4-option question graded by option index.
type MultipleChoiceQ struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Level         Level    `json:"level"`
}

func (q MultipleChoiceQ) QuestionID() string { return q.ID }
func (q MultipleChoiceQ) QuestionKind() Kind { return KindMultipleChoice }

// FillBlankQ has exactly one blank marker in the question and a single-word
// answer, optionally hinted by an emoji.
type FillBlankQ struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	ClueEmoji     string `json:"clueEmoji,omitempty"`
	Level         Level  `json:"level"`
}

func (q FillBlankQ) QuestionID() string { return q.ID }
func (q FillBlankQ) QuestionKind() Kind { return KindFillBlank }

// ScrambleQ asks the learner to reorder shuffled tokens into the target
// sentence. The shuffled list must be a token-for-token permutation of it.
type ScrambleQ struct {
	ID              string   `json:"id"`
	Scrambled       []string `json:"scrambled"`
	CorrectSentence string   `json:"correctSentence"`
	Translation     string   `json:"translation,omitempty"`
	Level           Level    `json:"level"`
}

func (q ScrambleQ) QuestionID() string { return q.ID }
func (q ScrambleQ) QuestionKind() Kind { return KindScramble }

// TrueFalseQ is a statement judged against the true/false passage.
type TrueFalseQ struct {
	ID            string `json:"id"`
	Statement     string `json:"statement"`
	Answer        bool   `json:"answer"`
	ExplanationVI string `json:"explanation_vi"`
	Level         Level  `json:"level"`
}

func (q TrueFalseQ) QuestionID() string { return q.ID }
func (q TrueFalseQ) QuestionKind() Kind { return KindTrueFalse }

// FillBoxBlank binds one numbered blank in the paragraph to its correct word.
type FillBoxBlank struct {
	Number int    `json:"number"`
	Answer string `json:"answer"`
}

// FillBoxQ is a paragraph with several numbered blanks filled from a shared
// word pool that includes distractors.
type FillBoxQ struct {
	ID            string         `json:"id"`
	Paragraph     string         `json:"paragraph"`
	WordBox       []string       `json:"wordBox"`
	Blanks        []FillBoxBlank `json:"blanks"`
	ExplanationVI string         `json:"explanation_vi,omitempty"`
	Level         Level          `json:"level"`
}

func (q FillBoxQ) QuestionID() string { return q.ID }
func (q FillBoxQ) QuestionKind() Kind { return KindFillBox }

// MegaTest is the admitted, filtered test: only validated items, truncated to
// each section's required count. Read-only after validation.
type MegaTest struct {
	Level              Level  `json:"level"`
	Passage            string `json:"passage"`
	PassageTranslation string `json:"passage_translation,omitempty"`
	TFPassage          string `json:"tf_passage,omitempty"`
	TFTranslation      string `json:"tf_passage_translation,omitempty"`

	MultipleChoice []MultipleChoiceQ  `json:"multipleChoice,omitempty"`
	FillBlank      []FillBlankQ       `json:"fillBlank,omitempty"`
	Scramble       []ScrambleQ        `json:"scramble,omitempty"`
	Rewrite        []RewriteQ         `json:"rewrite,omitempty"`
	Reading        []ReadingMCQ       `json:"reading,omitempty"`
	TrueFalse      []TrueFalseQ       `json:"trueFalse,omitempty"`
	FillBox        []FillBoxQ         `json:"fillBox,omitempty"`
	Pronunciation  []PronunciationMCQ `json:"pronunciation,omitempty"`
}

// Questions returns every question in section order.
func (t MegaTest) Questions() []Question {
	out := make([]Question, 0, t.TotalQuestions())
	for _, q := range t.MultipleChoice {
		out = append(out, q)
	}
	for _, q := range t.FillBlank {
		out = append(out, q)
	}
	for _, q := range t.Scramble {
		out = append(out, q)
	}
	for _, q := range t.Rewrite {
		out = append(out, q)
	}
	for _, q := range t.Reading {
		out = append(out, q)
	}
	for _, q := range t.TrueFalse {
		out = append(out, q)
	}
	for _, q := range t.FillBox {
		out = append(out, q)
	}
	for _, q := range t.Pronunciation {
		out = append(out, q)
	}
	return out
}

// TotalQuestions counts questions across all sections.
func (t MegaTest) TotalQuestions() int {
	return len(t.MultipleChoice) + len(t.FillBlank) + len(t.Scramble) +
		len(t.Rewrite) + len(t.Reading) + len(t.TrueFalse) +
		len(t.FillBox) + len(t.Pronunciation)
}

// Redacted strips answer keys, variants, explanations and scramble target
// sentences so the test can be served to a learner before submission.
func (t MegaTest) Redacted() MegaTest {
	out := t

	out.MultipleChoice = append([]MultipleChoiceQ(nil), t.MultipleChoice...)
	for i := range out.MultipleChoice {
		out.MultipleChoice[i].CorrectAnswer = -1
		out.MultipleChoice[i].Explanation = ""
	}
	out.FillBlank = append([]FillBlankQ(nil), t.FillBlank...)
	for i := range out.FillBlank {
		out.FillBlank[i].CorrectAnswer = ""
	}
	out.Scramble = append([]ScrambleQ(nil), t.Scramble...)
	for i := range out.Scramble {
		out.Scramble[i].CorrectSentence = ""
	}
	out.Rewrite = append([]RewriteQ(nil), t.Rewrite...)
	for i := range out.Rewrite {
		out.Rewrite[i].RewrittenCorrect = ""
		out.Rewrite[i].AllowedVariants = nil
		out.Rewrite[i].ExplanationVI = ""
	}
	out.Reading = append([]ReadingMCQ(nil), t.Reading...)
	for i := range out.Reading {
		out.Reading[i].CorrectChoice = ""
		out.Reading[i].ExplanationVI = ""
	}
	out.TrueFalse = append([]TrueFalseQ(nil), t.TrueFalse...)
	for i := range out.TrueFalse {
		out.TrueFalse[i].Answer = false
		out.TrueFalse[i].ExplanationVI = ""
	}
	out.FillBox = append([]FillBoxQ(nil), t.FillBox...)
	for i := range out.FillBox {
		out.FillBox[i].Blanks = nil
		out.FillBox[i].ExplanationVI = ""
	}
	out.Pronunciation = append([]PronunciationMCQ(nil), t.Pronunciation...)
	for i := range out.Pronunciation {
		out.Pronunciation[i].CorrectChoice = ""
		out.Pronunciation[i].ExplanationVI = ""
	}
	return out
}
