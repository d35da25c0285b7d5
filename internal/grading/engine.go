// Package grading decides answer correctness per exercise kind and computes
// the 0-10 score shown to the learner.
package grading

import (
	"errors"
	"strconv"

	"github.com/tienganhkids/megatest/internal/megatest"
)

// Strategy grades a single question response.
type Strategy interface {
	Grade(q megatest.Question, response any) (bool, error)
}

// Grader routes by question kind to the correct Strategy.
type Grader interface {
	Grade(q megatest.Question, response any) (bool, error)
	GradeTest(t megatest.MegaTest, responses map[string]any) (Summary, error)
}

// Summary is the outcome of grading a whole attempt. Unanswered questions
// simply contribute zero to Correct.
type Summary struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Report  Report `json:"report"`
}

type defaultGrader struct {
	strategies map[megatest.Kind]Strategy
}

// NewGrader installs the built-in strategies for every exercise kind.
func NewGrader() Grader {
	return &defaultGrader{
		strategies: map[megatest.Kind]Strategy{
			megatest.KindRewrite:        rewriteStrategy{},
			megatest.KindReading:        choiceStrategy{},
			megatest.KindPronunciation:  choiceStrategy{},
			megatest.KindMultipleChoice: indexStrategy{},
			megatest.KindFillBlank:      fillBlankStrategy{},
			megatest.KindScramble:       scrambleStrategy{},
			megatest.KindTrueFalse:      trueFalseStrategy{},
			megatest.KindFillBox:        fillBoxStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(q megatest.Question, response any) (bool, error) {
	s, ok := g.strategies[q.QuestionKind()]
	if !ok {
		return false, errors.New("no strategy for kind " + string(q.QuestionKind()))
	}
	return s.Grade(q, response)
}

// GradeTest grades every answered question and builds the score report.
// A malformed response counts as wrong rather than failing the attempt:
// the content is trusted at this point, learner input is not.
func (g *defaultGrader) GradeTest(t megatest.MegaTest, responses map[string]any) (Summary, error) {
	correct := 0
	total := t.TotalQuestions()
	for _, q := range t.Questions() {
		resp, answered := responses[q.QuestionID()]
		if !answered {
			continue
		}
		ok, err := g.Grade(q, resp)
		if err == nil && ok {
			correct++
		}
	}
	report, err := Score(correct, total)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Correct: correct, Total: total, Report: report}, nil
}

type rewriteStrategy struct{}

func (rewriteStrategy) Grade(q megatest.Question, response any) (bool, error) {
	rw, ok := q.(megatest.RewriteQ)
	if !ok {
		return false, errors.New("question must be RewriteQ")
	}
	s, ok := response.(string)
	if !ok {
		return false, errors.New("response must be string")
	}
	return IsRewriteCorrect(s, rw.RewrittenCorrect, rw.AllowedVariants), nil
}

// choiceStrategy compares the submitted A/B/C label as-is.
type choiceStrategy struct{}

func (choiceStrategy) Grade(q megatest.Question, response any) (bool, error) {
	s, ok := response.(string)
	if !ok {
		return false, errors.New("response must be string")
	}
	switch v := q.(type) {
	case megatest.ReadingMCQ:
		return s == v.CorrectChoice, nil
	case megatest.PronunciationMCQ:
		return s == v.CorrectChoice, nil
	}
	return false, errors.New("question must be a choice question")
}

// indexStrategy compares the submitted 0-based option index.
type indexStrategy struct{}

func (indexStrategy) Grade(q megatest.Question, response any) (bool, error) {
	mc, ok := q.(megatest.MultipleChoiceQ)
	if !ok {
		return false, errors.New("question must be MultipleChoiceQ")
	}
	idx, ok := toInt(response)
	if !ok {
		return false, errors.New("response must be an option index")
	}
	return idx == mc.CorrectAnswer, nil
}

type fillBlankStrategy struct{}

func (fillBlankStrategy) Grade(q megatest.Question, response any) (bool, error) {
	fb, ok := q.(megatest.FillBlankQ)
	if !ok {
		return false, errors.New("question must be FillBlankQ")
	}
	s, ok := response.(string)
	if !ok {
		return false, errors.New("response must be string")
	}
	return IsFillBlankCorrect(s, fb.CorrectAnswer), nil
}

type scrambleStrategy struct{}

func (scrambleStrategy) Grade(q megatest.Question, response any) (bool, error) {
	sc, ok := q.(megatest.ScrambleQ)
	if !ok {
		return false, errors.New("question must be ScrambleQ")
	}
	s, ok := response.(string)
	if !ok {
		return false, errors.New("response must be string")
	}
	return IsScrambleCorrect(s, sc.CorrectSentence), nil
}

// trueFalseStrategy requires a real boolean; a "true" string is not one.
type trueFalseStrategy struct{}

func (trueFalseStrategy) Grade(q megatest.Question, response any) (bool, error) {
	tf, ok := q.(megatest.TrueFalseQ)
	if !ok {
		return false, errors.New("question must be TrueFalseQ")
	}
	b, ok := response.(bool)
	if !ok {
		return false, errors.New("response must be bool")
	}
	return b == tf.Answer, nil
}

// fillBoxStrategy expects a map of blank number to chosen word and requires
// every blank to match its pool word exactly.
type fillBoxStrategy struct{}

func (fillBoxStrategy) Grade(q megatest.Question, response any) (bool, error) {
	box, ok := q.(megatest.FillBoxQ)
	if !ok {
		return false, errors.New("question must be FillBoxQ")
	}
	chosen, ok := toStringMap(response)
	if !ok {
		return false, errors.New("response must be map of blank number to word")
	}
	for _, b := range box.Blanks {
		if chosen[strconv.Itoa(b.Number)] != b.Answer {
			return false, nil
		}
	}
	return true, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, e := range m {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
