package grading

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidTotal is returned when a score is requested over zero questions.
var ErrInvalidTotal = errors.New("total questions must be positive")

// Report is the learner-facing score: a 0-10 mark with one decimal in
// Vietnamese notation ("7,4") plus the correct-over-total text ("37/50").
type Report struct {
	Score       string `json:"score"`
	CorrectText string `json:"correctText"`
}

var viPrinter = message.NewPrinter(language.Vietnamese)

// Score converts a correct count into the 10-point report. The raw mark is
// rounded to one decimal before formatting.
func Score(correct, total int) (Report, error) {
	if total <= 0 {
		return Report{}, ErrInvalidTotal
	}
	raw := float64(correct) / float64(total) * 10
	rounded := math.Round(raw*10) / 10
	return Report{
		Score: viPrinter.Sprint(number.Decimal(rounded,
			number.MinFractionDigits(1), number.MaxFractionDigits(1))),
		CorrectText: fmt.Sprintf("%d/%d", correct, total),
	}, nil
}
