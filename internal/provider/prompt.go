package provider

import (
	"fmt"
	"strings"

	"github.com/tienganhkids/megatest/internal/megatest"
	"github.com/tienganhkids/megatest/internal/passages"
)

// BuildPrompt renders the generation instructions for a blueprint. The fixed
// passages are injected verbatim so the model writes questions about them
// instead of inventing its own texts.
func BuildPrompt(req Request, bp megatest.Blueprint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an English test writer for Vietnamese students at CEFR level %s.\n", req.Level)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	}
	if len(req.Vocabulary) > 0 {
		fmt.Fprintf(&b, "Use this vocabulary: %s\n", strings.Join(req.Vocabulary, ", "))
	}
	if len(req.Grammar) > 0 {
		fmt.Fprintf(&b, "Grammar focus: %s\n", strings.Join(req.Grammar, "; "))
	}

	b.WriteString("\nReturn ONE JSON object with these fields:\n")
	fmt.Fprintf(&b, "  \"level\": %q\n", req.Level)
	for _, s := range bp.Sections {
		fmt.Fprintf(&b, "  %q: array of EXACTLY %d questions\n", s.Key, s.Need)
	}

	if pair, ok := passages.ForLevel(req.Level); ok {
		b.WriteString("\nFixed reading passage (copy into \"passage\", translation into \"passage_translation\"):\n")
		writePassage(&b, pair.Reading)
		b.WriteString("All reading questions must be answerable from this passage only.\n")
		if bp.NeedTFPassage {
			b.WriteString("\nFixed true/false passage (copy into \"tf_passage\", translation into \"tf_passage_translation\"):\n")
			writePassage(&b, pair.TrueFalse)
			b.WriteString("All true/false statements must be checkable against this passage only.\n")
		}
	}

	b.WriteString(`
MANDATORY RULES:
- Every question needs an "id" and Vietnamese explanations where the schema has them.
- Multiple choice: exactly 4 options, "correctAnswer" is the 0-based index.
- Fill blank: the question contains exactly one "___" and the answer is one word.
- Fill box: a word box of at least 5 words, numbered blanks, every blank answer taken from the box.
- True/false: "answer" must be the JSON boolean true or false, never a string.

SCRAMBLE GOLDEN RULE: write "correctSentence" first, split it into words with
punctuation as separate tokens, then shuffle that exact list into "scrambled".
No extra words, no missing words, no changed words.
  correctSentence: "He has a bat."  ->  scrambled: ["bat", "a", "He", "has", "."]
  correctSentence: "This is a green apple."  ->  scrambled: ["green", "a", "apple", "This", "is", "."]

Before answering, recount every section and re-verify every scramble word list.
Output only the JSON object, no commentary, no markdown fences.
`)
	return b.String()
}

func writePassage(b *strings.Builder, p passages.Passage) {
	fmt.Fprintf(b, "Title: %s\n", p.Title)
	fmt.Fprintf(b, "Passage: %s\n", p.Text)
	fmt.Fprintf(b, "Translation: %s\n", p.Translation)
}
