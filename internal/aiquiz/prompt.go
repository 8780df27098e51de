package aiquiz

import (
	"fmt"
	"strings"
)

const (
	defaultCount      = 3
	maxCount          = 10
	defaultDifficulty = "medium"
)

const systemPrompt = `
You write multiple-choice questions for a study quiz application.

Rules:
1. Only write questions about study subjects (mathematics, physics, chemistry, biology, history, geography, literature, languages and similar).
2. Each question has exactly one correct option.
3. Each question has 4 plausible options of similar length and structure. Distractors must be wrong but reasonable.
4. Difficulty:
   - easy: basic concepts or direct definitions.
   - medium: applying or interpreting concepts.
   - hard: analysis, deduction, relating ideas or calculations.
5. Never reveal the answer in the question text. Explain it only in "explanation".

Reply with a JSON array and nothing else:

[
  {
    "text": "<question>",
    "options": ["...", "...", "...", "..."],
    "correct_option": <zero-based index of the correct option>,
    "explanation": "<short explanation of why the option is correct>"
  }
]

If the topic is not educational, reply with an empty array.
`

func normalize(req GenerateRequest) GenerateRequest {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	if req.Count <= 0 {
		req.Count = defaultCount
	}
	if req.Count > maxCount {
		req.Count = maxCount
	}
	return req
}

func BuildUserPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d multiple-choice questions about %q with %s difficulty.", req.Count, req.Topic, req.Difficulty)
	if req.Context != "" {
		fmt.Fprintf(&b, " Use this context for the questions: %s.", req.Context)
	}
	b.WriteString(" Vary the style between direct, contextual and analytical questions.")
	return b.String()
}
