package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	questionRegex    = regexp.MustCompile(`(?i)^\**question\s+(\d+)\s*[:.)]\**\s*(.*)$`)
	optionRegex      = regexp.MustCompile(`^\**([A-Da-d])[).:]\**\s+(.+)$`)
	answerRegex      = regexp.MustCompile(`(?i)^\**answer\s*:\**\s*\(?([A-Da-d])\b`)
	explanationRegex = regexp.MustCompile(`(?i)^\**explanation\s*:\**\s*(.*)$`)
)

// ParseQuiz extracts the questions of a quiz written as
// "Question N: ...", "A) ..." to "D) ...", "Answer: X", "Explanation: ...".
// Questions without any option are dropped. Unknown lines extend the last question or explanation.
func ParseQuiz(text string) []QuizQuestion {
	questions := make([]QuizQuestion, 0)
	var curr *QuizQuestion
	inExplanation := false

	flush := func() {
		if curr != nil && len(curr.Options) > 0 {
			questions = append(questions, *curr)
		}
		curr = nil
		inExplanation = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := questionRegex.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			curr = &QuizQuestion{Number: n, Question: strings.TrimSpace(m[2]), Options: make(map[string]string)}
			continue
		}
		if curr == nil {
			continue
		}
		if m := answerRegex.FindStringSubmatch(line); m != nil {
			curr.Answer = strings.ToUpper(m[1])
			inExplanation = false
			continue
		}
		if m := explanationRegex.FindStringSubmatch(line); m != nil {
			curr.Explanation = strings.TrimSpace(m[1])
			inExplanation = true
			continue
		}
		if m := optionRegex.FindStringSubmatch(line); m != nil && !inExplanation {
			curr.Options[strings.ToUpper(m[1])] = strings.TrimSpace(m[2])
			continue
		}
		switch {
		case inExplanation:
			curr.Explanation = strings.TrimSpace(curr.Explanation + " " + line)
		case len(curr.Options) == 0:
			curr.Question = strings.TrimSpace(curr.Question + " " + line)
		}
	}
	flush()
	return questions
}
