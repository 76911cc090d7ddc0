package progress

import (
	"fmt"
	"sort"
	"strings"

	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const (
	insightsSystemPrompt = "You are an educational data analyst who provides encouraging, actionable insights " +
		"to help students improve their learning."

	noDataInsights = "No progress data available yet. Start studying to see insights!"
)

func insightsPrompt(usr user.User, records []Record) string {
	var totalTime, scored int
	var accuracySum float64
	subjects := make(map[string]struct{})
	for _, r := range records {
		totalTime += r.TimeSpent
		subjects[r.Subject] = struct{}{}
		if r.AccuracyScore != nil {
			accuracySum += *r.AccuracyScore
			scored++
		}
	}
	var avgAccuracy float64
	if scored > 0 {
		avgAccuracy = accuracySum / float64(scored)
	}
	names := make([]string, 0, len(subjects))
	for s := range subjects {
		names = append(names, s)
	}
	sort.Strings(names)

	style := usr.LearningStyle
	if style == "" {
		style = "Not specified"
	}

	return fmt.Sprintf(`Analyze this student's learning progress and provide insights:

Study Summary:
- Total study time: %d minutes
- Average accuracy: %.1f%%
- Subjects studied: %s
- Learning sessions: %d
- Learning style: %s

Please provide:
1. Key strengths observed in their study pattern
2. Areas for improvement
3. Personalized recommendations for better learning
4. Motivational encouragement

Keep the response positive and actionable.`,
		totalTime, avgAccuracy, strings.Join(names, ", "), len(records), style,
	)
}
