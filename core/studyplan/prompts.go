package studyplan

import (
	"fmt"

	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const planSystemPrompt = "You are an expert educational consultant who creates personalized study plans. " +
	"Always respond with helpful, structured study advice."

func planPrompt(usr user.User, gp GeneratePlan) string {
	goals := usr.StudyGoals
	if goals == "" {
		goals = "General improvement"
	}
	return fmt.Sprintf(`Create a personalized study plan for a %s level student studying %s.

Student Profile:
- Learning Style: %s
- Available Time: %d weeks
- Current Goals: %s

Please provide a structured study plan with:
1. Weekly breakdown of topics (Week 1, Week 2, etc.)
2. Recommended study materials and resources
3. Key milestones and assessments
4. Daily time allocation suggestions
5. Learning objectives for each week

Keep the response practical and achievable for a student.`,
		gp.DifficultyLevel, gp.Subject, usr.PreferredLearningStyle(), gp.DurationWeeks, goals,
	)
}
