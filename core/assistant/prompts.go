package assistant

import (
	"fmt"
	"strings"

	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const (
	studyHelpSystemPrompt = "You are a helpful AI tutor who provides clear, encouraging study assistance. " +
		"Give practical, educational answers that help students learn effectively."

	quizSystemPrompt = "You are an educational content creator who makes engaging, fair quiz questions " +
		"that test understanding rather than just memorization."
)

func studyHelpPrompt(usr user.User, question string, context map[string]interface{}) string {
	var info strings.Builder
	if topic, ok := context["current_topic"]; ok && topic != nil && fmt.Sprint(topic) != "" {
		fmt.Fprintf(&info, "Currently studying: %v\n", topic)
	}
	if usr.LearningStyle != "" {
		fmt.Fprintf(&info, "Learning style: %s\n", usr.LearningStyle)
	}

	return fmt.Sprintf(`%s
Student Question: %s

Please provide a helpful, educational response that:
1. Answers the question clearly and simply
2. Provides relevant examples when helpful
3. Suggests follow-up study activities if appropriate
4. Encourages the student's learning journey

Keep your response concise but thorough.`, info.String(), question)
}

func quizPrompt(qr QuizRequest) string {
	return fmt.Sprintf(`Generate %[1]d %[2]s level quiz questions about %[3]s.

Format each question exactly like this:

Question 1: [question text]
A) option1
B) option2
C) option3
D) option4
Answer: [correct option letter]
Explanation: [brief explanation of why this is correct]

Question 2: [question text]
A) option1
B) option2
C) option3
D) option4
Answer: [correct option letter]
Explanation: [brief explanation of why this is correct]

Continue this format for all %[1]d questions. Make questions that test understanding and application, not just memorization.`,
		qr.QuestionCount, qr.Difficulty, qr.Topic,
	)
}
