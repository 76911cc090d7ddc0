package career

import (
	"fmt"
	"strings"
)

const careerSystemPrompt = "You are an experienced career counselor who builds realistic, step by step action plans " +
	"for students. Be encouraging, concrete and structured."

func careerPlanPrompt(sess Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a career action plan for a student who wants to become a %s.\n\n", sess.TargetProfession)

	if len(sess.UserResponses) > 0 {
		b.WriteString("Counseling questions:\n")
		b.WriteString(sess.InitialQuestions)
		b.WriteString("\nStudent answers:\n")
		for i, r := range sess.UserResponses {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
		b.WriteString("\n")
	}

	b.WriteString("Use exactly these section headers, in this order, with bullet points (-) for list items:\n")
	for _, h := range []string{HeaderKeySubjects, HeaderActivities, HeaderSkills, HeaderEducation, HeaderMilestones} {
		b.WriteString(h + "\n")
	}
	fmt.Fprintf(&b, "Inside the milestones section use the sub-headings %s, %s and %s.\n",
		HeaderShortTerm, HeaderMediumTerm, HeaderLongTerm)
	b.WriteString(HeaderNextSteps + "\n")
	fmt.Fprintf(&b, "List at most %d key subjects and at most %d items per milestone period.", maxSubjects, maxMilestoneItems)
	return b.String()
}
