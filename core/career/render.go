package career

import (
	"fmt"
	"strings"
)

type questionSet struct {
	first string
	third string
}

var questionVariants = map[Category]questionSet{
	CategoryMedical: {
		first: "What draws you to becoming a %s, and which area of healthcare (patient care, research, surgery, public health) interests you most?",
		third: "How comfortable are you with long study years and clinical training before practicing as a %s?",
	},
	CategoryLegal: {
		first: "What draws you to becoming a %s, and which field of law (criminal, corporate, human rights, family) interests you most?",
		third: "How do you feel about intensive reading, writing and public speaking, all central to working as a %s?",
	},
	CategoryEngineering: {
		first: "What draws you to becoming a %s, and which kind of systems (structures, machines, circuits, processes) do you enjoy working on?",
		third: "How confident are you in mathematics and physics, the foundations every %s relies on?",
	},
	CategoryTechnology: {
		first: "What draws you to becoming a %s, and which area of technology (web, mobile, data, security, cloud) excites you most?",
		third: "Have you written any code or built any projects yet, and how much hands-on practice can you commit to as a future %s?",
	},
}

var genericQuestions = questionSet{
	first: "What draws you to becoming a %s, and what do you already know about the day-to-day work?",
	third: "What skills or experience do you already have that could help you as a %s?",
}

const secondQuestion = "What is your current education level, and how many hours per week can you dedicate to preparing for a career as a %s?"

// RenderQuestions returns the three initial counseling questions for profession.
func RenderQuestions(profession string) string {
	qs, ok := questionVariants[ClassifyCategory(profession)]
	if !ok {
		qs = genericQuestions
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To build your personalized plan to become a %s, please answer these questions:\n\n", profession)
	fmt.Fprintf(&b, "1. "+qs.first+"\n\n", profession)
	fmt.Fprintf(&b, "2. "+secondQuestion+"\n\n", profession)
	fmt.Fprintf(&b, "3. "+qs.third+"\n", profession)
	return b.String()
}

// RenderActionPlan renders the template action plan for profession.
// The output is deterministic and parseable by Convert.
func RenderActionPlan(profession string) string {
	_, data := Classify(profession)

	var b strings.Builder
	fmt.Fprintf(&b, "# Career Action Plan: %s\n\n", profession)

	b.WriteString(HeaderKeySubjects + "\n")
	subjects := data.Subjects
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}
	for _, s := range subjects {
		b.WriteString("- " + s + "\n")
	}

	b.WriteString("\n" + HeaderActivities + "\n")
	b.WriteString(data.Activities + "\n")

	b.WriteString("\n" + HeaderSkills + "\n")
	b.WriteString(data.Skills + "\n")

	b.WriteString("\n" + HeaderEducation + "\n")
	b.WriteString(data.Education + "\n")

	b.WriteString("\n" + HeaderMilestones + "\n\n")
	writeNumbered(&b, HeaderShortTerm, data.ShortTerm)
	b.WriteString("\n")
	writeNumbered(&b, HeaderMediumTerm, data.MediumTerm)
	b.WriteString("\n")
	writeNumbered(&b, HeaderLongTerm, data.LongTerm)

	b.WriteString("\n" + HeaderNextSteps + "\n")
	for i, step := range data.NextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

func writeNumbered(b *strings.Builder, header string, items []string) {
	b.WriteString(header + "\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
