package career

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSkills         = 8
	maxMilestoneItems = 5
	maxTasks          = 12
	minItemLen        = 3 // items must be longer than this
	maxHeadingLen     = 60

	highPriorityWeekly = 3
	highPriorityTasks  = 5

	weeklyTaskDuration = "3-5 hours/week"
	taskEstimatedHours = 5
	taskCategory       = "study"

	PriorityHigh   = "high"
	PriorityMedium = "medium"

	TimelineShortTerm  = "short-term"
	TimelineMediumTerm = "medium-term"
)

// DefaultResources are suggested with every converted plan.
var DefaultResources = []string{"Coursera", "Udemy", "Khan Academy", "YouTube tutorials", "Official documentation"}

type (
	// ParsedStudyPlanDraft is the structured form of an action plan, ready to populate a study plan.
	ParsedStudyPlanDraft struct {
		StudyMaterials StudyMaterials `json:"study_materials"`
		Schedule       Schedule       `json:"schedule"`
		Milestones     Milestones     `json:"milestones"`
		Tasks          []Task         `json:"tasks"`
	}

	StudyMaterials struct {
		Subjects  []string `json:"subjects"`
		Skills    []string `json:"skills"`
		Resources []string `json:"resources"`
	}

	Schedule struct {
		WeeklyTasks     []WeeklyTask    `json:"weekly_tasks"`
		DailyActivities []DailyActivity `json:"daily_activities"`
	}

	WeeklyTask struct {
		Task     string `json:"task"`
		Subject  string `json:"subject"`
		Duration string `json:"duration"`
		Priority string `json:"priority"`
		Timeline string `json:"timeline"`
	}

	DailyActivity struct {
		Activity string `json:"activity"`
		Duration string `json:"duration"`
		Type     string `json:"type"`
	}

	Milestones struct {
		ShortTerm  []string `json:"short_term"`
		MediumTerm []string `json:"medium_term"`
		LongTerm   []string `json:"long_term"`
	}

	Task struct {
		ID             int    `json:"id"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		Category       string `json:"category"`
		EstimatedHours int    `json:"estimated_hours"`
		Priority       string `json:"priority"`
		Deadline       string `json:"deadline"`
	}
)

var (
	boldRe     = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	numberedRe = regexp.MustCompile(`^\d+[.)]\s+`)
)

// Convert extracts a structured study plan from an action plan, AI generated or rendered.
// It never fails: missing sections yield empty lists, missing milestones fall back to generic ones.
func Convert(text, profession string) ParsedStudyPlanDraft {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	subjects := extractBullets(lines, keySubjectsMarker, isSectionHeader, maxSubjects)
	skills := extractBullets(lines, skillsMarker, isSectionHeader, maxSkills)
	shortTerm := extractBullets(lines, shortTermMarker, isHeading, maxMilestoneItems)
	mediumTerm := extractBullets(lines, mediumTermMarker, isHeading, maxMilestoneItems)
	longTerm := extractBullets(lines, longTermMarker, isHeading, maxMilestoneItems)

	return ParsedStudyPlanDraft{
		StudyMaterials: StudyMaterials{
			Subjects:  subjects,
			Skills:    skills,
			Resources: append([]string(nil), DefaultResources...),
		},
		Schedule: Schedule{
			WeeklyTasks:     weeklyTasks(subjects),
			DailyActivities: dailyActivities(subjects, skills, profession),
		},
		Milestones: Milestones{
			ShortTerm:  orFallback(shortTerm, shortTermFallback(profession)),
			MediumTerm: orFallback(mediumTerm, mediumTermFallback(profession)),
			LongTerm:   orFallback(longTerm, longTermFallback(profession)),
		},
		Tasks: buildTasks(shortTerm, mediumTerm),
	}
}

// extractBullets collects up to limit bullet items under the first heading matching start that has any,
// reading until a line for which stop reports true.
func extractBullets(lines []string, start *regexp.Regexp, stop func(string) bool, limit int) []string {
	for i, line := range lines {
		if !isHeading(line) || !start.MatchString(line) {
			continue
		}
		if items := collectBullets(lines[i+1:], stop, limit); len(items) > 0 {
			return items
		}
	}
	return make([]string, 0, limit)
}

func collectBullets(lines []string, stop func(string) bool, limit int) []string {
	items := make([]string, 0, limit)
	for _, line := range lines {
		if stop(line) {
			break
		}
		item, ok := bulletText(line)
		if !ok || utf8.RuneCountInString(item) <= minItemLen {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}

// bulletText strips bold markers and reports whether line is a `-`, `•`, `*` or numbered list item.
func bulletText(line string) (string, bool) {
	line = strings.TrimSpace(boldRe.ReplaceAllString(line, "$1"))
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") {
		return strings.TrimSpace(strings.TrimLeft(line, "-•* \t")), true
	}
	if loc := numberedRe.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:]), true
	}
	return "", false
}

func isSectionHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// isHeading reports whether line is shaped like a heading: a markdown `#` heading, a line wrapped in `**` or `*`,
// or a short label ending in a colon. A bulleted label is a heading only when it names a timeline.
func isHeading(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "#") || wrappedIn(t, "**") || (wrappedIn(t, "*") && !strings.HasPrefix(t, "* ")) {
		return true
	}
	label := strings.TrimSpace(boldRe.ReplaceAllString(t, "$1"))
	if text, isBullet := bulletText(t); isBullet {
		if !isTimelineLabel(text) {
			return false
		}
		label = text
	}
	return strings.HasSuffix(label, ":") && utf8.RuneCountInString(label) <= maxHeadingLen
}

func wrappedIn(s, marker string) bool {
	return len(s) > 2*len(marker) && strings.HasPrefix(s, marker) && strings.HasSuffix(s, marker)
}

func isTimelineLabel(s string) bool {
	return shortTermMarker.MatchString(s) || mediumTermMarker.MatchString(s) || longTermMarker.MatchString(s)
}

func weeklyTasks(subjects []string) []WeeklyTask {
	tasks := make([]WeeklyTask, 0, len(subjects))
	for i, subject := range subjects {
		priority := PriorityMedium
		if i < highPriorityWeekly {
			priority = PriorityHigh
		}
		tasks = append(tasks, WeeklyTask{
			Task:     "Study " + subject,
			Subject:  subject,
			Duration: weeklyTaskDuration,
			Priority: priority,
			Timeline: TimelineShortTerm,
		})
	}
	return tasks
}

func dailyActivities(subjects, skills []string, profession string) []DailyActivity {
	focus := profession
	if len(subjects) > 0 {
		focus = subjects[0]
	}
	practice := "exercises related to " + focus
	if len(skills) > 0 {
		practice = skills[0]
	}
	return []DailyActivity{
		{Activity: "Review notes on " + focus, Duration: "30 minutes", Type: "review"},
		{Activity: "Practice " + practice, Duration: "45 minutes", Type: "practice"},
		{Activity: fmt.Sprintf("Read an article or case study about working as %s", profession), Duration: "15 minutes", Type: "reading"},
	}
}

func buildTasks(shortTerm, mediumTerm []string) []Task {
	items := make([]string, 0, len(shortTerm)+len(mediumTerm))
	items = append(items, shortTerm...)
	items = append(items, mediumTerm...)
	if len(items) > maxTasks {
		items = items[:maxTasks]
	}

	tasks := make([]Task, 0, len(items))
	for i, item := range items {
		priority := PriorityMedium
		if i < highPriorityTasks {
			priority = PriorityHigh
		}
		deadline := TimelineMediumTerm
		if i < len(shortTerm) {
			deadline = TimelineShortTerm
		}
		tasks = append(tasks, Task{
			ID:             i + 1,
			Title:          item,
			Description:    "Milestone task: " + item,
			Category:       taskCategory,
			EstimatedHours: taskEstimatedHours,
			Priority:       priority,
			Deadline:       deadline,
		})
	}
	return tasks
}

func orFallback(items []string, fallback string) []string {
	if len(items) > 0 {
		return items
	}
	return []string{fallback}
}

func shortTermFallback(p string) string {
	return fmt.Sprintf("Build foundation in %s core subjects", p)
}

func mediumTermFallback(p string) string {
	return fmt.Sprintf("Gain practical experience in %s", p)
}

func longTermFallback(p string) string {
	return fmt.Sprintf("Establish a professional career as %s", p)
}
