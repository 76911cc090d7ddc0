package career

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_roundTrip(t *testing.T) {
	for _, p := range []string{"Data Scientist", "Software Developer", "Doctor", "Lawyer", "Civil Engineer", "Teacher"} {
		t.Run(p, func(t *testing.T) {
			_, data := Classify(p)
			draft := Convert(RenderActionPlan(p), p)

			assert.Equal(t, data.Subjects[:maxSubjects], draft.StudyMaterials.Subjects)
			assert.Equal(t, data.ShortTerm, draft.Milestones.ShortTerm)
			assert.Equal(t, data.MediumTerm, draft.Milestones.MediumTerm)
			assert.Equal(t, data.LongTerm, draft.Milestones.LongTerm)

			var wantSkills []string
			for _, line := range strings.Split(data.Skills, "\n") {
				wantSkills = append(wantSkills, strings.TrimPrefix(line, "- "))
			}
			assert.Equal(t, wantSkills, draft.StudyMaterials.Skills)
		})
	}
}

func TestConvert_dataScientistSubjects(t *testing.T) {
	draft := Convert(RenderActionPlan("Data Scientist"), "Data Scientist")
	assert.Equal(t, categoryTable[CategoryTechnology].Subjects[:8], draft.StudyMaterials.Subjects)
}

func TestConvert_empty(t *testing.T) {
	draft := Convert("", "")

	assert.Equal(t, []string{}, draft.StudyMaterials.Subjects)
	assert.Equal(t, []string{}, draft.StudyMaterials.Skills)
	assert.Equal(t, []string{shortTermFallback("")}, draft.Milestones.ShortTerm)
	assert.Equal(t, []string{mediumTermFallback("")}, draft.Milestones.MediumTerm)
	assert.Equal(t, []string{longTermFallback("")}, draft.Milestones.LongTerm)
	assert.Equal(t, "Build foundation in  core subjects", draft.Milestones.ShortTerm[0])
	assert.Empty(t, draft.Tasks)
	assert.Empty(t, draft.Schedule.WeeklyTasks)
	assert.Equal(t, DefaultResources, draft.StudyMaterials.Resources)
}

func TestConvert_fallbackUsesProfession(t *testing.T) {
	draft := Convert("no sections here", "Teacher")
	assert.Equal(t, []string{"Build foundation in Teacher core subjects"}, draft.Milestones.ShortTerm)
	assert.Contains(t, draft.Milestones.MediumTerm[0], "Teacher")
	assert.Contains(t, draft.Milestones.LongTerm[0], "Teacher")
}

const aiPlan = `Here is your plan!

## Key Subjects to Focus On
* **Statistics** for data analysis
• Linear Algebra
- ML
- Machine Learning Foundations
1. Data Visualization

### Skill Development
- **Python** programming
- SQL querying

### Milestones
Short-term:
- Finish an online statistics course
- Build 2 portfolio projects
Medium term:
- Get a junior analyst job
**Long-term goals**
- Lead a data team
### Next Steps
- Sign up for a course
`

func TestConvert_aiStyleText(t *testing.T) {
	draft := Convert(aiPlan, "Data Analyst")

	assert.Equal(t, []string{
		"Statistics for data analysis",
		"Linear Algebra",
		"Machine Learning Foundations",
		"Data Visualization",
	}, draft.StudyMaterials.Subjects, "bold stripped, short items dropped")
	assert.Equal(t, []string{"Python programming", "SQL querying"}, draft.StudyMaterials.Skills)
	assert.Equal(t, []string{"Finish an online statistics course", "Build 2 portfolio projects"}, draft.Milestones.ShortTerm)
	assert.Equal(t, []string{"Get a junior analyst job"}, draft.Milestones.MediumTerm)
	assert.Equal(t, []string{"Lead a data team"}, draft.Milestones.LongTerm)
}

func TestConvert_weeklyTasks(t *testing.T) {
	draft := Convert(RenderActionPlan("Data Scientist"), "Data Scientist")
	weekly := draft.Schedule.WeeklyTasks
	require.Len(t, weekly, len(draft.StudyMaterials.Subjects))

	for i, wt := range weekly {
		assert.Equal(t, draft.StudyMaterials.Subjects[i], wt.Subject)
		assert.Equal(t, "3-5 hours/week", wt.Duration)
		assert.Equal(t, "short-term", wt.Timeline)
		if i < 3 {
			assert.Equal(t, "high", wt.Priority)
		} else {
			assert.Equal(t, "medium", wt.Priority)
		}
	}
	assert.NotEmpty(t, draft.Schedule.DailyActivities)
	for _, da := range draft.Schedule.DailyActivities {
		assert.NotEmpty(t, da.Activity)
		assert.NotEmpty(t, da.Duration)
		assert.NotEmpty(t, da.Type)
	}
}

func TestConvert_tasks(t *testing.T) {
	var b strings.Builder
	b.WriteString("**Short-term (6-12 months):**\n")
	for i := 0; i < 7; i++ { // only 5 kept
		b.WriteString("- short goal number " + string(rune('a'+i)) + "\n")
	}
	b.WriteString("**Medium-term (1-3 years):**\n")
	for i := 0; i < 5; i++ {
		b.WriteString("- medium goal number " + string(rune('a'+i)) + "\n")
	}

	tests := []struct {
		name      string
		text      string
		wantLen   int
		wantShort int
	}{
		{name: "rendered plan", text: RenderActionPlan("Lawyer"), wantLen: 8, wantShort: 4},
		{name: "full buckets", text: b.String(), wantLen: 10, wantShort: 5},
		{name: "no milestones", text: "### 1. KEY SUBJECTS\n- Something", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := Convert(tt.text, "x").Tasks
			require.Len(t, tasks, tt.wantLen)
			assert.LessOrEqual(t, len(tasks), maxTasks)
			for i, task := range tasks {
				assert.Equal(t, i+1, task.ID)
				assert.Equal(t, 5, task.EstimatedHours)
				assert.Equal(t, "study", task.Category)
				if i < 5 {
					assert.Equal(t, "high", task.Priority)
				} else {
					assert.Equal(t, "medium", task.Priority)
				}
				if i < tt.wantShort {
					assert.Equal(t, "short-term", task.Deadline)
				} else {
					assert.Equal(t, "medium-term", task.Deadline)
				}
			}
		})
	}
}

func TestBuildTasks_truncates(t *testing.T) {
	short := []string{"s1", "s2", "s3", "s4", "s5"}
	medium := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9"}
	tasks := buildTasks(short, medium)

	require.Len(t, tasks, 12)
	assert.Equal(t, "m7", tasks[11].Title)
	assert.Equal(t, "short-term", tasks[4].Deadline)
	assert.Equal(t, "medium-term", tasks[5].Deadline)
}

func TestBulletText(t *testing.T) {
	tests := []struct {
		line     string
		want     string
		isBullet bool
	}{
		{line: "- item", want: "item", isBullet: true},
		{line: "  • item", want: "item", isBullet: true},
		{line: "* item", want: "item", isBullet: true},
		{line: "- **bold** item", want: "bold item", isBullet: true},
		{line: "3. numbered", want: "numbered", isBullet: true},
		{line: "**Short-term (6-12 months):**", isBullet: false},
		{line: "plain text", isBullet: false},
		{line: "", isBullet: false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := bulletText(tt.line)
			assert.Equal(t, tt.isBullet, ok)
			if tt.isBullet {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestConvert_headingShapes(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSubject []string
		wantShort   []string
		wantMedium  []string
		wantTasks   int
	}{
		{
			name: "milestones header naming every timeline",
			text: `### 5. MILESTONES (Short-term, Medium-term and Long-term)
**Short-term (6-12 months):**
- Learn the basics
**Medium-term (1-3 years):**
- Get certified
**Long-term (3-5+ years):**
- Lead a team`,
			wantSubject: []string{},
			wantShort:   []string{"Learn the basics"},
			wantMedium:  []string{"Get certified"},
			wantTasks:   2,
		},
		{
			name: "intro sentence mentions key subjects",
			text: `Below I cover key subjects, activities and milestones for you.

### 1. KEY SUBJECTS TO FOCUS ON (Build Strong Foundation)
- Statistics
- Databases
### 2. ACTIVITIES & EXPERIENCES (Gain Practical Exposure)
- Internships`,
			wantSubject: []string{"Statistics", "Databases"},
			wantShort:   []string{shortTermFallback("Analyst")},
			wantMedium:  []string{mediumTermFallback("Analyst")},
		},
		{
			name: "italic sub-heading",
			text: `Short-term:
- Do one
*Medium-term (1-3 years):*
- Do two`,
			wantSubject: []string{},
			wantShort:   []string{"Do one"},
			wantMedium:  []string{"Do two"},
			wantTasks:   2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Convert(tt.text, "Analyst")
			assert.Equal(t, tt.wantSubject, draft.StudyMaterials.Subjects)
			assert.Equal(t, tt.wantShort, draft.Milestones.ShortTerm)
			assert.Equal(t, tt.wantMedium, draft.Milestones.MediumTerm)
			assert.Len(t, draft.Tasks, tt.wantTasks)
		})
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "### Next Steps", want: true},
		{line: "**Long-term goals**", want: true},
		{line: "*Medium-term (1-3 years):*", want: true},
		{line: "Short-term:", want: true},
		{line: "- Medium-term:", want: true},
		{line: "- Tools:", want: false},
		{line: "* item", want: false},
		{line: "Below I cover key subjects, activities and milestones for you.", want: false},
		{line: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeading(tt.line))
		})
	}
}
