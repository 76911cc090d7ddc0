package career

import "regexp"

// Section headers of a rendered action plan. The converter locates sections through the markers below,
// so a header change must keep its marker matching.
const (
	HeaderKeySubjects = "### 1. KEY SUBJECTS TO FOCUS ON (Build Strong Foundation)"
	HeaderActivities  = "### 2. ACTIVITIES & EXPERIENCES (Gain Practical Exposure)"
	HeaderSkills      = "### 3. SKILL DEVELOPMENT (Technical & Soft Skills)"
	HeaderEducation   = "### 4. EDUCATION PATHWAY (Formal Training & Qualifications)"
	HeaderMilestones  = "### 5. MILESTONES & TIMELINE"
	HeaderShortTerm   = "**Short-term (6-12 months):**"
	HeaderMediumTerm  = "**Medium-term (1-3 years):**"
	HeaderLongTerm    = "**Long-term (3-5+ years):**"
	HeaderNextSteps   = "### 6. NEXT STEPS (Start This Week)"
)

var (
	keySubjectsMarker = regexp.MustCompile(`(?i)key\s+subjects`)
	skillsMarker      = regexp.MustCompile(`(?i)skill\s+development`)
	shortTermMarker   = regexp.MustCompile(`(?i)short[\s-]*term`)
	mediumTermMarker  = regexp.MustCompile(`(?i)medium[\s-]*term`)
	longTermMarker    = regexp.MustCompile(`(?i)long[\s-]*term`)
)
