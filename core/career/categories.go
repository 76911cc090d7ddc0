package career

import "fmt"

// Category tags a profession cluster sharing the same canned curriculum.
type Category string

const (
	CategoryMedical     Category = "medical"
	CategoryEngineering Category = "engineering"
	CategoryLegal       Category = "legal"
	CategoryTechnology  Category = "technology"
	CategoryGeneric     Category = "generic"
)

const maxSubjects = 8

// CategoryData is the static curriculum bundle of one category.
type CategoryData struct {
	Subjects   []string
	Activities string
	Skills     string
	Education  string
	ShortTerm  []string
	MediumTerm []string
	LongTerm   []string
	NextSteps  []string
}

func (d CategoryData) clone() CategoryData {
	d.Subjects = append([]string(nil), d.Subjects...)
	d.ShortTerm = append([]string(nil), d.ShortTerm...)
	d.MediumTerm = append([]string(nil), d.MediumTerm...)
	d.LongTerm = append([]string(nil), d.LongTerm...)
	d.NextSteps = append([]string(nil), d.NextSteps...)
	return d
}

// Categories lists the keyword categories in classification order. generic is not part of it.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// Lookup returns a copy of the data of cat. generic (and unknown tags) are parameterized with profession.
func Lookup(cat Category, profession string) CategoryData {
	if data, ok := categoryTable[cat]; ok {
		return data.clone()
	}
	return genericData(profession)
}

var categoryOrder = []Category{CategoryMedical, CategoryEngineering, CategoryLegal, CategoryTechnology}

// categoryKeywords are matched as substrings of the lower-cased profession.
// "engineer" also matches "software engineer" or "data engineer": first category wins.
var categoryKeywords = map[Category][]string{
	CategoryMedical: {
		"doctor", "physician", "nurse", "medical", "medicine", "surgeon", "dentist",
		"pharmacist", "therapist", "health", "clinical", "paramedic", "veterinar",
	},
	CategoryEngineering: {
		"engineer", "mechanical", "civil", "electrical", "electronics", "aerospace", "chemical", "structural",
	},
	CategoryLegal: {
		"lawyer", "attorney", "legal", "law", "judge", "paralegal", "solicitor", "barrister", "advocate",
	},
	CategoryTechnology: {
		"software", "developer", "programmer", "programming", "data", "computer", "tech", "web",
		"cyber", "cloud", "devops", "machine learning",
	},
}

var categoryTable = map[Category]CategoryData{
	CategoryMedical: {
		Subjects: []string{
			"Biology (Cell Biology, Genetics, Physiology)",
			"Chemistry (General and Organic Chemistry)",
			"Human Anatomy",
			"Biochemistry",
			"Physics for Health Sciences",
			"Psychology and Behavioral Sciences",
			"Medical Ethics",
			"Statistics and Research Methods",
		},
		Activities: "- Volunteer at a hospital, clinic or care home\n" +
			"- Shadow a practicing doctor or nurse for a few days\n" +
			"- Get certified in First Aid and CPR\n" +
			"- Join a health sciences club or a science olympiad",
		Skills: "- Clinical observation and attention to detail\n" +
			"- Empathy and patient communication\n" +
			"- Working calmly under pressure\n" +
			"- Scientific reasoning and evidence evaluation\n" +
			"- Teamwork in multidisciplinary care settings\n" +
			"- Time management for demanding schedules",
		Education: "Complete secondary school with strong grades in biology and chemistry.\n" +
			"Enroll in a pre-medical or health sciences undergraduate program, then prepare for the " +
			"medical school admission test.\n" +
			"Finish medical school followed by residency or a nursing license, depending on the chosen path.",
		ShortTerm: []string{
			"Master foundational biology and chemistry concepts",
			"Complete a First Aid and CPR certification",
			"Log at least 50 hours of healthcare volunteering",
			"Research medical programs and their admission requirements",
		},
		MediumTerm: []string{
			"Gain admission to a pre-medical or nursing program",
			"Maintain a strong GPA in science courses",
			"Take part in a clinical research project",
			"Prepare for and pass the medical school admission test",
		},
		LongTerm: []string{
			"Graduate from medical or nursing school",
			"Complete residency or clinical rotations",
			"Obtain a professional license to practice",
			"Choose and pursue a specialization",
		},
		NextSteps: []string{
			"Review your current biology and chemistry grades",
			"Contact a local hospital about volunteering opportunities",
			"Sign up for a First Aid and CPR course",
			"Talk to a healthcare professional about their daily work",
		},
	},
	CategoryEngineering: {
		Subjects: []string{
			"Calculus and Differential Equations",
			"Physics (Mechanics, Electricity and Magnetism)",
			"Linear Algebra",
			"Engineering Drawing and CAD",
			"Materials Science",
			"Thermodynamics",
			"Programming for Engineers (Python or MATLAB)",
			"Engineering Economics and Project Management",
		},
		Activities: "- Join a robotics, solar car or maker club\n" +
			"- Build small hardware projects with Arduino or Raspberry Pi\n" +
			"- Enter engineering design competitions\n" +
			"- Visit manufacturing plants or construction sites",
		Skills: "- Mathematical modeling and problem solving\n" +
			"- Computer aided design (AutoCAD, SolidWorks)\n" +
			"- Technical writing and documentation\n" +
			"- Data analysis and simulation\n" +
			"- Teamwork on design projects\n" +
			"- Safety standards and quality control",
		Education: "Take advanced mathematics and physics in secondary school.\n" +
			"Earn an accredited bachelor's degree in the engineering discipline of your choice.\n" +
			"Pursue a professional engineer license and a master's degree for advanced roles.",
		ShortTerm: []string{
			"Strengthen calculus and physics fundamentals",
			"Learn the basics of a CAD tool",
			"Complete a small hands-on engineering project",
			"Identify the engineering discipline that fits you best",
		},
		MediumTerm: []string{
			"Enroll in an accredited engineering degree program",
			"Secure an engineering internship",
			"Join a professional engineering society",
			"Pass the Fundamentals of Engineering exam",
		},
		LongTerm: []string{
			"Graduate with an engineering degree",
			"Gain supervised professional experience",
			"Obtain a professional engineer license",
			"Lead engineering projects in your specialization",
		},
		NextSteps: []string{
			"Work through a calculus refresher this week",
			"Install a free CAD tool and follow an introductory tutorial",
			"Find a robotics or maker club near you",
			"Read about the main engineering disciplines",
		},
	},
	CategoryLegal: {
		Subjects: []string{
			"Constitutional Law",
			"Contract Law",
			"Criminal Law",
			"Legal Writing and Research",
			"Civil Procedure",
			"Logic and Critical Reasoning",
			"Public Speaking and Debate",
			"Ethics and Professional Responsibility",
		},
		Activities: "- Join a debate team or moot court\n" +
			"- Attend court hearings open to the public\n" +
			"- Intern at a law firm or legal aid clinic\n" +
			"- Participate in model united nations",
		Skills: "- Analytical reading of dense texts\n" +
			"- Persuasive writing and argumentation\n" +
			"- Public speaking and negotiation\n" +
			"- Legal research with case databases\n" +
			"- Attention to detail and precision\n" +
			"- Client interviewing and confidentiality",
		Education: "Focus on history, languages and social sciences in secondary school.\n" +
			"Earn an undergraduate degree, then prepare for the law school admission test.\n" +
			"Complete law school and pass the bar examination in your jurisdiction.",
		ShortTerm: []string{
			"Read introductory books on the legal system",
			"Join a debate or moot court team",
			"Observe at least three court hearings",
			"Improve academic writing through weekly essays",
		},
		MediumTerm: []string{
			"Complete an undergraduate degree with strong grades",
			"Intern at a law firm or legal aid organization",
			"Prepare for and pass the law school admission test",
			"Gain admission to law school",
		},
		LongTerm: []string{
			"Graduate from law school",
			"Pass the bar examination",
			"Practice as an associate in a chosen area of law",
			"Build a reputation in your legal specialty",
		},
		NextSteps: []string{
			"Pick an introductory legal book and start reading",
			"Find out when your local court holds public hearings",
			"Write a short persuasive essay on a current issue",
			"Ask a lawyer about their career path",
		},
	},
	CategoryTechnology: {
		Subjects: []string{
			"Programming Fundamentals (Python, Java, or JavaScript)",
			"Data Structures and Algorithms",
			"Database Systems and SQL",
			"Computer Networks",
			"Operating Systems",
			"Software Engineering Principles",
			"Web Development",
			"Cloud Computing and DevOps",
		},
		Activities: "- Contribute to open source projects\n" +
			"- Build and publish personal projects on GitHub\n" +
			"- Take part in hackathons and coding competitions\n" +
			"- Join a local developer meetup or online community",
		Skills: "- Problem solving and algorithmic thinking\n" +
			"- Version control with Git\n" +
			"- Debugging and testing\n" +
			"- System design basics\n" +
			"- Clear technical communication\n" +
			"- Continuous learning of new tools",
		Education: "Study mathematics and computer science courses where available.\n" +
			"Earn a degree in computer science or a related field, or follow a structured bootcamp.\n" +
			"Add industry certifications (cloud, security, data) as you specialize.",
		ShortTerm: []string{
			"Learn one programming language thoroughly",
			"Solve 50 algorithm practice problems",
			"Build and deploy a small web application",
			"Learn Git and publish your code on GitHub",
		},
		MediumTerm: []string{
			"Complete a computer science degree or bootcamp",
			"Land an internship or junior developer role",
			"Contribute to an open source project",
			"Earn a cloud or data certification",
		},
		LongTerm: []string{
			"Work as a professional software developer",
			"Grow into a senior or lead engineer role",
			"Specialize in a domain such as data, security or cloud",
			"Mentor junior developers",
		},
		NextSteps: []string{
			"Choose a first programming language and install its tooling",
			"Create a GitHub account",
			"Complete an introductory programming course module",
			"Write a small program that solves a real problem you have",
		},
	},
}

func genericData(p string) CategoryData {
	return CategoryData{
		Subjects: []string{
			fmt.Sprintf("Core %s Fundamentals", p),
			fmt.Sprintf("Industry Knowledge and Trends in %s", p),
			"Communication Skills",
			"Critical Thinking and Problem Solving",
			fmt.Sprintf("Professional Ethics in %s", p),
			"Project and Time Management",
			fmt.Sprintf("Digital Tools Used by %s Professionals", p),
			"Networking and Mentorship",
		},
		Activities: fmt.Sprintf("- Shadow or interview people who work as %s\n", p) +
			"- Join professional associations and online communities\n" +
			"- Volunteer or take part-time work in a related setting\n" +
			"- Attend workshops, webinars and industry events",
		Skills: "- Written and verbal communication\n" +
			"- Problem solving and decision making\n" +
			"- Organization and time management\n" +
			fmt.Sprintf("- Practical skills specific to %s\n", p) +
			"- Collaboration and teamwork\n" +
			"- Adaptability and a habit of learning",
		Education: fmt.Sprintf("Research the qualifications typically required to work as %s.\n", p) +
			"Enroll in a relevant degree, diploma or vocational program.\n" +
			"Keep learning through certifications and professional courses.",
		ShortTerm: []string{
			fmt.Sprintf("Complete an introductory course in %s fundamentals", p),
			fmt.Sprintf("Research the %s career path and required qualifications", p),
			fmt.Sprintf("Connect with 3 working %s professionals", p),
			"Build a consistent weekly study routine",
		},
		MediumTerm: []string{
			fmt.Sprintf("Earn a relevant qualification or certification for %s", p),
			"Gain hands-on experience through an internship or volunteer role",
			fmt.Sprintf("Build a portfolio of %s work", p),
		},
		LongTerm: []string{
			fmt.Sprintf("Work as a professional %s", p),
			fmt.Sprintf("Specialize in a niche within %s", p),
			"Mentor newcomers to the field",
		},
		NextSteps: []string{
			fmt.Sprintf("List the qualifications required to become %s", p),
			"Find one course you can start this month",
			fmt.Sprintf("Reach out to someone who works as %s", p),
			"Set aside fixed study hours in your weekly calendar",
		},
	}
}
