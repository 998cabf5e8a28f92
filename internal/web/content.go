package web

import "slices"

// Profile is the static header and about copy.
type Profile struct {
	Name    string
	Role    string
	Tagline string
	Stack   string
	Email   string
	About   string
}

// Credential is one entry of the education fragment.
type Credential struct {
	Degree       string
	Institution  string
	StartDate    string
	EndDate      string
	LogoPath     string
	BulletPoints []string
}

// DefaultProfile is the site owner's copy.
var DefaultProfile = Profile{
	Name:    "zach",
	Role:    "Software Developer",
	Tagline: "Building useful, fun software and learning how things work underneath.",
	Stack:   "Go; Gin; HTMX; Python; SQL; JavaScript; Tailwind CSS.",
	Email:   "zachkordaspotter@gmail.com",
	About: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`,
}

// Education lists the credentials shown in the education fragment.
var Education = []Credential{
	{
		Degree:      "Bachelor of Computer Science",
		Institution: "Western Governors University",
		StartDate:   "Sept 2019",
		EndDate:     "May 2023",
		LogoPath:    "images/WGU-logo.png",
		BulletPoints: []string{
			"Graduated Magna Cum Laude with 3.8 GPA",
			"Relevant coursework: Data Structures, Algorithms, Web Development",
			"Senior project: Machine Learning recommendation system",
		},
	},
	{
		Degree:      "Project Management",
		Institution: "Comptia",
		StartDate:   "July 2022",
		EndDate:     "Present",
		LogoPath:    "images/comptiaCert.png",
		BulletPoints: []string{
			"Certified in agile project management methodology",
			"Verification code: SRRRPGBSWBRQCCDJ",
		},
	},
}

// panelTitles are the section headings of the list panels.
var panelTitles = map[string]string{
	"journal":  "JOURNAL",
	"projects": "PROJECTS",
	"work":     "WORK EXPERIENCE",
	"novels":   "novels",
	"stories":  "short stories",
}

func panelTitle(name string) string {
	if t, ok := panelTitles[name]; ok {
		return t
	}
	return name
}

// knownPanels is the display order of the list panels.
var knownPanels = []string{"journal", "projects", "work", "novels", "stories"}

// orderPanels returns the configured panel names, known ones first.
func orderPanels(endpoints map[string]string) []string {
	var out, extra []string
	for _, name := range knownPanels {
		if _, ok := endpoints[name]; ok {
			out = append(out, name)
		}
	}
	for name := range endpoints {
		if !slices.Contains(knownPanels, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
