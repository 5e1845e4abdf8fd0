package model

// Go models that match resume.schema.json, used for validation, storage and rendering.

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Headline string `json:"headline,omitempty"`
}

type Experience struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// Valid reports whether l is empty or one of the known proficiency levels.
func (l SkillLevel) Valid() bool {
	switch l {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

type Skill struct {
	Name     string     `json:"name"`
	Level    SkillLevel `json:"level,omitempty"`
	Category string     `json:"category,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// Content is the renderable part of a resume record. It is persisted as a
// single JSON document.
type Content struct {
	PersonalInfo *PersonalInfo `json:"personalInfo"`
	Summary      string        `json:"summary"`
	Experiences  []Experience  `json:"experiences"`
	Education    []Education   `json:"education"`
	Skills       []Skill       `json:"skills"`
	Projects     []Project     `json:"projects"`
}

// EmptyContent returns content with every list allocated, so it encodes as
// [] rather than null.
func EmptyContent() Content {
	return Content{
		PersonalInfo: &PersonalInfo{},
		Experiences:  []Experience{},
		Education:    []Education{},
		Skills:       []Skill{},
		Projects:     []Project{},
	}
}

// Normalize replaces nil lists with empty ones.
func (c *Content) Normalize() {
	if c.Experiences == nil {
		c.Experiences = []Experience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.Skills == nil {
		c.Skills = []Skill{}
	}
	if c.Projects == nil {
		c.Projects = []Project{}
	}
	for i := range c.Experiences {
		if c.Experiences[i].Description == nil {
			c.Experiences[i].Description = []string{}
		}
	}
	for i := range c.Projects {
		if c.Projects[i].Technologies == nil {
			c.Projects[i].Technologies = []string{}
		}
	}
}

// Clone returns a deep copy of c.
func (c Content) Clone() Content {
	out := c
	if c.PersonalInfo != nil {
		pi := *c.PersonalInfo
		out.PersonalInfo = &pi
	}
	if c.Experiences != nil {
		out.Experiences = make([]Experience, len(c.Experiences))
		for i, e := range c.Experiences {
			e.Description = cloneStrings(e.Description)
			out.Experiences[i] = e
		}
	}
	if c.Education != nil {
		out.Education = append([]Education{}, c.Education...)
	}
	if c.Skills != nil {
		out.Skills = append([]Skill{}, c.Skills...)
	}
	if c.Projects != nil {
		out.Projects = make([]Project, len(c.Projects))
		for i, p := range c.Projects {
			p.Technologies = cloneStrings(p.Technologies)
			out.Projects[i] = p
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
