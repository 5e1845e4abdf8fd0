// Package render turns resume content into a self-contained HTML document.
//
// The output carries its stylesheet inline and fetches nothing, so it can be
// loaded straight into a headless browser and printed to PDF. All user text
// goes through html/template, which escapes it for the context it lands in.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var resumeTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

// Options selects the style table and the label language.
type Options struct {
	Template string
	Language string
}

type experienceView struct {
	Position string
	Company  string
	Location string
	Dates    string
	Bullets  []string
}

type educationView struct {
	Degree      string
	Institution string
	Dates       string
	GPA         string
	Description string
}

type skillGroup struct {
	Category string
	Skills   []string
}

type projectView struct {
	Name         string
	Dates        string
	Description  string
	Technologies string
	URL          *link
	GitHub       *link
}

type view struct {
	Lang        string
	Title       string
	Template    TemplateName
	CSS         template.CSS
	Labels      Labels
	Name        string
	Headline    string
	Contact     []link
	Summary     string
	Experiences []experienceView
	Education   []educationView
	SkillGroups []skillGroup
	Projects    []projectView
}

// Render produces the HTML document for c. It fails with domain.ErrRender
// when the personal info block is absent.
func Render(c model.Content, opts Options) (string, error) {
	if c.PersonalInfo == nil {
		return "", fmt.Errorf("%w: personal info is missing", domain.ErrRender)
	}

	style := StyleFor(opts.Template)
	lang, labels := LabelsFor(opts.Language)
	pi := c.PersonalInfo

	v := view{
		Lang:        lang,
		Title:       documentTitle(pi.FullName),
		Template:    style.Name,
		CSS:         stylesheet(style),
		Labels:      labels,
		Name:        strings.TrimSpace(pi.FullName),
		Headline:    strings.TrimSpace(pi.Headline),
		Contact:     contactLine(pi),
		Summary:     strings.TrimSpace(c.Summary),
		Experiences: experienceViews(c.Experiences, labels),
		Education:   educationViews(c.Education, labels),
		SkillGroups: groupSkills(c.Skills, labels.Other),
		Projects:    projectViews(c.Projects, labels),
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return buf.String(), nil
}

func documentTitle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}

// contactLine lists the contact items that are present, in the order email,
// phone, location, linkedin, website. Blank fields are left out entirely.
func contactLine(pi *model.PersonalInfo) []link {
	var out []link
	if s := strings.TrimSpace(pi.Email); s != "" {
		out = append(out, link{Text: s, Href: "mailto:" + s})
	}
	if s := strings.TrimSpace(pi.Phone); s != "" {
		out = append(out, link{Text: s})
	}
	if s := strings.TrimSpace(pi.Location); s != "" {
		out = append(out, link{Text: s})
	}
	if l := newLink(pi.LinkedIn, pathLabel); l != nil {
		out = append(out, *l)
	}
	if l := newLink(pi.Website, pathLabel); l != nil {
		out = append(out, *l)
	}
	return out
}

// DateRange formats a period. A current position reads "start - Present"
// and never shows its end date.
func DateRange(start, end string, current bool, present string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case current && start != "":
		return start + " - " + present
	case current:
		return present
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func experienceViews(in []model.Experience, labels Labels) []experienceView {
	out := make([]experienceView, 0, len(in))
	for _, e := range in {
		out = append(out, experienceView{
			Position: strings.TrimSpace(e.Position),
			Company:  strings.TrimSpace(e.Company),
			Location: strings.TrimSpace(e.Location),
			Dates:    DateRange(e.StartDate, e.EndDate, e.Current, labels.Present),
			Bullets:  nonBlank(e.Description),
		})
	}
	return out
}

func educationViews(in []model.Education, labels Labels) []educationView {
	out := make([]educationView, 0, len(in))
	for _, e := range in {
		degree := strings.TrimSpace(e.Degree)
		if f := strings.TrimSpace(e.Field); f != "" {
			degree += " " + labels.In + " " + f
		}
		out = append(out, educationView{
			Degree:      degree,
			Institution: strings.TrimSpace(e.Institution),
			Dates:       DateRange(e.StartDate, e.EndDate, false, labels.Present),
			GPA:         strings.TrimSpace(e.GPA),
			Description: strings.TrimSpace(e.Description),
		})
	}
	return out
}

// groupSkills groups skills by category in first-seen category order. A
// skill renders as "name (level)" when it has a level. Skills without a
// category land in the group named other.
func groupSkills(in []model.Skill, other string) []skillGroup {
	var groups []skillGroup
	index := map[string]int{}
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if lvl := strings.TrimSpace(string(s.Level)); lvl != "" {
			name = fmt.Sprintf("%s (%s)", name, lvl)
		}
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			cat = other
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, skillGroup{Category: cat})
		}
		groups[i].Skills = append(groups[i].Skills, name)
	}
	return groups
}

func projectViews(in []model.Project, labels Labels) []projectView {
	out := make([]projectView, 0, len(in))
	for _, p := range in {
		out = append(out, projectView{
			Name:         strings.TrimSpace(p.Name),
			Dates:        DateRange(p.StartDate, p.EndDate, false, labels.Present),
			Description:  strings.TrimSpace(p.Description),
			Technologies: strings.Join(nonBlank(p.Technologies), ", "),
			URL:          newLink(p.URL, domainLabel),
			GitHub:       newLink(p.GitHub, pathLabel),
		})
	}
	return out
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
