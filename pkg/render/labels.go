package render

import "strings"

// Labels are the fixed strings of a rendered resume: section headings and
// the few words the renderer emits itself.
type Labels struct {
	Summary      string
	Experience   string
	Education    string
	Skills       string
	Projects     string
	Present      string
	GPA          string
	Technologies string
	Live         string
	Source       string
	Other        string
	In           string
}

var labelsByLanguage = map[string]Labels{
	"en": {
		Summary:      "Professional Summary",
		Experience:   "Experience",
		Education:    "Education",
		Skills:       "Skills",
		Projects:     "Projects",
		Present:      "Present",
		GPA:          "GPA",
		Technologies: "Technologies",
		Live:         "Live",
		Source:       "Source",
		Other:        "Other",
		In:           "in",
	},
	"pt": {
		Summary:      "Resumo Profissional",
		Experience:   "Experiência",
		Education:    "Formação",
		Skills:       "Competências",
		Projects:     "Projetos",
		Present:      "Atual",
		GPA:          "Média",
		Technologies: "Tecnologias",
		Live:         "Site",
		Source:       "Código",
		Other:        "Outros",
		In:           "em",
	},
	"es": {
		Summary:      "Resumen Profesional",
		Experience:   "Experiencia",
		Education:    "Educación",
		Skills:       "Habilidades",
		Projects:     "Proyectos",
		Present:      "Actualidad",
		GPA:          "Promedio",
		Technologies: "Tecnologías",
		Live:         "Sitio",
		Source:       "Código",
		Other:        "Otros",
		In:           "en",
	},
}

// DefaultLanguage is used when no language or an unsupported one is asked for.
const DefaultLanguage = "en"

// LabelsFor returns the labels for lang ("pt", "pt-BR" and "PT" all match
// Portuguese), falling back to English.
func LabelsFor(lang string) (string, Labels) {
	key := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(key, "-_"); i > 0 {
		key = key[:i]
	}
	if l, ok := labelsByLanguage[key]; ok {
		return key, l
	}
	return DefaultLanguage, labelsByLanguage[DefaultLanguage]
}
