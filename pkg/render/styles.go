package render

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// TemplateName identifies one of the fixed style tables.
type TemplateName string

const (
	TemplateModern       TemplateName = "modern"
	TemplateClassic      TemplateName = "classic"
	TemplateMinimal      TemplateName = "minimal"
	TemplateCreative     TemplateName = "creative"
	TemplateProfessional TemplateName = "professional"
)

// DefaultTemplate is the baseline style used for unknown template names.
const DefaultTemplate = TemplateModern

// Style is the presentational table of one template.
type Style struct {
	Name           TemplateName `json:"name"`
	AccentColor    string       `json:"accentColor"`
	TextColor      string       `json:"textColor"`
	MutedColor     string       `json:"mutedColor"`
	HeadingFont    string       `json:"headingFont"`
	BodyFont       string       `json:"bodyFont"`
	BaseFontSize   string       `json:"baseFontSize"`
	SectionBorder  string       `json:"sectionBorder"`
	SectionSpacing string       `json:"sectionSpacing"`
	HeaderAlign    string       `json:"headerAlign"`
	NameTransform  string       `json:"nameTransform"`
}

var styles = map[TemplateName]Style{
	TemplateModern: {
		Name:           TemplateModern,
		AccentColor:    "#2563eb",
		TextColor:      "#1f2937",
		MutedColor:     "#6b7280",
		HeadingFont:    "'Inter', 'Helvetica Neue', Arial, sans-serif",
		BodyFont:       "'Inter', 'Helvetica Neue', Arial, sans-serif",
		BaseFontSize:   "10.5pt",
		SectionBorder:  "2px solid #2563eb",
		SectionSpacing: "18px",
		HeaderAlign:    "left",
		NameTransform:  "none",
	},
	TemplateClassic: {
		Name:           TemplateClassic,
		AccentColor:    "#111827",
		TextColor:      "#111827",
		MutedColor:     "#4b5563",
		HeadingFont:    "Georgia, 'Times New Roman', serif",
		BodyFont:       "Georgia, 'Times New Roman', serif",
		BaseFontSize:   "11pt",
		SectionBorder:  "1px solid #111827",
		SectionSpacing: "16px",
		HeaderAlign:    "center",
		NameTransform:  "uppercase",
	},
	TemplateMinimal: {
		Name:           TemplateMinimal,
		AccentColor:    "#374151",
		TextColor:      "#374151",
		MutedColor:     "#9ca3af",
		HeadingFont:    "'Helvetica Neue', Arial, sans-serif",
		BodyFont:       "'Helvetica Neue', Arial, sans-serif",
		BaseFontSize:   "10pt",
		SectionBorder:  "none",
		SectionSpacing: "14px",
		HeaderAlign:    "left",
		NameTransform:  "none",
	},
	TemplateCreative: {
		Name:           TemplateCreative,
		AccentColor:    "#db2777",
		TextColor:      "#1f2937",
		MutedColor:     "#6b7280",
		HeadingFont:    "'Poppins', 'Trebuchet MS', sans-serif",
		BodyFont:       "'Open Sans', Arial, sans-serif",
		BaseFontSize:   "10.5pt",
		SectionBorder:  "3px dashed #db2777",
		SectionSpacing: "20px",
		HeaderAlign:    "left",
		NameTransform:  "none",
	},
	TemplateProfessional: {
		Name:           TemplateProfessional,
		AccentColor:    "#0f766e",
		TextColor:      "#111827",
		MutedColor:     "#4b5563",
		HeadingFont:    "'Calibri', 'Segoe UI', Arial, sans-serif",
		BodyFont:       "'Calibri', 'Segoe UI', Arial, sans-serif",
		BaseFontSize:   "11pt",
		SectionBorder:  "1px solid #0f766e",
		SectionSpacing: "16px",
		HeaderAlign:    "left",
		NameTransform:  "uppercase",
	},
}

// StyleFor returns the style table for name. Matching ignores case and
// surrounding space; unknown names get the default table.
func StyleFor(name string) Style {
	key := TemplateName(strings.ToLower(strings.TrimSpace(name)))
	if s, ok := styles[key]; ok {
		return s
	}
	return styles[DefaultTemplate]
}

// Templates lists every known style table ordered by name.
func Templates() []Style {
	out := make([]Style, 0, len(styles))
	for _, s := range styles {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// stylesheet builds the inline CSS for s. Values come from the fixed table
// above, never from user input.
func stylesheet(s Style) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, `*{box-sizing:border-box;margin:0;padding:0}
body{font-family:%s;font-size:%s;color:%s;line-height:1.45;padding:32px 40px;-webkit-print-color-adjust:exact;print-color-adjust:exact}
h1,h2,h3{font-family:%s}
header{text-align:%s;margin-bottom:%s}
header h1{font-size:24pt;color:%s;text-transform:%s;letter-spacing:.5px}
header .headline{font-size:12pt;color:%s;margin-top:2px}
header .contact{font-size:9.5pt;color:%s;margin-top:6px}
a{color:%s;text-decoration:none}
section{margin-bottom:%s;page-break-inside:auto}
section h2{font-size:12pt;text-transform:uppercase;letter-spacing:1px;color:%s;border-bottom:%s;padding-bottom:3px;margin-bottom:8px}
.entry{margin-bottom:10px;page-break-inside:avoid}
.entry-head{display:flex;justify-content:space-between;align-items:baseline}
.entry-title{font-weight:600}
.entry-sub{color:%s}
.dates{color:%s;font-size:9.5pt;white-space:nowrap}
ul{margin:4px 0 0 18px}
li{margin-bottom:2px}
.skill-group{margin-bottom:4px}
.skill-group .category{font-weight:600}
.tech{color:%s;font-size:9.5pt}
.links{font-size:9.5pt}
`,
		s.BodyFont, s.BaseFontSize, s.TextColor,
		s.HeadingFont,
		s.HeaderAlign, s.SectionSpacing,
		s.AccentColor, s.NameTransform,
		s.MutedColor,
		s.MutedColor,
		s.AccentColor,
		s.SectionSpacing,
		s.AccentColor, s.SectionBorder,
		s.MutedColor,
		s.MutedColor,
		s.MutedColor,
	)
	return template.CSS(b.String())
}
