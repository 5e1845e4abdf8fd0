// Command render_templates renders one resume in every template so the
// style tables can be compared side by side in a browser.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resume-builder/internal/model"
	"resume-builder/pkg/render"
)

func main() {
	in := "resume.json"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	lang := os.Getenv("RESUME_LANG")

	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}
	if err := model.ValidateDocument(b); err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		os.Exit(2)
	}
	var content model.Content
	if err := json.Unmarshal(b, &content); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	content.Normalize()

	outDir := filepath.Join("resume-data", "generated", "templates")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out: %v\n", err)
		os.Exit(2)
	}

	for _, style := range render.Templates() {
		html, err := render.Render(content, render.Options{Template: string(style.Name), Language: lang})
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s: %v\n", style.Name, err)
			os.Exit(2)
		}
		outFile := filepath.Join(outDir, string(style.Name)+".html")
		if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", outFile, err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", outFile)
	}
}
