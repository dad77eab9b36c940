// Package report assembles the analyzer's findings into a Markdown
// document, the way the teacher's own report packages render the analysis
// results of each analyzer into a single document.
package report

import (
	"fmt"
	"strings"

	"github.com/0xkitsune/solstat/pkg/analyzer"
	"github.com/0xkitsune/solstat/pkg/detect"
)

const overviewTemplate = "# %s - (Total Findings %d)\n\nThe following sections detail the %s found throughout the codebase.\n\n"

var categoryBlurb = map[detect.Category]string{
	detect.Vulnerability: "high-severity vulnerabilities",
	detect.Optimization:  "gas optimizations",
	detect.QA:            "quality-assurance issues",
}

// Generate renders result into the Markdown report, sections ordered
// Vulnerabilities → Optimizations → QA. Detectors within a category appear
// in catalogue order (detect.All()'s order); a detector with no findings
// contributes nothing to its section.
func Generate(result analyzer.Result) string {
	var b strings.Builder
	for _, category := range []detect.Category{detect.Vulnerability, detect.Optimization, detect.QA} {
		section, total := renderCategory(result, category)
		if total == 0 {
			continue
		}
		fmt.Fprintf(&b, overviewTemplate, category, total, categoryBlurb[category])
		b.WriteString(section)
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderCategory(result analyzer.Result, category detect.Category) (string, int) {
	var b strings.Builder
	total := 0
	for _, info := range detect.All() {
		if info.Category != category {
			continue
		}
		files := result[info.ID]
		if len(files) == 0 {
			continue
		}

		b.WriteString(info.Description)
		b.WriteString("\n### Lines\n")
		for _, fl := range files {
			for _, line := range fl.Lines {
				fmt.Fprintf(&b, "- %s:%d\n", fl.File, line)
				total++
			}
		}
		b.WriteString("\n\n")
	}
	return b.String(), total
}
