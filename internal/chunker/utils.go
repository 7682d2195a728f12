package chunker

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRegex = regexp.MustCompile(`[ \t\x{00A0}]+`)
	blankLinesRegex      = regexp.MustCompile(`\n\s*\n\s*\n+`)
	pageNumberLineRegex  = regexp.MustCompile(`(?m)^[ \t]*\d{1,4}[ \t]*$`)
)

// removes repeated headers and footers, bare page numbers and extra whitespace
func CleanText(text string, noise []string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	for _, n := range noise {
		if n = strings.TrimSpace(n); n != "" {
			text = strings.ReplaceAll(text, n, "")
		}
	}

	text = pageNumberLineRegex.ReplaceAllString(text, "")
	text = horizontalSpaceRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	text = strings.Join(lines, "\n")
	text = blankLinesRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
