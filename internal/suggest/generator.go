package suggest

import (
	"context"
	"strings"
)

// Generator turns the concatenated text of one column's cards into a
// list of suggested new card texts. Implementations are external
// collaborators; the board core treats the result as opaque strings.
type Generator interface {
	Generate(ctx context.Context, text string) ([]string, error)
}

// parseSuggestions splits a model reply into one suggestion per line,
// stripping common bullet and numbering prefixes.
func parseSuggestions(reply string) []string {
	var suggestions []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		if i := numberedPrefixLen(line); i > 0 {
			line = strings.TrimSpace(line[i:])
		}
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
	}
	return suggestions
}

// numberedPrefixLen returns the length of a leading "1." or "1)" style
// prefix, or 0 when the line is not numbered.
func numberedPrefixLen(line string) int {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return 0
	}
	if line[i] == '.' || line[i] == ')' {
		return i + 1
	}
	return 0
}
