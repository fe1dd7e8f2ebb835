package chat

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// CleanReply prepares model output for display: bold markers are dropped,
// literal "\n" sequences become newlines, runs of three or more newlines
// collapse to two, and surrounding whitespace is trimmed.
func CleanReply(reply string) string {
	s := strings.ReplaceAll(reply, "**", "")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
