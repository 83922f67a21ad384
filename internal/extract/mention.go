// Package extract pulls mentions, links and dates out of chat message text
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// mentionRegex matches a user mention like <@U123> or <@W9> and captures
// the id plus everything after it
var mentionRegex = regexp.MustCompile(`(?s)<@(|[WU].+?)>(.*)`)

// ParseMention finds the first user mention in text.
// Returns the user ID and the trimmed text following the mention.
// ok is false when text has no mention, which is not an error.
func ParseMention(text string) (userID string, remainder string, ok bool) {
	m := mentionRegex.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// FormatMention renders a user ID back into mention syntax
func FormatMention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
