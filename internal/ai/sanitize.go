package ai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTranscriptLength is the number of runes of a transcript sent to a model.
	MaxTranscriptLength = 30000
	truncatedSuffix     = "... [TRUNCATED]"
)

var (
	fillerPattern     = regexp.MustCompile(`(?i)\b(uh|um|hmm|okay|actually|basically|like|you know|right|so)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeTranscript drops filler words, collapses whitespace and cuts the
// transcript to MaxTranscriptLength runes.
func SanitizeTranscript(transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return ""
	}

	sanitized := fillerPattern.ReplaceAllString(transcript, "")
	sanitized = strings.TrimSpace(whitespacePattern.ReplaceAllString(sanitized, " "))

	if utf8.RuneCountInString(sanitized) > MaxTranscriptLength {
		sanitized = string([]rune(sanitized)[:MaxTranscriptLength]) + truncatedSuffix
	}

	return sanitized
}
