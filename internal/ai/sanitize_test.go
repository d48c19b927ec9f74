package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTranscript(t *testing.T) {
	in := "Interviewer: So, tell me   about Go.\n\nCandidate: Um, I basically like   goroutines, you know."
	want := "Interviewer: , tell me about Go. Candidate: , I goroutines, ."

	assert.Equal(t, want, SanitizeTranscript(in))
}

func TestSanitizeTranscriptKeepsWordsContainingFillers(t *testing.T) {
	assert.Equal(t, "also sober likely", SanitizeTranscript("also sober likely"))
}

func TestSanitizeTranscriptEmpty(t *testing.T) {
	assert.Empty(t, SanitizeTranscript(" \n\t "))
}

func TestSanitizeTranscriptTruncates(t *testing.T) {
	in := strings.Repeat("é", MaxTranscriptLength+10)

	got := SanitizeTranscript(in)

	assert.True(t, strings.HasSuffix(got, truncatedSuffix))
	assert.Equal(t, MaxTranscriptLength, utf8.RuneCountInString(strings.TrimSuffix(got, truncatedSuffix)))
}
