package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestions_Bullets(t *testing.T) {
	reply := "- write runbooks\n* rotate on-call\n• pair on reviews"

	suggestions := parseSuggestions(reply)

	assert.Equal(t, []string{"write runbooks", "rotate on-call", "pair on reviews"}, suggestions)
}

func TestParseSuggestions_Numbered(t *testing.T) {
	reply := "1. write runbooks\n2) rotate on-call\n10. automate deploys"

	suggestions := parseSuggestions(reply)

	assert.Equal(t, []string{"write runbooks", "rotate on-call", "automate deploys"}, suggestions)
}

func TestParseSuggestions_SkipsBlankLines(t *testing.T) {
	reply := "\nwrite runbooks\n\n\nrotate on-call\n"

	suggestions := parseSuggestions(reply)

	assert.Equal(t, []string{"write runbooks", "rotate on-call"}, suggestions)
}

func TestParseSuggestions_EmptyReply(t *testing.T) {
	assert.Empty(t, parseSuggestions(""))
	assert.Empty(t, parseSuggestions("\n\n"))
}

func TestParseSuggestions_PlainNumberIsKept(t *testing.T) {
	// Строка из одних цифр не считается нумерацией
	suggestions := parseSuggestions("42")

	assert.Equal(t, []string{"42"}, suggestions)
}
