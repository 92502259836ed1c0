package telegram

import (
	"strings"
	"unicode/utf8"
)

// SplitMessage splits a message into chunks of maxLen runes, preferring to
// split at a newline in the second half of a chunk.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for utf8.RuneCountInString(text) > maxLen {
		runes := []rune(text)
		splitAt := maxLen

		// LastIndex is a byte offset; convert to runes before slicing
		chunk := string(runes[:maxLen])
		if nl := strings.LastIndex(chunk, "\n"); nl >= 0 {
			if nlRunes := utf8.RuneCountInString(chunk[:nl]); nlRunes > maxLen/2 {
				splitAt = nlRunes + 1
			}
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}
	if text != "" {
		parts = append(parts, text)
	}

	return parts
}

// FixMarkdown closes unbalanced code fences and inline code so Telegram
// accepts model output as Markdown.
func FixMarkdown(text string) string {
	if strings.Count(text, "```")%2 != 0 {
		text += "\n```"
	}
	return closeInlineCode(text)
}

func closeInlineCode(text string) string {
	var b strings.Builder
	inFence := false
	inlineOpen := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && string(runes[i:i+3]) == "```" {
			if inlineOpen {
				b.WriteRune('`')
				inlineOpen = false
			}
			inFence = !inFence
			b.WriteString("```")
			i += 2
			continue
		}

		if !inFence && runes[i] == '`' {
			inlineOpen = !inlineOpen
		}

		b.WriteRune(runes[i])
	}

	if inlineOpen {
		b.WriteRune('`')
	}

	return b.String()
}
