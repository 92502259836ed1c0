package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	short := "hello"
	if parts := SplitMessage(short, 100); len(parts) != 1 || parts[0] != short {
		t.Errorf("short message split: %v", parts)
	}

	long := strings.Repeat("строка текста\n", 600)
	parts := SplitMessage(long, 4096)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	var total int
	for i, p := range parts {
		n := utf8.RuneCountInString(p)
		if n > 4096 {
			t.Errorf("part %d has %d runes", i, n)
		}
		total += n
	}
	if total != utf8.RuneCountInString(long) {
		t.Errorf("splitting lost content: %d != %d", total, utf8.RuneCountInString(long))
	}
}

func TestSplitMessage_MultibyteNewline(t *testing.T) {
	// the newline's byte offset exceeds the rune limit here; a byte-indexed
	// split would slice past the end of the text
	text := strings.Repeat("я", 8) + "\n" + strings.Repeat("ю", 4)
	parts := SplitMessage(text, 10)
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if !strings.HasSuffix(parts[0], "\n") {
		t.Errorf("first part should end at the newline, got %q", parts[0])
	}
	for i, p := range parts {
		if n := utf8.RuneCountInString(p); n > 10 {
			t.Errorf("part %d has %d runes", i, n)
		}
	}
	if parts[0]+parts[1] != text {
		t.Error("splitting lost content")
	}
}

func TestSplitMessage_PrefersNewline(t *testing.T) {
	text := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 80)
	parts := SplitMessage(text, 100)
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if !strings.HasSuffix(parts[0], "\n") {
		t.Errorf("first part should end at the newline, got %q", parts[0][len(parts[0])-10:])
	}
}

func TestFixMarkdown(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"`code`", "`code`"},
		{"`open", "`open`"},
		{"```go\nfmt.Println()", "```go\nfmt.Println()\n```"},
		{"```x```", "```x```"},
	}
	for _, c := range cases {
		if got := FixMarkdown(c.in); got != c.want {
			t.Errorf("FixMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
