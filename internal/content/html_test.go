package content

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	if got := ReadingTime("<p>short</p>"); got != 1 {
		t.Fatalf("expected minimum 1 minute, got %d", got)
	}
	long := "<p>" + strings.Repeat("word ", 650) + "</p>"
	if got := ReadingTime(long); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("<h1>Title</h1><p>Body text</p>", 0); got != "Title Body text" {
		t.Fatalf("unexpected short excerpt: %q", got)
	}
	long := "<p>" + strings.Repeat("lorem ipsum ", 40) + "</p>"
	got := Excerpt(long, 50)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if len([]rune(got)) > 51 {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}
}
