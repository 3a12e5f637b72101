package repository

import "testing"

func TestKeywordMatchDefaultsToLower(t *testing.T) {
	clause, args, ok := keywordMatch(nil, "  gdpr ", "title", " ", "content")
	if !ok {
		t.Fatalf("expected clause")
	}
	want := `(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\')`
	if clause != want {
		t.Fatalf("clause mismatch: %s", clause)
	}
	if len(args) != 2 || args[0] != "%gdpr%" || args[1] != "%gdpr%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestKeywordMatchEscapesWildcards(t *testing.T) {
	_, args, ok := keywordMatch(nil, `50%_off\`, "title")
	if !ok || len(args) != 1 {
		t.Fatalf("expected one arg, got %v", args)
	}
	if args[0] != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern: %v", args[0])
	}
}

func TestKeywordMatchEmpty(t *testing.T) {
	if _, _, ok := keywordMatch(nil, "   ", "title"); ok {
		t.Fatalf("blank keyword should not match")
	}
	if _, _, ok := keywordMatch(nil, "x"); ok {
		t.Fatalf("no columns should not match")
	}
}

func TestMatchTemplatePostgres(t *testing.T) {
	if got := matchTemplate("postgres"); got != `%s ILIKE ? ESCAPE '\'` {
		t.Fatalf("unexpected postgres template: %s", got)
	}
}
