package services

import "testing"

func TestSuggestSkills(t *testing.T) {
	suggestions := SuggestSkills("java", 10)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions for %q, got %v", "java", suggestions)
	}
	if suggestions[0] != "JavaScript" || suggestions[1] != "Java" {
		t.Fatalf("unexpected suggestions: %v", suggestions)
	}
}

func TestSuggestSkillsHonorsLimit(t *testing.T) {
	suggestions := SuggestSkills("a", 3)
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
}

func TestSuggestSkillsNoMatch(t *testing.T) {
	suggestions := SuggestSkills("cobol", 10)
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %v", suggestions)
	}
}
