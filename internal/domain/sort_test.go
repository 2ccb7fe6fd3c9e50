package domain

import "testing"

func TestSortForDisplay_SimpleBeforeComplexThenCaseInsensitive(t *testing.T) {
	complexMatch := &Match{Trigger: ":aaa", Replace: "x", Extra: []ExtraField{{Key: "word", Value: true}}}
	matches := []*Match{
		{Trigger: ":Zed", Replace: "z"},
		complexMatch,
		{Trigger: ":apple", Replace: "a"},
		{Trigger: ":BANANA", Replace: "b"},
	}

	sorted := SortForDisplay(matches)

	want := []string{":apple", ":BANANA", ":Zed", ":aaa"}
	for i, trigger := range want {
		if sorted[i].Trigger != trigger {
			t.Fatalf("position %d: expected %q, got %q", i, trigger, sorted[i].Trigger)
		}
	}

	// Input order must be untouched.
	if matches[0].Trigger != ":Zed" {
		t.Error("SortForDisplay mutated its input")
	}
}

func TestSortForDisplay_IsIdempotent(t *testing.T) {
	matches := []*Match{
		{Trigger: ":b"},
		{Trigger: ":B"},
		{Trigger: ":a", Extra: []ExtraField{{Key: "vars", Value: []any{}}}},
	}

	once := SortForDisplay(matches)
	twice := SortForDisplay(once)

	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("re-sorting changed order at position %d", i)
		}
	}
}

func TestFilterMatches_SubstringOverTriggerAndReplace(t *testing.T) {
	matches := []*Match{
		{Trigger: ":hello", Replace: "Hi there"},
		{Trigger: ":bye", Replace: "Goodbye"},
		{Trigger: ":sig", Replace: "Kind regards"},
	}

	if got := FilterMatches(matches, "BYE"); len(got) != 1 || got[0].Trigger != ":bye" {
		t.Errorf("filter on trigger failed: %+v", got)
	}
	if got := FilterMatches(matches, "regards"); len(got) != 1 || got[0].Trigger != ":sig" {
		t.Errorf("filter on replace failed: %+v", got)
	}
	if got := FilterMatches(matches, ""); len(got) != 3 {
		t.Errorf("empty query should keep all matches, got %d", len(got))
	}
	if got := FilterMatches(matches, "zzz"); len(got) != 0 {
		t.Errorf("no-hit query should filter everything, got %d", len(got))
	}
}
