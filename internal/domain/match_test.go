package domain

import "testing"

func TestIsComplex_PlainMatchIsSimple(t *testing.T) {
	m := &Match{Trigger: ":hi", Replace: "Hello"}
	if m.IsComplex() {
		t.Error("plain trigger/replace match should be simple")
	}
}

func TestIsComplex_ExtraKeyMakesComplex(t *testing.T) {
	m := &Match{
		Trigger: ":date",
		Replace: "{{today}}",
		Extra: []ExtraField{
			{Key: "vars", Value: []any{map[string]any{"name": "today", "type": "date"}}},
		},
	}
	if !m.IsComplex() {
		t.Error("match with vars should be complex")
	}

	word := &Match{
		Trigger: ":sig",
		Replace: "Regards",
		Extra:   []ExtraField{{Key: "word", Value: true}},
	}
	if !word.IsComplex() {
		t.Error("match with word key should be complex")
	}
}

func TestClone_IsDeep(t *testing.T) {
	m := &Match{
		Trigger: ":form",
		Replace: "[[name]]",
		Extra: []ExtraField{
			{Key: "form", Value: map[string]any{"fields": []any{"name"}}},
		},
	}

	c := m.Clone()
	if !m.Equal(c) {
		t.Fatal("clone should equal the original")
	}

	c.Trigger = ":other"
	c.Extra[0].Value.(map[string]any)["fields"].([]any)[0] = "changed"

	if m.Trigger != ":form" {
		t.Error("mutating clone trigger affected original")
	}
	if m.Extra[0].Value.(map[string]any)["fields"].([]any)[0] != "name" {
		t.Error("mutating nested clone value affected original")
	}
}

func TestEqual_DetectsDifferences(t *testing.T) {
	a := &Match{Trigger: ":a", Replace: "x"}
	b := &Match{Trigger: ":a", Replace: "x"}
	if !a.Equal(b) {
		t.Error("identical matches should be equal")
	}

	b.Replace = "y"
	if a.Equal(b) {
		t.Error("differing replace should not be equal")
	}

	c := &Match{Trigger: ":a", Replace: "x", Extra: []ExtraField{{Key: "word", Value: true}}}
	if a.Equal(c) {
		t.Error("extra field should break equality")
	}
}
