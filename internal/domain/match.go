package domain

// ExtraField is one YAML key on a match beyond trigger/replace. Fields keep
// the order they appeared in the source document so saves stay faithful.
type ExtraField struct {
	Key   string
	Value any
}

// Match is a single Espanso expansion rule: a trigger, its replacement, and
// any further YAML keys (vars, word, label, ...) carried through verbatim.
type Match struct {
	Trigger string
	Replace string
	Extra   []ExtraField
}

// IsComplex reports whether the match carries anything beyond a plain
// trigger/replace pair. Complex matches are displayed but never edited
// in place.
func (m *Match) IsComplex() bool {
	return len(m.Extra) > 0 || m.HasExtra("vars")
}

// HasExtra reports whether the match has an extra field with the given key.
func (m *Match) HasExtra(key string) bool {
	for _, f := range m.Extra {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the match, including nested extra values.
func (m *Match) Clone() *Match {
	c := &Match{
		Trigger: m.Trigger,
		Replace: m.Replace,
	}
	if len(m.Extra) > 0 {
		c.Extra = make([]ExtraField, len(m.Extra))
		for i, f := range m.Extra {
			c.Extra[i] = ExtraField{Key: f.Key, Value: deepCopyValue(f.Value)}
		}
	}
	return c
}

// Equal reports whether two matches have identical triggers, replacements
// and extra fields.
func (m *Match) Equal(other *Match) bool {
	if m.Trigger != other.Trigger || m.Replace != other.Replace {
		return false
	}
	if len(m.Extra) != len(other.Extra) {
		return false
	}
	for i, f := range m.Extra {
		if f.Key != other.Extra[i].Key {
			return false
		}
		if !equalValues(f.Value, other.Extra[i].Value) {
			return false
		}
	}
	return true
}

// deepCopyValue copies the value shapes produced by decoding YAML into any:
// mappings, sequences and scalars.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		c := make(map[string]any, len(val))
		for k, item := range val {
			c[k] = deepCopyValue(item)
		}
		return c
	case []any:
		c := make([]any, len(val))
		for i, item := range val {
			c[i] = deepCopyValue(item)
		}
		return c
	default:
		return val
	}
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, item := range av {
			other, ok := bv[k]
			if !ok || !equalValues(item, other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, item := range av {
			if !equalValues(item, bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
