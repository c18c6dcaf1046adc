package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the comparison strategy for a field.
type Kind string

const (
	// KindText compares coerced strings and carries a word-level diff.
	KindText Kind = "text"
	// KindScalar compares formatted display values.
	KindScalar Kind = "scalar"
	// KindList compares string lists structurally.
	KindList Kind = "list"
)

// Spec declares one comparable field: its name, its kind, and an optional
// display formatter applied before comparison (e.g. month number to month
// name, period id to period label). The order of a spec slice fixes the
// order of the produced changes.
type Spec struct {
	Name   string
	Kind   Kind
	Format func(any) string
}

// Change is one field's before/after pair. Words is populated for text
// fields only.
type Change struct {
	Field string  `json:"field"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Words []Token `json:"word_diff,omitempty"`
}

// Fields compares original and candidate over the declared specs, in spec
// order, and returns one Change per field whose values differ. Unchanged
// fields are omitted. Nil values coerce to the empty string or empty list.
func Fields(original, candidate map[string]any, specs []Spec) []Change {
	var changes []Change
	for _, spec := range specs {
		ov, cv := original[spec.Name], candidate[spec.Name]

		switch spec.Kind {
		case KindList:
			from, to := coerceList(ov), coerceList(cv)
			if listsEqual(from, to) {
				continue
			}
			changes = append(changes, Change{
				Field: spec.Name,
				From:  strings.Join(from, ", "),
				To:    strings.Join(to, ", "),
			})

		case KindText:
			from, to := coerceString(ov), coerceString(cv)
			if from == to {
				continue
			}
			changes = append(changes, Change{
				Field: spec.Name,
				From:  from,
				To:    to,
				Words: Words(from, to),
			})

		default:
			from, to := spec.format(ov), spec.format(cv)
			if from == to {
				continue
			}
			changes = append(changes, Change{Field: spec.Name, From: from, To: to})
		}
	}
	return changes
}

// format applies the spec formatter, falling back to plain string coercion.
func (s Spec) format(v any) string {
	if s.Format != nil {
		if v == nil {
			return ""
		}
		return s.Format(v)
	}
	return coerceString(v)
}

// coerceString renders a scalar value for comparison. Nil is the empty
// string so the engine never has to branch on missing fields.
func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return val
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = coerceString(item)
		}
		return out
	default:
		return []string{coerceString(val)}
	}
}

func listsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
