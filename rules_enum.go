package webmanifest

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// enumRule configures a case-insensitive membership check. allowed keeps the
// casing and order used in messages. With reportNull unset, null is skipped
// like absence.
type enumRule struct {
	field      string
	allowed    []string
	reportNull bool
}

var displayRule = enumRule{
	field:   "display",
	allowed: []string{"fullscreen", "standalone", "minimal-ui", "browser"},
}

var orientationRule = enumRule{
	field: "orientation",
	allowed: []string{
		"any", "natural",
		"landscape", "landscape-primary", "landscape-secondary",
		"portrait", "portrait-primary", "portrait-secondary",
	},
}

func checkEnum(m *Object, at PathRef, r enumRule, iss Issues) Issues {
	v, ok := m.Get(r.field)
	if !ok || (v.IsNull() && !r.reportNull) {
		return iss
	}
	if s, isStr := v.AsString(); isStr {
		ls := lower(s)
		for _, a := range r.allowed {
			if ls == lower(a) {
				return iss
			}
		}
	}
	is := newIssue(at.Field(r.field), CodeInvalidEnum, r.field,
		fmt.Sprintf(`Invalid "%s" value "%s". Expected one of %s.`, r.field, v.Text(), quoteList(r.allowed)))
	if s, isStr := v.AsString(); isStr {
		is.Hint = hintFor(s, r.allowed)
	}
	return append(iss, is)
}

// lower applies full Unicode lowercasing. A Caser is stateful, so each call
// gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// quoteList renders `"a", "b" or "c"`.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = `"` + it + `"`
	}
	if len(quoted) < 2 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
