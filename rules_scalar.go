package webmanifest

import (
	"fmt"
	"regexp"
)

// stringRule configures the generic string type check. prefix is placed in
// front of the quoted field name and carries its own trailing space.
type stringRule struct {
	field  string
	prefix string
}

// booleanRule configures the generic boolean type check.
type booleanRule struct {
	field string
}

var dirRule = enumRule{field: "dir", allowed: []string{"rtl", "ltr", "auto"}, reportNull: true}

// langPattern is a loose syntactic check, not BCP 47 validation. Segments may
// be empty.
var langPattern = regexp.MustCompile(`^\w*(-\w*)*$`)

// checkDir reports a "dir" member that is present but not one of the allowed
// directions. Only absence is exempt; null is reported.
func checkDir(m *Object, at PathRef, iss Issues) Issues {
	return checkEnum(m, at, dirRule, iss)
}

func checkLang(m *Object, at PathRef, iss Issues) Issues {
	v, ok := m.Get("lang")
	if !ok || langPattern.MatchString(v.Text()) {
		return iss
	}
	return append(iss, newIssue(at.Field("lang"), CodePattern, "lang",
		fmt.Sprintf(`Invalid "lang" value "%s".`, v.Text())))
}

// stringTypeOK reports whether a member passes the string type check. Falsy
// values (including "") are treated as missing and always pass.
func stringTypeOK(v Value, present bool) bool {
	return isAbsentForValidation(v, present) || v.Kind() == KindString
}

func checkString(m *Object, at PathRef, r stringRule, iss Issues) Issues {
	v, ok := m.Get(r.field)
	if stringTypeOK(v, ok) {
		return iss
	}
	return append(iss, newIssue(at.Field(r.field), CodeInvalidType, "string",
		fmt.Sprintf(`Invalid %s"%s" value type "%s". Expected a string or undefined.`, r.prefix, r.field, v.TypeOf())))
}

func checkBoolean(m *Object, at PathRef, r booleanRule, iss Issues) Issues {
	v, ok := m.Get(r.field)
	if !ok || v.IsNull() || v.Kind() == KindBool {
		return iss
	}
	return append(iss, newIssue(at.Field(r.field), CodeInvalidType, "boolean",
		fmt.Sprintf(`Invalid "%s" value type "%s". Expected a boolean or undefined.`, r.field, v.TypeOf())))
}

func newIssue(at PathRef, code, rule, msg string) Issue {
	is := at.Issue(code, msg)
	is.Rule = rule
	return is
}
