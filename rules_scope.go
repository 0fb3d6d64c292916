package webmanifest

import "strings"

// checkStartURL type checks start_url, then requires it to begin with the
// literal scope string. The prefix test is textual; URLs are not resolved.
func checkStartURL(m *Object, at PathRef, iss Issues) Issues {
	v, ok := m.Get("start_url")
	if !stringTypeOK(v, ok) {
		return checkString(m, at, stringRule{field: "start_url"}, iss)
	}
	start, isStr := v.AsString()
	if !ok || !isStr {
		return iss
	}
	sv, _ := m.Get("scope")
	scope, isStr := sv.AsString()
	if !isStr || strings.HasPrefix(start, scope) {
		return iss
	}
	return append(iss, newIssue(at.Field("start_url"), CodeBusinessRule, "start_url",
		`Invalid "start_url" value. "start_url" is not within scope of scope URL.`))
}
