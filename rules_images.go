package webmanifest

import (
	"fmt"
	"regexp"
)

// imageCollection names a list of image resources and the noun used for
// one of its items in messages.
type imageCollection struct {
	field string
	item  string
}

var (
	iconsRule       = imageCollection{field: "icons", item: "icon"}
	screenshotsRule = imageCollection{field: "screenshots", item: "screenshot"}
)

var imageShape = []string{"src", "sizes", "type", "purpose"}

// ws matches the characters JavaScript's \s does.
const ws = `[\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// sizesPattern accepts whitespace separated WIDTHxHEIGHT tokens.
var sizesPattern = regexp.MustCompile(`^` + ws + `*\d+x\d+(?:` + ws + `+\d+x\d+)*` + ws + `*$`)

// checkImages validates an icons-like collection. A missing src is reported
// once for the whole collection, at the first offending item; every other
// finding is reported per item.
func checkImages(m *Object, at PathRef, c imageCollection, iss Issues) Issues {
	v, ok := m.Get(c.field)
	if !ok {
		return iss
	}
	fieldAt := at.Field(c.field)
	if v.Kind() != KindArray {
		return append(iss, newIssue(fieldAt, CodeInvalidType, c.field,
			fmt.Sprintf(`Invalid "%s" value type "%s". Expected an array or undefined.`, c.field, v.TypeOf())))
	}

	srcReported := false
	for i, item := range v.Items() {
		// Non-object items behave as objects without members.
		obj, _ := item.AsObject()
		itemAt := fieldAt.Index(i)

		if !srcReported && !hasSrc(obj) {
			srcReported = true
			iss = append(iss, newIssue(fieldAt, CodeRequired, c.field,
				fmt.Sprintf(`Invalid "%s" value, %s need to have a valid "src" attribute.`, c.field, c.field)))
		}
		iss = checkSizes(obj, itemAt, c, iss)
		iss = checkString(obj, itemAt, stringRule{field: "type", prefix: c.item + " "}, iss)
		iss = checkUnknown(obj, itemAt, objectShape{name: c.item, fields: imageShape}, iss)
	}
	return iss
}

func hasSrc(o *Object) bool {
	v, ok := o.Get("src")
	s, isStr := v.AsString()
	return ok && isStr && s != ""
}

func checkSizes(o *Object, at PathRef, c imageCollection, iss Issues) Issues {
	v, ok := o.Get("sizes")
	if !ok || v.IsNull() {
		return iss
	}
	if s, isStr := v.AsString(); isStr && sizesPattern.MatchString(s) {
		return iss
	}
	return append(iss, newIssue(at.Field("sizes"), CodeInvalidFormat, c.field,
		fmt.Sprintf(`Invalid %s's "sizes" value "%s". The expected format is "123x345".`, c.item, v.Text())))
}
