package webmanifest

import (
	"fmt"
	"slices"
)

// objectShape is an allow-list of member names. name is the noun used in
// "Unknown <name> attribute" messages.
type objectShape struct {
	name   string
	fields []string
}

var manifestShape = objectShape{
	name: "manifest",
	fields: []string{
		"background_color", "color", "description", "dir", "display",
		"icons", "lang", "name", "orientation", "prefer_related_applications",
		"related_applications", "scope", "screenshots", "short_name",
		"start_url", "theme_color",
	},
}

// checkUnknown reports members outside the shape, in document order.
func checkUnknown(o *Object, at PathRef, shape objectShape, iss Issues) Issues {
	for key := range o.All() {
		if slices.Contains(shape.fields, key) {
			continue
		}
		is := newIssue(at.Field(key), CodeUnknownKey, "unknown",
			fmt.Sprintf(`Unknown %s attribute "%s".`, shape.name, key))
		is.Hint = hintFor(key, shape.fields)
		iss = append(iss, is)
	}
	return iss
}
