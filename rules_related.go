package webmanifest

import "fmt"

const (
	fieldRelatedApplications       = "related_applications"
	fieldPreferRelatedApplications = "prefer_related_applications"
)

var relatedApplicationShape = objectShape{
	name:   "preferred application",
	fields: []string{"url", "platform", "id"},
}

func checkRelatedApplications(m *Object, at PathRef, iss Issues) Issues {
	v, ok := m.Get(fieldRelatedApplications)
	if !ok {
		return iss
	}
	fieldAt := at.Field(fieldRelatedApplications)
	if v.Kind() != KindArray {
		return append(iss, newIssue(fieldAt, CodeInvalidType, fieldRelatedApplications,
			fmt.Sprintf(`Invalid "%s" value type "%s". Expected an array or undefined.`, fieldRelatedApplications, v.TypeOf())))
	}
	for i, item := range v.Items() {
		obj, _ := item.AsObject()
		itemAt := fieldAt.Index(i)
		for _, f := range relatedApplicationShape.fields {
			iss = checkString(obj, itemAt, stringRule{field: f, prefix: relatedApplicationShape.name + " "}, iss)
		}
		iss = checkUnknown(obj, itemAt, relatedApplicationShape, iss)
	}
	return iss
}

// checkPreferRelatedApplications type checks the flag and, when it is true,
// requires a non-empty related_applications list.
func checkPreferRelatedApplications(m *Object, at PathRef, iss Issues) Issues {
	iss = checkBoolean(m, at, booleanRule{field: fieldPreferRelatedApplications}, iss)

	v, _ := m.Get(fieldPreferRelatedApplications)
	if b, isBool := v.AsBool(); !isBool || !b {
		return iss
	}
	apps, ok := m.Get(fieldRelatedApplications)
	if ok && apps.Kind() == KindArray && apps.Len() > 0 {
		return iss
	}
	// The message names "preferred_applications"; tooling matches on it verbatim.
	return append(iss, newIssue(at.Field(fieldPreferRelatedApplications), CodeRequired, fieldPreferRelatedApplications,
		`"prefer_related_applications" is set to true but "preferred_applications" is empty or undefined.`))
}
