package webmanifest

import "fmt"

// stringFields are the top-level members that only need the string type
// check, in reporting order.
var stringFields = []string{
	"name", "short_name", "description", "scope",
	"color", "background_color", "theme_color",
}

// Check runs every rule against the manifest and returns the findings in a
// fixed order. A nil manifest is the empty manifest. Check never modifies m.
func Check(m *Object) Issues {
	at := Root()
	iss := Issues{}

	iss = checkDir(m, at, iss)
	iss = checkLang(m, at, iss)
	for _, f := range stringFields {
		iss = checkString(m, at, stringRule{field: f}, iss)
	}
	iss = checkStartURL(m, at, iss)
	iss = checkImages(m, at, iconsRule, iss)
	iss = checkImages(m, at, screenshotsRule, iss)
	iss = checkEnum(m, at, displayRule, iss)
	iss = checkEnum(m, at, orientationRule, iss)
	iss = checkPreferRelatedApplications(m, at, iss)
	iss = checkRelatedApplications(m, at, iss)
	iss = checkUnknown(m, at, manifestShape, iss)

	return iss
}

// Validate returns the message of every rule violation in m. An empty result
// means the manifest conforms.
func Validate(m *Object) []string {
	return Check(m).Messages()
}

// CheckValue is Check for a value of any shape. Roots other than objects
// fail with ErrNotObject.
func CheckValue(v Value) (Issues, error) {
	o, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.Kind())
	}
	return Check(o), nil
}

// ValidateValue is Validate for a value of any shape. Roots other than
// objects fail with ErrNotObject.
func ValidateValue(v Value) ([]string, error) {
	iss, err := CheckValue(v)
	if err != nil {
		return nil, err
	}
	return iss.Messages(), nil
}
