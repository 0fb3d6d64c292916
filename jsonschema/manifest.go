package jsonschema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/webmanifest"
)

// ManifestURL is the identifier the exported schema is registered under.
const ManifestURL = "https://github.com/reoring/webmanifest/manifest.schema.json"

// Manifest describes the recognized manifest members as a JSON Schema
// (draft 2020-12). It is stricter than the checker in webmanifest: enum
// values are case-sensitive and falsy non-string values are not exempt from
// string typing.
func Manifest() *Schema {
	one := 1
	sizes := &Schema{Type: "string", Pattern: `^\s*\d+x\d+(\s+\d+x\d+)*\s*$`}

	image := func(title string) *Schema {
		return &Schema{
			Title: title,
			Type:  "object",
			Properties: map[string]*Schema{
				"src":     str(),
				"sizes":   sizes,
				"type":    str(),
				"purpose": str(),
			},
			Required:             []string{"src"},
			AdditionalProperties: false,
		}
	}

	relatedApp := &Schema{
		Title: "related application",
		Type:  "object",
		Properties: map[string]*Schema{
			"platform": str(),
			"url":      str(),
			"id":       str(),
		},
		AdditionalProperties: false,
	}

	return &Schema{
		Schema: "https://json-schema.org/draft/2020-12/schema",
		ID:     ManifestURL,
		Title:  "Web application manifest",
		Type:   "object",
		Properties: map[string]*Schema{
			"background_color": str(),
			"color":            str(),
			"description":      str(),
			"dir":              enum("ltr", "rtl", "auto"),
			"display":          enum("fullscreen", "standalone", "minimal-ui", "browser"),
			"icons":            {Type: "array", Items: image("icon")},
			"lang":             {Type: "string", Pattern: `^\w*(-\w*)*$`},
			"name":             str(),
			"orientation": enum("any", "natural",
				"landscape", "landscape-primary", "landscape-secondary",
				"portrait", "portrait-primary", "portrait-secondary"),
			"prefer_related_applications": {Type: "boolean"},
			"related_applications":        {Type: "array", Items: relatedApp},
			"scope":                       str(),
			"screenshots":                 {Type: "array", Items: image("screenshot")},
			"short_name":                  str(),
			"start_url":                   str(),
			"theme_color":                 str(),
		},
		AdditionalProperties: false,
		If: &Schema{
			Properties: map[string]*Schema{"prefer_related_applications": {Const: true}},
			Required:   []string{"prefer_related_applications"},
		},
		Then: &Schema{
			Properties: map[string]*Schema{"related_applications": {MinItems: &one}},
			Required:   []string{"related_applications"},
		},
	}
}

func str() *Schema { return &Schema{Type: "string"} }

func enum(values ...string) *Schema {
	s := &Schema{Type: "string"}
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

// MarshalIndent renders the manifest schema as indented JSON.
func MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(Manifest(), "", "  ")
}

var (
	compileOnce sync.Once
	compiled    *sjs.Schema
	compileErr  error
)

// Compile returns the manifest schema compiled for validation. The result is
// shared and safe for concurrent use.
func Compile() (*sjs.Schema, error) {
	compileOnce.Do(func() {
		data, err := json.Marshal(Manifest())
		if err != nil {
			compileErr = fmt.Errorf("encode schema: %w", err)
			return
		}
		doc, err := sjs.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("decode schema: %w", err)
			return
		}
		c := sjs.NewCompiler()
		if err := c.AddResource(ManifestURL, doc); err != nil {
			compileErr = fmt.Errorf("register schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(ManifestURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks a decoded instance (plain Go values such as those returned
// by webmanifest.Value.Interface) against the manifest schema.
func Validate(instance any) error {
	s, err := Compile()
	if err != nil {
		return err
	}
	return s.Validate(instance)
}

// Issues flattens a schema validation error into one schema issue per failing
// leaf keyword, ordered by instance location. It reports false for errors
// that are not validation failures.
func Issues(err error) (webmanifest.Issues, bool) {
	var ve *sjs.ValidationError
	if !errors.As(err, &ve) {
		return nil, false
	}
	p := message.NewPrinter(language.English)
	type leaf struct {
		loc   []string
		issue webmanifest.Issue
	}
	var leaves []leaf
	var walk func(e *sjs.ValidationError)
	walk = func(e *sjs.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		at := webmanifest.Root()
		for _, seg := range e.InstanceLocation {
			at = at.Field(seg)
		}
		leaves = append(leaves, leaf{loc: e.InstanceLocation, issue: webmanifest.Issue{
			Path:    at.Pointer(),
			Code:    webmanifest.CodeSchema,
			Message: e.ErrorKind.LocalizedString(p),
			Rule:    "schema",
		}})
	}
	walk(ve)
	slices.SortStableFunc(leaves, func(a, b leaf) int { return compareLocation(a.loc, b.loc) })
	var out webmanifest.Issues
	for _, l := range leaves {
		out = webmanifest.AppendIssues(out, l.issue)
	}
	return out, true
}

// compareLocation orders instance locations segment by segment, comparing
// array indexes numerically.
func compareLocation(a, b []string) int {
	for i := range min(len(a), len(b)) {
		ai, aerr := strconv.Atoi(a[i])
		bi, berr := strconv.Atoi(b[i])
		c := 0
		if aerr == nil && berr == nil {
			c = cmp.Compare(ai, bi)
		} else {
			c = cmp.Compare(a[i], b[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
