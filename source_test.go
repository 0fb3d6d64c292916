package webmanifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/webmanifest"
)

func TestParseJSON_Errors(t *testing.T) {
	for _, doc := range []string{``, `   `, `{`, `{} {}`, `["a"`} {
		_, err := webmanifest.ParseJSON([]byte(doc))
		assert.Error(t, err, "%q", doc)
	}
}

func TestParseJSONReader(t *testing.T) {
	v, err := webmanifest.ParseJSONReader(strings.NewReader(`{"name": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, webmanifest.KindObject, v.Kind())
}

func TestParseJSONC(t *testing.T) {
	doc := `{
		// application name
		"name": "Example",
		/* layout */
		"display": "standalone",
	}`
	v, err := webmanifest.ParseJSONC([]byte(doc))
	require.NoError(t, err)
	o, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"name", "display"}, o.Keys())
}

func TestParseYAML(t *testing.T) {
	doc := `
name: Example
dir: rtl
lang: ar
prefer_related_applications: true
related_applications:
  - platform: play
    id: com.example.app
icons:
  - &icon
    src: icon.png
    sizes: 48x48
  - *icon
start_url: /app/
scope: /app/
extra: 12
`
	v, err := webmanifest.ParseYAML([]byte(doc))
	require.NoError(t, err)
	o, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{
		"name", "dir", "lang", "prefer_related_applications", "related_applications",
		"icons", "start_url", "scope", "extra",
	}, o.Keys())

	icons, _ := o.Get("icons")
	assert.Equal(t, 2, icons.Len())

	msgs, err := webmanifest.ValidateValue(v)
	require.NoError(t, err)
	assert.Equal(t, []string{`Unknown manifest attribute "extra".`}, msgs)
}

func TestParseYAML_ScalarTypes(t *testing.T) {
	v, err := webmanifest.ParseYAML([]byte("name: 12\ndescription: 1.5\nprefer_related_applications: yes\nshort_name: ~\n"))
	require.NoError(t, err)
	msgs, err := webmanifest.ValidateValue(v)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`Invalid "name" value type "number". Expected a string or undefined.`,
		`Invalid "description" value type "number". Expected a string or undefined.`,
		`Invalid "prefer_related_applications" value type "string". Expected a boolean or undefined.`,
	}, msgs)
}

func TestParseYAML_Errors(t *testing.T) {
	for _, doc := range []string{``, "a: [", "? [a, b]\n: c\n"} {
		_, err := webmanifest.ParseYAML([]byte(doc))
		assert.Error(t, err, "%q", doc)
	}
}

func TestLoad_DuplicateKeys(t *testing.T) {
	doc := `{"name": "a", "name": "b"}`

	v, warnings, err := webmanifest.Load(strings.NewReader(doc), webmanifest.FormatJSON, webmanifest.ParseOpt{
		Strictness: webmanifest.Strictness{OnDuplicateKey: webmanifest.Warn},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, webmanifest.CodeDuplicateKey, warnings[0].Code)
	assert.Equal(t, "/name", warnings[0].Path)
	o, _ := v.AsObject()
	name, _ := o.Get("name")
	assert.Equal(t, "b", name.Text())

	_, _, err = webmanifest.Load(strings.NewReader(doc), webmanifest.FormatJSON, webmanifest.ParseOpt{
		Strictness: webmanifest.Strictness{OnDuplicateKey: webmanifest.Error},
	})
	iss, ok := webmanifest.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	assert.Equal(t, webmanifest.CodeDuplicateKey, iss[0].Code)

	_, warnings, err = webmanifest.Load(strings.NewReader("name: a\nname: b\n"), webmanifest.FormatYAML, webmanifest.ParseOpt{
		Strictness: webmanifest.Strictness{OnDuplicateKey: webmanifest.Warn},
	})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestLoad_MaxDepth(t *testing.T) {
	_, _, err := webmanifest.Load(strings.NewReader(`{"icons": [{"src": {"deep": 1}}]}`), webmanifest.FormatJSONC, webmanifest.ParseOpt{MaxDepth: 3})
	iss, ok := webmanifest.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	assert.Equal(t, webmanifest.CodeParseError, iss[0].Code)
	assert.Equal(t, "/icons/0/src", iss[0].Path)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, webmanifest.FormatJSON, webmanifest.FormatFromPath("site.webmanifest"))
	assert.Equal(t, webmanifest.FormatJSON, webmanifest.FormatFromPath("manifest.json"))
	assert.Equal(t, webmanifest.FormatJSONC, webmanifest.FormatFromPath("manifest.JSONC"))
	assert.Equal(t, webmanifest.FormatYAML, webmanifest.FormatFromPath("manifest.yml"))
	assert.Equal(t, webmanifest.FormatYAML, webmanifest.FormatFromPath("dir/manifest.yaml"))
}

func TestParseFormat(t *testing.T) {
	f, err := webmanifest.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, webmanifest.FormatYAML, f)

	_, err = webmanifest.ParseFormat("toml")
	assert.Error(t, err)
}
