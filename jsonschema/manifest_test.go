package jsonschema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/webmanifest"
	"github.com/reoring/webmanifest/jsonschema"
)

func instance(t *testing.T, doc string) any {
	t.Helper()
	v, err := webmanifest.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return v.Interface()
}

func TestCompile(t *testing.T) {
	s, err := jsonschema.Compile()
	require.NoError(t, err)
	require.NotNil(t, s)

	again, err := jsonschema.Compile()
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestValidate_ConformingManifest(t *testing.T) {
	doc := `{
		"name": "Example",
		"short_name": "Ex",
		"dir": "ltr",
		"lang": "en-US",
		"display": "standalone",
		"orientation": "portrait-primary",
		"start_url": "/app/index.html",
		"scope": "/app/",
		"icons": [{"src": "icon.png", "sizes": "48x48 96x96", "type": "image/png"}],
		"prefer_related_applications": true,
		"related_applications": [{"platform": "play", "id": "com.example.app"}]
	}`
	assert.NoError(t, jsonschema.Validate(instance(t, doc)))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "display outside enum", doc: `{"display": "foo"}`},
		{name: "name not a string", doc: `{"name": 123}`},
		{name: "bad sizes", doc: `{"icons": [{"src": "a.png", "sizes": "64x64,64x64"}]}`},
		{name: "icon without src", doc: `{"icons": [{"sizes": "64x64"}]}`},
		{name: "unknown member", doc: `{"foo": 1}`},
		{name: "unknown icon member", doc: `{"icons": [{"src": "a.png", "foo": 1}]}`},
		{name: "prefer without apps", doc: `{"prefer_related_applications": true}`},
		{name: "prefer with empty apps", doc: `{"prefer_related_applications": true, "related_applications": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, jsonschema.Validate(instance(t, tt.doc)))
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	out, err := jsonschema.MarshalIndent()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"$id": "`+jsonschema.ManifestURL+`"`)
	assert.Contains(t, string(out), `"additionalProperties": false`)
}

func TestIssues(t *testing.T) {
	err := jsonschema.Validate(instance(t, `{"display": "foo", "icons": [{"sizes": "1"}]}`))
	require.Error(t, err)

	iss, ok := jsonschema.Issues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	for _, it := range iss {
		assert.Equal(t, webmanifest.CodeSchema, it.Code)
		assert.NotEmpty(t, it.Message)
	}
	assert.Equal(t, "/display", iss[0].Path)

	_, ok = jsonschema.Issues(assert.AnError)
	assert.False(t, ok)
}

func TestMarshalIndent_WellFormed(t *testing.T) {
	for range 3 {
		out, err := jsonschema.MarshalIndent()
		require.NoError(t, err)
		require.True(t, json.Valid(out))
		assert.Less(t, len(out), 8192)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(out, &doc))
		props, ok := doc["properties"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, props, 16)
	}
}

func TestIssues_IndexOrder(t *testing.T) {
	icons := make([]string, 11)
	for i := range icons {
		icons[i] = `{"src": "a.png"}`
	}
	icons[2] = `{"src": "a.png", "sizes": "big"}`
	icons[10] = `{"src": "a.png", "sizes": "huge"}`
	doc := `{"icons": [` + strings.Join(icons, ",") + `]}`

	iss, ok := jsonschema.Issues(jsonschema.Validate(instance(t, doc)))
	require.True(t, ok)
	var paths []string
	for _, it := range iss {
		paths = append(paths, it.Path)
	}
	assert.Equal(t, []string{"/icons/2/sizes", "/icons/10/sizes"}, paths)
}
