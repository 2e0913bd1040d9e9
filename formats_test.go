package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValidators(t *testing.T) {
	cases := []struct {
		name  string
		fn    FormatValidator
		valid string
		bad   string
	}{
		{"date-time", isDateTime, "2023-01-15T10:30:00Z", "not-a-date"},
		{"date", isDate, "2023-01-15", "2023-13-01"},
		{"time", isTime, "10:30:00Z", "25:00:00Z"},
		{"duration", isDuration, "P3Y6M4DT12H30M5S", "3Y6M4D"},
		{"hostname", isHostname, "example.com", "-bad.com"},
		{"email", isEmail, "user@example.com", "not-an-email"},
		{"ipv4", isIPv4, "192.168.1.1", "256.1.1.1"},
		{"ipv6", isIPv6, "::1", "not-ipv6"},
		{"uri", isURI, "https://example.com/a", "not a uri"},
		{"uri-reference", isURIReference, "/a/b", "a\\b"},
		{"json-pointer", isJSONPointer, "/a/b", "a/b"},
		{"relative-json-pointer", isRelativeJSONPointer, "1/a", "/a"},
		{"uuid", isUUID, "123e4567-e89b-12d3-a456-426614174000", "not-a-uuid"},
		{"regex", isRegex, "^[a-z]+$", "["},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.fn(tc.valid), "expected %q to satisfy %s", tc.valid, tc.name)
			assert.False(t, tc.fn(tc.bad), "expected %q to fail %s", tc.bad, tc.name)
		})
	}
}

func TestFormatIsAnnotationOnlyByDefault(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "email"
	}`)

	instance, err := FromValue("not-an-email")
	if err != nil {
		t.Fatal(err)
	}
	result := schema.Evaluate(instance)
	assert.True(t, result.IsValid())

	annotation, ok := result.Annotation("format")
	assert.True(t, ok)
	assert.Equal(t, "email", annotation)
}

func TestAssertFormatSwitchesToAssertionMode(t *testing.T) {
	catalog := NewCatalog()
	catalog.AssertFormat("email")
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "email"
	}`)

	instance, err := FromValue("not-an-email")
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, schema.Evaluate(instance).IsValid())

	good, err := FromValue("user@example.com")
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, schema.Evaluate(good).IsValid())
}

func TestUnknownFormatNameIsIgnored(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "no-such-format"
	}`)

	instance, err := FromValue("anything")
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, schema.Evaluate(instance).IsValid())
}
