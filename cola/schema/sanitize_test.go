package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_ReservedFieldGetsSuffix(t *testing.T) {
	assert.Equal(t, "type_", Sanitize("type", FieldIdent))
}

func TestSanitize_DotsAndDashesBecomeUnderscore(t *testing.T) {
	assert.Equal(t, "api_key", Sanitize("api-key", FieldIdent))
	assert.Equal(t, "api_key", Sanitize("api.key", FieldIdent))
}

func TestSanitize_LeadingDigitPrefixed(t *testing.T) {
	s := Sanitize("2fast", FieldIdent)
	assert.NotRegexp(t, `^[0-9]`, s)
}

func TestSanitize_TypeIsUpperCamelCase(t *testing.T) {
	assert.Equal(t, "ApiKey", Sanitize("api_key", TypeIdent))
	assert.Equal(t, "ApiKey", Sanitize("api-key", TypeIdent))
}

func TestSanitize_FieldIsLowerSnakeCase(t *testing.T) {
	assert.Equal(t, "api_key", Sanitize("ApiKey", FieldIdent))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"type", "api-key", "2fast", "Name", "func", "x.y-z", "plural", "already_snake", "AlreadyCamel"}
	for _, in := range inputs {
		for _, kind := range []IdentKind{TypeIdent, FieldIdent, VariableIdent} {
			once := Sanitize(in, kind)
			twice := Sanitize(once, kind)
			assert.Equal(t, once, twice, "Sanitize(%q, %v) not idempotent", in, kind)
		}
	}
}
