package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DerivesLlmAndPluralWrapper(t *testing.T) {
	assert.Contains(t, Config.Schema.Types, "llm")
	assert.Contains(t, Config.Schema.Types, "plural:llm")
	assert.Contains(t, string(Config.Source), "type Llm struct")
	assert.Contains(t, string(Config.Source), "type PluralLlm map[string]Llm")
}
