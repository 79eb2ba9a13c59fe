package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/baberabb/lm-evaluation-harness-sub001/errors"
)

func TestParse(t *testing.T) {
	ref, err := Parse("promptsource:GPT-3 Style")
	require.NoError(t, err)
	assert.Equal(t, "promptsource", ref.Source)
	assert.Equal(t, "GPT-3 Style", ref.Selector)
	assert.False(t, ref.IsWildcard())
	assert.Equal(t, "promptsource:GPT-3 Style", ref.String())
}

func TestParseWildcard(t *testing.T) {
	ref, err := Parse("promptsource:*")
	require.NoError(t, err)
	assert.True(t, ref.IsWildcard())

	ok, err := ref.Match("GPT-3 Style")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseInvalid(t *testing.T) {
	for _, ref := range []string{"no-colon", ":selector", "source:", ""} {
		t.Run(ref, func(t *testing.T) {
			_, err := Parse(ref)
			assert.ErrorIs(t, err, errUtils.ErrInvalidPromptReference)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("promptsource:answer_given_options"))
	assert.False(t, IsValid("promptsource"))
}

func TestMatchExact(t *testing.T) {
	ref, err := Parse("promptsource:answer_given_options")
	require.NoError(t, err)

	ok, err := ref.Match("answer_given_options")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ref.Match("other_template")
	require.NoError(t, err)
	assert.False(t, ok)
}
