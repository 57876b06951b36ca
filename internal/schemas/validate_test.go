package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name", "score"],
	"properties": {
		"name": {"type": "string"},
		"score": {"type": "number", "minimum": 0, "maximum": 100}
	}
}`

func TestValidateDocument_Valid(t *testing.T) {
	err := ValidateDocument(testSchema, `{"name": "jane", "score": 80}`)
	assert.NoError(t, err)
}

func TestValidateDocument_MissingRequiredField(t *testing.T) {
	err := ValidateDocument(testSchema, `{"name": "jane"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 1)
	assert.Contains(t, ve.Errors[0].Message, "score")
}

func TestValidateDocument_OutOfRange(t *testing.T) {
	err := ValidateDocument(testSchema, `{"name": "jane", "score": 150}`)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "score", ve.Errors[0].Field)
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument(testSchema, `{"name": `)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestValidateDocument_BadSchema(t *testing.T) {
	err := ValidateDocument(`{"type": ["bogus"]}`, `{}`)

	var sle *SchemaLoadError
	assert.True(t, errors.As(err, &sle))
}
