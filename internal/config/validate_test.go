package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immutable-generator/internal/diagnostic"
)

func TestValidate_OK(t *testing.T) {
	f := &File{
		Version: CurrentVersion,
		Engine:  DefaultEngine,
		Types: []TypeConfig{
			{Name: "Point", Options: StringOrArray{"enableoperatorequals"}},
			{Name: "Polygon", Options: StringOrArray{"DisableWith|DisableToString"}},
		},
	}

	res := Validate(f)
	assert.True(t, res.IsValid(), res.Error())
}

func TestValidate_Errors(t *testing.T) {
	f := &File{
		Version: "2",
		Engine:  "structural",
		Types: []TypeConfig{
			{Name: ""},
			{Name: "Point", Options: StringOrArray{"DisableWiht"}},
			{Name: "Point"},
		},
	}

	res := Validate(f)
	require.Len(t, res.Errors, 5)

	codes := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		codes = append(codes, e.Code)
	}

	assert.Equal(t, []string{
		diagnostic.CodeBadVersion,
		diagnostic.CodeUnknownEngine,
		diagnostic.CodeEmptyTypeName,
		diagnostic.CodeUnknownOption,
		diagnostic.CodeDuplicateType,
	}, codes)

	assert.Equal(t, []string{"DisableWith"}, res.Errors[3].Suggestions[:1])
	assert.Equal(t, "Point", res.Errors[3].TypeName)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	assert.True(t, res.HasErrors())
}
