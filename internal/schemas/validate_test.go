package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCatalog_Valid(t *testing.T) {
	doc := `{
	  "profiles": [
	    {
	      "first_name": "Ada",
	      "email": "ada@example.com",
	      "projects": [
	        {"title": "Compiler", "skills": ["Go", "Rust"], "completion_date": "2024-05-01"},
	        {"title": "Blog", "skills": "Python, Django"},
	        {"title": "Untagged", "skills": null, "completion_date": ""}
	      ]
	    },
	    {"email": "grace@example.com"}
	  ]
	}`
	assert.NoError(t, ValidateCatalog([]byte(doc)))
}

func TestValidateCatalog_MissingProfiles(t *testing.T) {
	err := ValidateCatalog([]byte(`{}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateCatalog_InvalidProject(t *testing.T) {
	doc := `{"profiles": [{"email": "ada@example.com", "projects": [{"title": "X", "skills": 42, "completion_date": "May 2024"}]}]}`
	err := ValidateCatalog([]byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "profiles.0.projects.0.skills")
	assert.Contains(t, fields, "profiles.0.projects.0.completion_date")
}

func TestValidateCatalog_ProfileWithoutEmail(t *testing.T) {
	err := ValidateCatalog([]byte(`{"profiles": [{"first_name": "Ada"}]}`))
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestValidateCatalog_Malformed(t *testing.T) {
	err := ValidateCatalog([]byte(`{ not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "catalog.schema.json", loadErr.Path)
	assert.NotNil(t, loadErr.Unwrap())
}

func TestCatalogSchema_Embedded(t *testing.T) {
	assert.Contains(t, CatalogSchema(), `"profiles"`)
	assert.NoError(t, ValidateJSONString(CatalogSchema(), `{"profiles": []}`))
}

func TestValidateJSON_ValidFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": 36}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_ArrayItemType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": 36, "tags": ["ok", 7]}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "tags.1", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Ada", "age": 1}`))

	err := ValidateJSONString(personSchema, `{"name": "Ada", "age": -1}`)
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "age", Message: "must be >= 0"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. name: is required")
	assert.Contains(t, msg, "2. age: must be >= 0")
}
