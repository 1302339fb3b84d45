package openapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/validation"
)

func testDocument() map[string]any {
	payload := &validation.Schema{
		Fields: []validation.Field{
			{Name: "name", Kind: "string", Required: true},
			{Name: "email", Kind: "string", Required: true, Format: "email"},
		},
		Files: []validation.FileRule{
			{Field: "avatar", MIMETypes: []string{"image/jpeg", "image/png"}},
		},
	}

	return Generate(
		Info{Title: "UserHub API", Version: "1.0.0"},
		[]SchemaDef{
			{Name: "User", Properties: model.UserProperties, Relations: map[string]string{"posts": "Post"}},
			{Name: "Post", Properties: model.PostProperties},
		},
		[]Route{
			{
				Method: http.MethodGet, Path: "/api/users", Summary: "List users", Tag: "users",
				Responses: []Response{{Status: http.StatusOK, Description: "Users", Ref: "User", Array: true}},
			},
			{
				Method: http.MethodPost, Path: "/api/users", Summary: "Create user", Tag: "users",
				Payload: payload, PayloadContent: "multipart/form-data",
				Responses: []Response{
					{Status: http.StatusOK, Description: "Created", Ref: "User"},
					{Status: http.StatusUnprocessableEntity, Description: "Invalid", Ref: "ValidationError"},
				},
			},
		},
	)
}

func lookup(t *testing.T, doc map[string]any, keys ...string) map[string]any {
	t.Helper()
	current := doc
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		require.True(t, ok, "missing key %q", key)
		current = next
	}
	return current
}

func TestGenerateDocumentShape(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Equal(t, "UserHub API", lookup(t, doc, "info")["title"])
}

func TestGenerateComponentSchemas(t *testing.T) {
	doc := testDocument()

	user := lookup(t, doc, "components", "schemas", "User", "properties")

	id := user["id"].(map[string]any)
	assert.Equal(t, "integer", id["type"])

	createdAt := user["createdAt"].(map[string]any)
	assert.Equal(t, "string", createdAt["type"])
	assert.Equal(t, "date-time", createdAt["format"])

	updatedAt := user["updatedAt"].(map[string]any)
	assert.Equal(t, true, updatedAt["nullable"])

	posts := user["posts"].(map[string]any)
	assert.Equal(t, "array", posts["type"])
	assert.Equal(t, "#/components/schemas/Post", posts["items"].(map[string]any)["$ref"])
}

func TestGenerateRequestBodyFromSchema(t *testing.T) {
	doc := testDocument()

	body := lookup(t, doc, "paths", "/api/users", "post", "requestBody",
		"content", "multipart/form-data", "schema")

	properties := body["properties"].(map[string]any)

	email := properties["email"].(map[string]any)
	assert.Equal(t, "email", email["format"])

	avatar := properties["avatar"].(map[string]any)
	assert.Equal(t, "binary", avatar["format"])
	assert.Contains(t, avatar["description"], "image/jpeg")

	assert.ElementsMatch(t, []string{"name", "email", "avatar"}, body["required"])
}

func TestGenerateResponses(t *testing.T) {
	doc := testDocument()

	list := lookup(t, doc, "paths", "/api/users", "get", "responses", "200",
		"content", "application/json", "schema")
	assert.Equal(t, "array", list["type"])

	invalid := lookup(t, doc, "paths", "/api/users", "post", "responses", "422",
		"content", "application/json", "schema")
	assert.Equal(t, "#/components/schemas/ValidationError", invalid["$ref"])
}

func TestValidationErrorComponentAlwaysPresent(t *testing.T) {
	doc := Generate(Info{Title: "t"}, nil, nil)
	lookup(t, doc, "components", "schemas", "ValidationError")
}
