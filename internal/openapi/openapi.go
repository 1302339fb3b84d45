// Package openapi generates the OpenAPI 3 document from the same
// declarative tables that drive validation: model property tables
// describe response schemas, operation payload schemas describe
// request bodies. The document is assembled once at startup and served
// as-is.
package openapi

import (
	"fmt"
	"strings"

	"github.com/userhubapp/userhub/internal/model"
	"github.com/userhubapp/userhub/internal/validation"
)

// Info is the document header.
type Info struct {
	Title       string
	Description string
	Version     string
}

// SchemaDef names a reusable component schema built from a model
// property table.
type SchemaDef struct {
	Name       string
	Properties []model.Property

	// Relations maps a property name to another schema ref that is
	// embedded as an array, e.g. posts -> Post.
	Relations map[string]string
}

// Response describes one documented response of a route.
type Response struct {
	Status      int
	Description string

	// Ref names a component schema; Array wraps it in an array.
	Ref   string
	Array bool
}

// Route describes one documented operation.
type Route struct {
	Method  string
	Path    string
	Summary string
	Tag     string

	// Payload is the operation's payload schema, nil when the route
	// takes no body. PayloadContent is its media type.
	Payload        *validation.Schema
	PayloadContent string

	Responses []Response
}

// Generate assembles the OpenAPI 3 document.
func Generate(info Info, schemas []SchemaDef, routes []Route) map[string]any {
	components := map[string]any{}
	for _, def := range schemas {
		components[def.Name] = schemaObject(def)
	}
	components["ValidationError"] = validationErrorSchema()

	paths := map[string]any{}
	for _, route := range routes {
		item, _ := paths[route.Path].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[route.Path] = item
		}
		item[strings.ToLower(route.Method)] = operationObject(route)
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       info.Title,
			"description": info.Description,
			"version":     info.Version,
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": components,
		},
	}
}

// schemaObject converts a property table into an object schema.
func schemaObject(def SchemaDef) map[string]any {
	properties := map[string]any{}

	for _, prop := range def.Properties {
		properties[prop.Name] = propertyObject(prop)
	}

	for name, ref := range def.Relations {
		properties[name] = map[string]any{
			"type":  "array",
			"items": refObject(ref),
		}
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

func propertyObject(prop model.Property) map[string]any {
	out := map[string]any{}

	switch prop.Kind {
	case "datetime":
		out["type"] = "string"
		out["format"] = "date-time"
	default:
		out["type"] = prop.Kind
	}

	if prop.Nullable {
		out["nullable"] = true
	}
	if prop.Example != nil {
		out["example"] = prop.Example
	}

	return out
}

// operationObject converts one route descriptor.
func operationObject(route Route) map[string]any {
	operation := map[string]any{
		"summary":   route.Summary,
		"tags":      []string{route.Tag},
		"responses": responsesObject(route.Responses),
	}

	if route.Payload != nil {
		operation["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				route.PayloadContent: map[string]any{
					"schema": payloadObject(route.Payload),
				},
			},
		}
	}

	return operation
}

// payloadObject converts an operation payload schema into a request
// body schema, file rules included.
func payloadObject(schema *validation.Schema) map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, field := range schema.Fields {
		prop := map[string]any{"type": field.Kind}
		if field.Format != "" {
			prop["format"] = field.Format
		}
		properties[field.Name] = prop

		if field.Required {
			required = append(required, field.Name)
		}
	}

	for _, rule := range schema.Files {
		properties[rule.Field] = map[string]any{
			"type":        "string",
			"format":      "binary",
			"description": fmt.Sprintf("Accepted types: %s", strings.Join(rule.MIMETypes, ", ")),
		}
		if !rule.Optional {
			required = append(required, rule.Field)
		}
	}

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func responsesObject(responses []Response) map[string]any {
	out := map[string]any{}

	for _, response := range responses {
		body := map[string]any{
			"description": response.Description,
		}

		if response.Ref != "" {
			var schema map[string]any
			if response.Array {
				schema = map[string]any{
					"type":  "array",
					"items": refObject(response.Ref),
				}
			} else {
				schema = refObject(response.Ref)
			}
			body["content"] = map[string]any{
				"application/json": map[string]any{
					"schema": schema,
				},
			}
		}

		out[fmt.Sprintf("%d", response.Status)] = body
	}

	return out
}

func refObject(name string) map[string]any {
	return map[string]any{
		"$ref": "#/components/schemas/" + name,
	}
}

// validationErrorSchema is the envelope served with 422 responses.
func validationErrorSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean", "example": false},
			"message": map[string]any{"type": "string", "example": "Validation failure"},
			"errors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"field":   map[string]any{"type": "string", "example": "email"},
						"message": map[string]any{"type": "string", "example": "must be a valid email address"},
					},
				},
			},
		},
	}
}
