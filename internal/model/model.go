// Package model defines the persisted entities and their declarative
// field metadata.
//
// Each entity carries a property table describing its serialized
// fields: JSON name, database column, primitive kind, and an example
// value. The OpenAPI document generator consumes the tables, so the
// wire shape and the documentation cannot drift apart.
package model

// Property describes one serialized field of an entity.
type Property struct {
	// Name is the JSON field name.
	Name string

	// Column is the database column backing the field. Empty for
	// computed or relation fields.
	Column string

	// Kind is the primitive kind used in the API document: "integer",
	// "string", or "datetime".
	Kind string

	// Example is a sample value for documentation.
	Example any

	// Nullable marks fields that may serialize as null.
	Nullable bool
}
