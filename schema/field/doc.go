// Package field defines the closed set of semantic column types used by
// the fabrica schema description.
//
// A column's TypeInfo carries its semantic type tag plus the type-level
// constraints that synthetic value generation depends on:
//
//	field.TypeInfo{Type: field.TypeString, Size: 64}
//	field.TypeInfo{Type: field.TypeEnum, Enums: []string{"PENDING", "RUNNING"}}
//	field.TypeInfo{Type: field.TypeJSON}
//
// The type set is a tagged union: the factory package maps every member
// to a generation strategy, and a type outside the set is a
// configuration error, not a runtime condition.
package field
