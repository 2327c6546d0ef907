package field

import (
	"fmt"
	"strings"
)

// A Type represents the semantic type of a column. The set is closed:
// every column loaded from a schema description carries exactly one of
// the types below, and the value-provider table in the factory package
// is exhaustive over them.
type Type uint8

// List of semantic column types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeEnum
	TypeJSON
	TypeUUID
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeBool:    "bool",
	TypeTime:    "time",
	TypeEnum:    "enum",
	TypeJSON:    "json",
	TypeUUID:    "uuid",
}

// String returns the textual representation of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a recognized semantic type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// TypeInfo holds the semantic type of a column together with the
// type-level constraints that value generation depends on.
type TypeInfo struct {
	// Type is the semantic type tag.
	Type Type
	// Size is the declared maximum length for string columns.
	// Zero means no declared length.
	Size int64
	// Enums holds the allowed values for enum columns, in declaration order.
	Enums []string
}

// String returns the textual representation of the type info.
func (t TypeInfo) String() string {
	switch {
	case t.Type == TypeString && t.Size > 0:
		return fmt.Sprintf("string(%d)", t.Size)
	case t.Type == TypeEnum && len(t.Enums) > 0:
		return fmt.Sprintf("enum(%s)", strings.Join(t.Enums, ","))
	default:
		return t.Type.String()
	}
}

// Valid reports if the type info describes a generatable column type.
// Enum columns must declare at least one allowed value.
func (t TypeInfo) Valid() bool {
	if !t.Type.Valid() {
		return false
	}
	if t.Type == TypeEnum && len(t.Enums) == 0 {
		return false
	}
	return true
}
