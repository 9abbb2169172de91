package types

import "fmt"

// Basic enumerates the primitive types the language knows natively.
type Basic uint8

const (
	// BasicNone marks a user type referenced by name only.
	BasicNone Basic = iota
	BasicI32
	BasicVoid
)

func (b Basic) String() string {
	switch b {
	case BasicNone:
		return "none"
	case BasicI32:
		return "i32"
	case BasicVoid:
		return "void"
	default:
		return fmt.Sprintf("Basic(%d)", b)
	}
}

// Type is a declared type: a name plus an optional basic classification.
type Type struct {
	Name  string
	Basic Basic
}

// I32 returns the 32-bit signed integer type.
func I32() Type { return Type{Name: "i32", Basic: BasicI32} }

// Void returns the implicit type of functions without a declared return type.
func Void() Type { return Type{Name: "void", Basic: BasicVoid} }

// Named returns a user type known only by name.
func Named(name string) Type { return Type{Name: name} }

func (t Type) IsVoid() bool { return t.Basic == BasicVoid }

func (t Type) IsI32() bool { return t.Basic == BasicI32 }

// Equal compares basic types by classification and user types by name.
func (t Type) Equal(other Type) bool {
	if t.Basic != other.Basic {
		return false
	}
	if t.Basic == BasicNone {
		return t.Name == other.Name
	}
	return true
}

func (t Type) String() string {
	if t.Name == "" {
		return t.Basic.String()
	}
	return t.Name
}

// Signature describes a function for call checking.
type Signature struct {
	Params []Type
	Result Type
}

func (s Signature) String() string {
	out := "fn("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + ") -> " + s.Result.String()
}
