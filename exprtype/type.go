// Package exprtype implements the nullability-aware expression types carried
// by typed nodes, together with the rules used to unify the types of two
// operands into a single result type.
package exprtype

import (
	"fmt"
	"reflect"
)

// DBNull is the base type of the SQL NULL literal. A Type whose base is
// DBNull is never nullable.
type DBNull struct{}

var dbNullType = reflect.TypeFor[DBNull]()

// Type pairs a base semantic type with a nullability flag.
// The zero Type is the absent ("unknown") type.
type Type struct {
	base     reflect.Type
	nullable bool
}

// Create builds a Type from a Go type and a requested nullability.
//
// Nullable wrappers (pointers to value types, sql.Null*, pgtype scalars and
// anything registered with RegisterNullable) are unwrapped to their base and
// always yield a nullable Type, regardless of the nullable argument.
// DBNull always yields a non-nullable Type. A nil t yields the absent Type.
func Create(t reflect.Type, nullable bool) Type {
	if t == nil {
		return Type{}
	}
	if base, ok := unwrapNullable(t); ok {
		if base == dbNullType {
			return Type{base: base}
		}
		return Type{base: base, nullable: true}
	}
	if t == dbNullType {
		return Type{base: t}
	}
	return Type{base: t, nullable: nullable}
}

// Of is shorthand for Create(reflect.TypeFor[T](), nullable).
func Of[T any](nullable bool) Type {
	return Create(reflect.TypeFor[T](), nullable)
}

// Null returns the type of the SQL NULL literal.
func Null() Type {
	return Type{base: dbNullType}
}

// Base returns the base type, or nil for the absent Type.
func (t Type) Base() reflect.Type { return t.base }

// IsNullable reports whether the type admits NULL.
func (t Type) IsNullable() bool { return t.nullable }

// IsKnown reports whether t is a present type.
func (t Type) IsKnown() bool { return t.base != nil }

// IsNull reports whether t is the NULL literal type.
func (t Type) IsNull() bool { return t.base == dbNullType }

// FullType returns the Go type able to hold every value of t: the base type,
// or a pointer to it when the base is a value type and t is nullable.
func (t Type) FullType() reflect.Type {
	if t.base == nil {
		return nil
	}
	if t.nullable && isValueType(t.base) {
		return reflect.PointerTo(t.base)
	}
	return t.base
}

// MakeNullable returns t with nullability set. It is a no-op for the absent
// type, the NULL type, and types that are already nullable.
func (t Type) MakeNullable() Type {
	if t.base == nil || t.nullable || t.base == dbNullType {
		return t
	}
	return Type{base: t.base, nullable: true}
}

// MakeRequired returns t with nullability cleared.
func (t Type) MakeRequired() Type {
	if !t.nullable {
		return t
	}
	return Type{base: t.base}
}

// Equal reports whether both base type and nullability match.
func (t Type) Equal(o Type) bool {
	return t.base == o.base && t.nullable == o.nullable
}

func (t Type) String() string {
	switch {
	case t.base == nil:
		return "unknown"
	case t.base == dbNullType:
		return "null"
	case t.nullable:
		return t.base.String() + "?"
	default:
		return t.base.String()
	}
}

// IncompatibleTypesError is returned by GetCommonType when two present,
// non-NULL types have different base types.
type IncompatibleTypesError struct {
	Left  Type
	Right Type
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("exprtype: incompatible operand types %s and %s", e.Left, e.Right)
}

// GetCommonType returns the type two operands unify to.
//
// An absent operand makes the result absent. Equal base types unify to the
// nullable variant when either side is nullable. A NULL operand unifies to the
// other side made nullable. Any other combination fails with
// *IncompatibleTypesError.
func GetCommonType(a, b Type) (Type, error) {
	if !a.IsKnown() || !b.IsKnown() {
		return Type{}, nil
	}
	if a.Equal(b) {
		return a, nil
	}
	if a.base == b.base {
		return a.MakeNullable(), nil
	}
	if a.IsNull() {
		return Type{base: b.base, nullable: true}, nil
	}
	if b.IsNull() {
		return Type{base: a.base, nullable: true}, nil
	}
	return Type{}, &IncompatibleTypesError{Left: a, Right: b}
}

// HaveCommonType reports whether GetCommonType(a, b) would succeed.
func HaveCommonType(a, b Type) bool {
	if !a.IsKnown() || !b.IsKnown() {
		return true
	}
	return a.base == b.base || a.IsNull() || b.IsNull()
}

// Unify folds GetCommonType over ts, returning the absent type as soon as two
// members are incompatible. It is the lenient form used by node constructors.
func Unify(ts ...Type) Type {
	if len(ts) == 0 {
		return Type{}
	}
	out := ts[0]
	for _, t := range ts[1:] {
		if !HaveCommonType(out, t) {
			return Type{}
		}
		out, _ = GetCommonType(out, t)
	}
	return out
}

func isValueType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}
