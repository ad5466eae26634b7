package exprtype

import (
	"database/sql"
	"reflect"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// nullableWrappers maps a wrapper type to the base type it carries.
var nullableWrappers = map[reflect.Type]reflect.Type{
	reflect.TypeFor[sql.NullString]():  reflect.TypeFor[string](),
	reflect.TypeFor[sql.NullInt64]():   reflect.TypeFor[int64](),
	reflect.TypeFor[sql.NullInt32]():   reflect.TypeFor[int32](),
	reflect.TypeFor[sql.NullInt16]():   reflect.TypeFor[int16](),
	reflect.TypeFor[sql.NullByte]():    reflect.TypeFor[byte](),
	reflect.TypeFor[sql.NullFloat64](): reflect.TypeFor[float64](),
	reflect.TypeFor[sql.NullBool]():    reflect.TypeFor[bool](),
	reflect.TypeFor[sql.NullTime]():    reflect.TypeFor[time.Time](),

	reflect.TypeFor[mysql.NullTime](): reflect.TypeFor[time.Time](),

	reflect.TypeFor[pgtype.Int2]():        reflect.TypeFor[int16](),
	reflect.TypeFor[pgtype.Int4]():        reflect.TypeFor[int32](),
	reflect.TypeFor[pgtype.Int8]():        reflect.TypeFor[int64](),
	reflect.TypeFor[pgtype.Float4]():      reflect.TypeFor[float32](),
	reflect.TypeFor[pgtype.Float8]():      reflect.TypeFor[float64](),
	reflect.TypeFor[pgtype.Text]():        reflect.TypeFor[string](),
	reflect.TypeFor[pgtype.Bool]():        reflect.TypeFor[bool](),
	reflect.TypeFor[pgtype.Date]():        reflect.TypeFor[time.Time](),
	reflect.TypeFor[pgtype.Timestamp]():   reflect.TypeFor[time.Time](),
	reflect.TypeFor[pgtype.Timestamptz](): reflect.TypeFor[time.Time](),
	reflect.TypeFor[pgtype.UUID]():        reflect.TypeFor[uuid.UUID](),
}

// RegisterNullable declares wrapper as a nullable form of base, so that
// Create unwraps it. It must only be called during program initialization.
func RegisterNullable(wrapper, base reflect.Type) {
	nullableWrappers[wrapper] = base
}

// IsNullableWrapper reports whether t is unwrapped by Create.
func IsNullableWrapper(t reflect.Type) bool {
	_, ok := unwrapNullable(t)
	return ok
}

func unwrapNullable(t reflect.Type) (reflect.Type, bool) {
	if base, ok := nullableWrappers[t]; ok {
		return base, true
	}
	if t.Kind() == reflect.Pointer && isValueType(t.Elem()) {
		return t.Elem(), true
	}
	// sql.Null[T] is generic and cannot be listed up front.
	if t.Kind() == reflect.Struct && t.PkgPath() == "database/sql" &&
		strings.HasPrefix(t.Name(), "Null[") && t.NumField() == 2 {
		return t.Field(0).Type, true
	}
	return nil, false
}
