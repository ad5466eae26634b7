package visitors

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bawdo/sqltree/exprtype"
	"github.com/bawdo/sqltree/internal/quoting"
)

// Dialect selects the SQL type names used by CAST and column definitions.
type Dialect int

const (
	DialectANSI Dialect = iota
	DialectPostgres
	DialectSQLite
)

var dialectNames = [...]string{
	DialectANSI:     "ansi",
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite",
}

func (d Dialect) String() string { return dialectNames[d] }

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	bytesTyp = reflect.TypeOf([]byte(nil))
)

// SQLTypeName returns the SQL spelling of t's base type in dialect d.
// It reports false for unknown types and Go types with no SQL counterpart.
func SQLTypeName(t exprtype.Type, d Dialect) (string, bool) {
	base := t.Base()
	if base == nil || t.IsNull() {
		return "", false
	}
	switch base {
	case timeType:
		if d == DialectPostgres {
			return "TIMESTAMPTZ", true
		}
		return "TIMESTAMP", true
	case uuidType:
		if d == DialectSQLite {
			return "TEXT", true
		}
		return "UUID", true
	case bytesTyp:
		if d == DialectPostgres {
			return "BYTEA", true
		}
		return "BLOB", true
	}
	switch base.Kind() {
	case reflect.Bool:
		return "BOOLEAN", true
	case reflect.Int8, reflect.Int16, reflect.Uint8:
		return "SMALLINT", true
	case reflect.Int32, reflect.Uint16:
		return "INTEGER", true
	case reflect.Int, reflect.Int64, reflect.Uint32, reflect.Uint, reflect.Uint64:
		return "BIGINT", true
	case reflect.Float32:
		return "REAL", true
	case reflect.Float64:
		if d == DialectSQLite {
			return "REAL", true
		}
		return "DOUBLE PRECISION", true
	case reflect.String:
		return "TEXT", true
	}
	return "", false
}

// literal returns the SQL spelling of a Go value. Values implementing
// driver.Valuer (sql.Null*, pgtype, uuid) are rendered through Value; nil
// and nil pointers become NULL.
func (r *Renderer) literal(val any) string {
	if val == nil {
		return "NULL"
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "NULL"
	}
	switch v := val.(type) {
	case string:
		return "'" + quoting.EscapeString(v) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05.999999999Z07:00") + "'"
	case []byte:
		if r.dialect == DialectPostgres {
			return `'\x` + hex.EncodeToString(v) + "'"
		}
		return "X'" + hex.EncodeToString(v) + "'"
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			panic(fmt.Sprintf("sqltree: cannot render literal %T: %v", val, err))
		}
		return r.literal(dv)
	}

	if rv.Kind() == reflect.Pointer {
		return r.literal(rv.Elem().Interface())
	}
	panic(fmt.Sprintf("sqltree: unsupported literal type %T", val))
}
