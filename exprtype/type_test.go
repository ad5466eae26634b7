package exprtype

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	intT    = Of[int](false)
	intN    = Of[int](true)
	strT    = Of[string](false)
	strN    = Of[string](true)
	nullT   = Null()
	unknown = Type{}
)

// --- Create ---

func TestCreateNullableWrapperDominatesFlag(t *testing.T) {
	t.Parallel()
	explicit := Create(reflect.TypeFor[int](), true)
	wrapped := Create(reflect.TypeFor[*int](), false)

	assert.True(t, explicit.Equal(wrapped))
	assert.Equal(t, explicit, wrapped)
	assert.Equal(t, reflect.TypeFor[int](), wrapped.Base())
	assert.True(t, wrapped.IsNullable())
}

func TestCreateUnwrapsDriverWrappers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		wrapper reflect.Type
		base    reflect.Type
	}{
		{"sql.NullString", reflect.TypeFor[sql.NullString](), reflect.TypeFor[string]()},
		{"sql.NullInt64", reflect.TypeFor[sql.NullInt64](), reflect.TypeFor[int64]()},
		{"sql.Null[int16]", reflect.TypeFor[sql.Null[int16]](), reflect.TypeFor[int16]()},
		{"mysql.NullTime", reflect.TypeFor[mysql.NullTime](), reflect.TypeFor[time.Time]()},
		{"pgtype.Int8", reflect.TypeFor[pgtype.Int8](), reflect.TypeFor[int64]()},
		{"pgtype.Text", reflect.TypeFor[pgtype.Text](), reflect.TypeFor[string]()},
		{"pgtype.Timestamptz", reflect.TypeFor[pgtype.Timestamptz](), reflect.TypeFor[time.Time]()},
		{"pgtype.UUID", reflect.TypeFor[pgtype.UUID](), reflect.TypeFor[uuid.UUID]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Create(tc.wrapper, false)
			assert.Equal(t, tc.base, got.Base())
			assert.True(t, got.IsNullable())
			assert.True(t, IsNullableWrapper(tc.wrapper))
		})
	}
}

func TestCreateNullMarkerIsNeverNullable(t *testing.T) {
	t.Parallel()
	assert.False(t, Create(reflect.TypeFor[DBNull](), true).IsNullable())
	assert.False(t, Create(reflect.TypeFor[*DBNull](), false).IsNullable())
	assert.False(t, Null().MakeNullable().IsNullable())
	assert.True(t, Null().IsNull())
}

func TestCreateReferenceTypesKeepFlag(t *testing.T) {
	t.Parallel()
	bytes := Create(reflect.TypeFor[[]byte](), true)
	assert.Equal(t, reflect.TypeFor[[]byte](), bytes.Base())
	assert.True(t, bytes.IsNullable())
	assert.Equal(t, reflect.TypeFor[[]byte](), bytes.FullType())
	assert.False(t, IsNullableWrapper(reflect.TypeFor[[]byte]()))
}

func TestCreateNilIsUnknown(t *testing.T) {
	t.Parallel()
	assert.False(t, Create(nil, true).IsKnown())
	assert.Equal(t, "unknown", Create(nil, false).String())
}

// --- FullType / flag flips ---

func TestFullType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, reflect.TypeFor[int](), intT.FullType())
	assert.Equal(t, reflect.TypeFor[*int](), intN.FullType())
	assert.Nil(t, unknown.FullType())
}

func TestMakeNullableAndRequiredAreIdempotent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, intN, intT.MakeNullable())
	assert.Equal(t, intN, intN.MakeNullable())
	assert.Equal(t, intT, intN.MakeRequired())
	assert.Equal(t, intT, intT.MakeRequired())
	assert.Equal(t, unknown, unknown.MakeNullable())
}

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "int", intT.String())
	assert.Equal(t, "int?", intN.String())
	assert.Equal(t, "null", nullT.String())
}

// --- GetCommonType / HaveCommonType ---

func TestCommonTypeEqualBases(t *testing.T) {
	t.Parallel()
	pairs := [][2]Type{{intT, intT}, {intT, intN}, {intN, intT}, {intN, intN}, {strT, strN}}
	for _, p := range pairs {
		got, err := GetCommonType(p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, p[0].Base(), got.Base())
		assert.Equal(t, p[0].IsNullable() || p[1].IsNullable(), got.IsNullable(), "%s + %s", p[0], p[1])
		assert.True(t, HaveCommonType(p[0], p[1]))
	}
}

func TestCommonTypeWithNullMarker(t *testing.T) {
	t.Parallel()
	for _, other := range []Type{intT, intN, strT} {
		for _, pair := range [][2]Type{{nullT, other}, {other, nullT}} {
			got, err := GetCommonType(pair[0], pair[1])
			require.NoError(t, err)
			assert.Equal(t, other.Base(), got.Base())
			assert.True(t, got.IsNullable())
			assert.True(t, HaveCommonType(pair[0], pair[1]))
		}
	}

	got, err := GetCommonType(nullT, nullT)
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}

func TestCommonTypeAbsentOperands(t *testing.T) {
	t.Parallel()
	for _, pair := range [][2]Type{{unknown, intT}, {strN, unknown}, {unknown, unknown}} {
		got, err := GetCommonType(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, got.IsKnown())
		assert.True(t, HaveCommonType(pair[0], pair[1]))
	}
}

func TestCommonTypeIncompatible(t *testing.T) {
	t.Parallel()
	assert.False(t, HaveCommonType(intT, strN))

	_, err := GetCommonType(intT, strN)
	require.Error(t, err)
	var ite *IncompatibleTypesError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, intT, ite.Left)
	assert.Equal(t, strN, ite.Right)
	assert.Contains(t, err.Error(), "int and string?")
}

func TestUnify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, intN, Unify(intT, nullT, intT))
	assert.Equal(t, unknown, Unify(intT, strT))
	assert.Equal(t, unknown, Unify())
	assert.Equal(t, strT, Unify(strT))
}

type money struct{ cents int64 }

type nullMoney struct {
	m     money
	valid bool
}

func TestRegisterNullable(t *testing.T) {
	RegisterNullable(reflect.TypeFor[nullMoney](), reflect.TypeFor[money]())
	got := Create(reflect.TypeFor[nullMoney](), false)
	assert.Equal(t, Of[money](true), got)
}
