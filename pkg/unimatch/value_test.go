package unimatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"absent", Absent(), KindAbsent},
		{"string", StringValue("x"), KindString},
		{"int", IntValue(-7), KindInt},
		{"bool", BoolValue(true), KindBool},
		{"bytes", BytesValue([]byte{1, 2}), KindBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.kind == KindAbsent, tt.v.IsAbsent())
		})
	}
}

func TestValueZeroIsAbsent(t *testing.T) {
	var v Value
	assert.True(t, v.IsAbsent())
	assert.Equal(t, KindAbsent, v.Kind())
}

func TestAbsentDistinctFromEmpty(t *testing.T) {
	assert.True(t, Absent().IsAbsent())
	assert.False(t, StringValue("").IsAbsent())
	assert.False(t, BytesValue(nil).IsAbsent())
	assert.False(t, BytesValue([]byte{}).IsAbsent())

	s, ok := StringValue("").AsString()
	assert.True(t, ok)
	assert.Equal(t, "", s)

	_, ok = Absent().AsString()
	assert.False(t, ok)
}

func TestValueAccessorsWrongKind(t *testing.T) {
	v := StringValue("x")

	_, ok := v.AsInt()
	assert.False(t, ok)
	_, ok = v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsBytes()
	assert.False(t, ok)

	i, ok := IntValue(42).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	b, ok := BoolValue(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	p, ok := BytesValue([]byte("raw")).AsBytes()
	assert.True(t, ok)
	assert.Equal(t, []byte("raw"), p)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "absent", Absent().String())
	assert.Equal(t, `string("a")`, StringValue("a").String())
	assert.Equal(t, "int(-3)", IntValue(-3).String())
	assert.Equal(t, "bool(true)", BoolValue(true).String())
	assert.Equal(t, "bytes(2)", BytesValue([]byte{0, 1}).String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "absent", KindAbsent.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "bytes", KindBytes.String())
}
