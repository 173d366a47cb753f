package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "invalid(99)", Kind(99).String())
}

func TestValueAccessors(t *testing.T) {
	i, ok := Int(42).AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	f, ok := Float(1.5).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	s, ok := String("high").AsString()
	assert.True(t, ok)
	assert.Equal(t, "high", s)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.True(t, Null().IsNull())
	assert.True(t, Value{}.IsNull())
	assert.False(t, Int(0).IsNull())

	// Kind-mismatched access returns the zero value and false.
	_, ok = Int(42).AsString()
	assert.False(t, ok)
	_, ok = String("x").AsInt64()
	assert.False(t, ok)

	assert.Equal(t, "high", String("high").StringValue())
	assert.Equal(t, "", Int(1).StringValue())
}

func TestValueComparable(t *testing.T) {
	assert.Equal(t, String("a"), String("a"))
	assert.NotEqual(t, String("a"), String("b"))
	assert.NotEqual(t, Int(1), Float(1))
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"Null", Null(), "null"},
		{"Int", Int(-7), "-7"},
		{"Float", Float(2.5), "2.5"},
		{"FloatIntegral", Float(2), "2.0"},
		{"String", String("hello"), `"hello"`},
		{"StringEscaped", String("a\"b\nc"), `"a\"b\nc"`},
		{"Bool", Bool(true), "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Value
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.v, back)
		})
	}
}

func TestValueJSONRejectsComposites(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "null", Null().Text())
	assert.Equal(t, "42", Int(42).Text())
	assert.Equal(t, "1.5", Float(1.5).Text())
	assert.Equal(t, "high", String("high").Text())
	assert.Equal(t, "false", Bool(false).Text())
}

func TestDocumentJSON(t *testing.T) {
	d := Document{
		"severity":  String("high"),
		"score":     Float(9.8),
		"published": String("2024-01-02"),
		"exploited": Bool(false),
		"refs":      Int(3),
		"notes":     Null(),
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDocumentClone(t *testing.T) {
	assert.Nil(t, Document(nil).Clone())

	d := Document{"source": String("nvd")}
	clone := d.Clone()
	clone["source"] = String("osv")
	assert.Equal(t, String("nvd"), d["source"])
}
