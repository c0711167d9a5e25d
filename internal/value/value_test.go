package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_StringDropsTrailingZero(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{3.0, "3"},
		{-4, "-4"},
		{3.5, "3.5"},
		{0, "0"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number{Value: tt.in}.String())
	}
}

func TestBool_String(t *testing.T) {
	assert.Equal(t, "true", Bool{Value: true}.String())
	assert.Equal(t, "false", Bool{Value: false}.String())
}

func TestStr_StringHasNoQuotes(t *testing.T) {
	assert.Equal(t, "hi", Str{Value: "hi"}.String())
}

func TestNil_String(t *testing.T) {
	assert.Equal(t, "nil", Nil{}.String())
}

func TestFunction_String(t *testing.T) {
	named := &Function{Name: "add"}
	assert.Equal(t, "<fn add>", named.String())
	anon := &Function{Name: ""}
	assert.Equal(t, "<fn>", anon.String())
}

func TestFunction_Arity(t *testing.T) {
	fn := &Function{Params: []string{"a", "b"}}
	assert.Equal(t, 2, fn.Arity())
}

func TestNative_Arity(t *testing.T) {
	n := &Native{Name: "clock", Arg: 0}
	assert.Equal(t, 0, n.Arity())
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(Nil{}))
	assert.False(t, Truthy(Bool{Value: false}))
	assert.True(t, Truthy(Bool{Value: true}))
	assert.True(t, Truthy(Number{Value: 0}))
	assert.True(t, Truthy(Str{Value: ""}))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Nil{}, Nil{}))
	assert.False(t, Equal(Nil{}, Bool{Value: false}))
	assert.False(t, Equal(Bool{Value: false}, Nil{}))
	assert.True(t, Equal(Number{Value: 1}, Number{Value: 1}))
	assert.False(t, Equal(Number{Value: 1}, Number{Value: 2}))
	assert.True(t, Equal(Str{Value: "a"}, Str{Value: "a"}))
	assert.False(t, Equal(Str{Value: "a"}, Number{Value: 1}))
	assert.True(t, Equal(Bool{Value: true}, Bool{Value: true}))
}
