package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondAnd(t *testing.T) {
	a := Expr("x=1")
	b := Expr("y=2")
	tests := []struct {
		name string
		got  Cond
		want string
	}{
		{"Both restricted", a.And(b), "(x=1) AND (y=2)"},
		{"Left unrestricted", Unrestricted().And(b), "y=2"},
		{"Right unrestricted", a.And(Unrestricted()), "x=1"},
		{"Both unrestricted", Unrestricted().And(Unrestricted()), ""},
		{"Left false", AlwaysFalse().And(b), AlwaysFalseCondition},
		{"Right false", a.And(AlwaysFalse()), AlwaysFalseCondition},
		{"False beats unrestricted", Unrestricted().And(AlwaysFalse()), AlwaysFalseCondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.SQL())
		})
	}
}

func TestCondOr(t *testing.T) {
	a := Expr("x=1")
	b := Expr("y=2")
	tests := []struct {
		name string
		got  Cond
		want string
	}{
		{"Both restricted", a.Or(b), "(x=1) OR (y=2)"},
		{"Left unrestricted", Unrestricted().Or(b), ""},
		{"Right unrestricted", a.Or(Unrestricted()), ""},
		{"Left false", AlwaysFalse().Or(b), "y=2"},
		{"Right false", a.Or(AlwaysFalse()), "x=1"},
		{"Both false", AlwaysFalse().Or(AlwaysFalse()), AlwaysFalseCondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.SQL())
		})
	}
}

func TestCondStates(t *testing.T) {
	assert.True(t, Unrestricted().IsUnrestricted())
	assert.False(t, Unrestricted().IsAlwaysFalse())
	assert.True(t, AlwaysFalse().IsAlwaysFalse())
	assert.False(t, Expr("x=1").IsUnrestricted())
	assert.False(t, Expr("x=1").IsAlwaysFalse())
	// empty expression collapses to unrestricted
	assert.True(t, Expr("").IsUnrestricted())
	assert.Equal(t, "a=3", Exprf("a=%v", 3).SQL())
}

func TestIsAlwaysFalseCondition(t *testing.T) {
	assert.True(t, IsAlwaysFalseCondition(AlwaysFalseCondition))
	assert.True(t, IsAlwaysFalseCondition("0"))
	assert.False(t, IsAlwaysFalseCondition(""))
	assert.False(t, IsAlwaysFalseCondition("x=0"))
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, "7", intLiteral(int32(7)))
	assert.Equal(t, "-1", intLiteral(int32(-1)))
	assert.Equal(t, "4294967295", intLiteral(uint32(4294967295)))
	assert.Equal(t, "1,2,3", intList([]uint32{1, 2, 3}))

	assert.Equal(t, "'abc'", stringLiteral("abc"))
	assert.Equal(t, "''", stringLiteral(""))
	// embedded quotes are doubled, never escaped
	assert.Equal(t, "'o''brien'", stringLiteral("o'brien"))
	assert.Equal(t, "''''''", stringLiteral("''"))
	assert.Equal(t, "'a','b'", stringList([]string{"a", "b"}))
}
