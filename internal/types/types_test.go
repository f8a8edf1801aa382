package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asthra-lang/asthrac/internal/types"
)

func TestEqualIsStructuralNotIdentity(t *testing.T) {
	a := types.Int(types.W32, true)
	b := types.Int(types.W32, true)
	assert.True(t, a.Equal(b))
	assert.NotSame(t, a, b)
}

func TestEqualDistinguishesSignedness(t *testing.T) {
	assert.False(t, types.Int(types.W32, true).Equal(types.Int(types.W32, false)))
}

func TestStringRendersPointerMutability(t *testing.T) {
	assert.Equal(t, "*mut i32", types.Pointer(types.Int(types.W32, true), true).String())
	assert.Equal(t, "*const i32", types.Pointer(types.Int(types.W32, true), false).String())
}

func TestStringRendersGenericInstantiation(t *testing.T) {
	vec := types.Struct(1, "Vec", []*types.Type{types.Int(types.W32, true)})
	assert.Equal(t, "Vec<i32>", vec.String())
}

func TestIsConcreteFalseUnderUnresolvedTypeVar(t *testing.T) {
	tv := types.TypeVar(0)
	assert.False(t, tv.IsConcrete())
	assert.True(t, types.Int(types.W32, true).IsConcrete())
	assert.False(t, types.Slice(tv).IsConcrete())
}

func TestUnifyBindsTypeVar(t *testing.T) {
	s := types.NewSubstitution()
	tv := types.TypeVar(0)
	i32 := types.Int(types.W32, true)
	ok := types.Unify(tv, i32, s)
	assert.True(t, ok)
	assert.True(t, s.Apply(tv).Equal(i32))
}

func TestUnifyFailsOnMismatchedKinds(t *testing.T) {
	s := types.NewSubstitution()
	ok := types.Unify(types.Bool(), types.Int(types.W32, true), s)
	assert.False(t, ok)
}

func TestUnifyOccursCheckRejectsInfiniteType(t *testing.T) {
	s := types.NewSubstitution()
	tv := types.TypeVar(0)
	self := types.Slice(tv)
	ok := types.Unify(tv, self, s)
	assert.False(t, ok)
}

func TestUnifyNeverUnifiesWithAnything(t *testing.T) {
	s := types.NewSubstitution()
	assert.True(t, types.Unify(types.Never(), types.Bool(), s))
	assert.True(t, types.Unify(types.ErrorType(), types.Struct(1, "Widget", nil), s))
}

func TestKeyForInstanceDistinguishesArgs(t *testing.T) {
	k1 := types.KeyForInstance(1, []*types.Type{types.Int(types.W32, true)})
	k2 := types.KeyForInstance(1, []*types.Type{types.Int(types.W64, true)})
	assert.NotEqual(t, k1, k2)

	k3 := types.KeyForInstance(1, []*types.Type{types.Int(types.W32, true)})
	assert.Equal(t, k1, k3)
}

func TestUntypedIntUnifiesWithAnyIntWidth(t *testing.T) {
	s := types.NewSubstitution()
	u := types.UntypedInt()
	assert.True(t, u.IsUntypedInt())
	assert.True(t, types.Unify(u, types.Int(types.W64, true), s))
	assert.True(t, types.Unify(types.Int(types.W8, false), u, s))
	assert.False(t, types.Int(types.W32, true).IsUntypedInt())
}
