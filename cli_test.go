package cval

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseCLIScenarios exercises spec §8 scenario 9 directly.
func TestParseCLIScenarios(t *testing.T) {
	t.Parallel()

	const in = " 1,2 , 3  ,"

	got, err := ParseCLI(in, TargetShape{List: true})
	require.NoError(t, err)
	require.True(t, got.Equal(NewList(NewInteger(1), NewInteger(2), NewInteger(3))))

	got, err = ParseCLI(in, TargetShape{List: true, ElemString: true})
	require.NoError(t, err)
	require.True(t, got.Equal(NewList(NewString("1"), NewString("2"), NewString("3"))))

	_, err = ParseCLI("123]", TargetShape{List: true})
	require.Error(t, err, "unmatched bracket must fail")
}

func TestParseCLINestedList(t *testing.T) {
	t.Parallel()

	got, err := ParseCLI("[1,2],[3]", TargetShape{List: true, NestedList: true})
	require.NoError(t, err)
	want := NewList(NewList(NewInteger(1), NewInteger(2)), NewList(NewInteger(3)))
	require.True(t, got.Equal(want))

	got, err = ParseCLI("1,2,3", TargetShape{List: true, NestedList: true})
	require.NoError(t, err)
	require.True(t, got.Equal(NewList(NewList(NewInteger(1), NewInteger(2), NewInteger(3)))))
}

func TestParseCLIStringQuotingPreserved(t *testing.T) {
	t.Parallel()

	got, err := ParseCLI(`"  a  ",b`, TargetShape{List: true, ElemString: true})
	require.NoError(t, err)
	want := NewList(NewString("  a  "), NewString("b"))
	require.True(t, got.Equal(want), "quoted elements keep whitespace literally; got %s", got.String())
}

func TestParseCLIStringListRejectsMismatchedBracket(t *testing.T) {
	t.Parallel()

	_, err := ParseCLI("123]", TargetShape{List: true, ElemString: true})
	require.Error(t, err, "dangling ']' must not be swallowed as a literal string element")

	_, err = ParseCLI("1,2[,3", TargetShape{List: true, ElemString: true})
	require.Error(t, err, "stray '[' inside an unquoted element must not be swallowed as a literal string element")
}

func TestParseCLIScalarPassesThrough(t *testing.T) {
	t.Parallel()

	got, err := ParseCLI("42", TargetShape{})
	require.NoError(t, err)
	require.True(t, got.Equal(NewInteger(42)))
}

func TestShapeOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, TargetShape{List: true, ElemString: true}, ShapeOf(reflect.TypeOf([]string{})))
	require.Equal(t, TargetShape{List: true}, ShapeOf(reflect.TypeOf([]int{})))
	require.Equal(t, TargetShape{List: true, NestedList: true, ElemString: true}, ShapeOf(reflect.TypeOf([][]string{})))
}
