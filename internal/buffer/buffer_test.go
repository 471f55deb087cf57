package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(b *Buffer) []string {
	out := make([]string, b.LineCount())
	for i := range out {
		out[i] = string(b.Line(i))
	}
	return out
}

func TestNewHasOneEmptyLine(t *testing.T) {
	b := New()
	require.Equal(t, 1, b.LineCount())
	assert.Equal(t, "", string(b.Line(0)))
	assert.Equal(t, "", b.Text())
}

func TestFromTextNormalisesTerminators(t *testing.T) {
	b := FromText("one\r\ntwo\rthree\n")
	assert.Equal(t, []string{"one", "two", "three", ""}, lines(b))
	assert.Equal(t, "one\ntwo\nthree\n", b.Text())

	assert.Equal(t, []string{""}, lines(FromText("")))
}

func TestFromLinesCopies(t *testing.T) {
	src := [][]rune{[]rune("abc")}
	b := FromLines(src)
	src[0][0] = 'x'
	assert.Equal(t, "abc", string(b.Line(0)))
	assert.Equal(t, 1, FromLines(nil).LineCount())
}

func TestSplitLineAt(t *testing.T) {
	b := FromText("hello world")
	require.NoError(t, b.SplitLineAt(0, 5))
	assert.Equal(t, []string{"hello", " world"}, lines(b))

	require.NoError(t, b.SplitLineAt(1, 6))
	assert.Equal(t, []string{"hello", " world", ""}, lines(b))

	require.NoError(t, b.SplitLineAt(0, 0))
	assert.Equal(t, []string{"", "hello", " world", ""}, lines(b))
}

func TestSplitLineAtDoesNotAlias(t *testing.T) {
	b := FromText("abcdef")
	require.NoError(t, b.SplitLineAt(0, 3))
	require.NoError(t, b.InsertAt(0, 3, []rune("XYZ")))
	assert.Equal(t, []string{"abcXYZ", "def"}, lines(b))
}

func TestSplitLineAtOutOfRange(t *testing.T) {
	b := FromText("abc")
	assert.ErrorIs(t, b.SplitLineAt(1, 0), ErrOutOfRange)
	assert.ErrorIs(t, b.SplitLineAt(0, 4), ErrOutOfRange)
	assert.Equal(t, []string{"abc"}, lines(b))
}

func TestJoinWithNext(t *testing.T) {
	b := FromText("foo\nbar\nbaz")
	require.NoError(t, b.JoinWithNext(0))
	assert.Equal(t, []string{"foobar", "baz"}, lines(b))

	err := b.JoinWithNext(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []string{"foobar", "baz"}, lines(b))
}

func TestInsertAt(t *testing.T) {
	b := FromText("hello world")
	require.NoError(t, b.InsertAt(0, 0, []rune("hello ")))
	assert.Equal(t, "hello hello world", string(b.Line(0)))

	require.NoError(t, b.InsertAt(0, b.Len(0), []rune("!")))
	assert.Equal(t, "hello hello world!", string(b.Line(0)))

	require.NoError(t, b.InsertAt(0, 3, nil))
	assert.ErrorIs(t, b.InsertAt(0, 100, []rune("x")), ErrOutOfRange)
}

func TestInsertLines(t *testing.T) {
	b := FromText("abcdef\nnext")
	row, col, err := b.InsertLines(0, 3, [][]rune{[]rune("1"), []rune("2"), []rune("3")})
	require.NoError(t, err)
	assert.Equal(t, "abc1\n2\n3def\nnext", b.Text())
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	row, col, err = b.InsertLines(3, 4, [][]rune{[]rune("!")})
	require.NoError(t, err)
	assert.Equal(t, "next!", string(b.Line(3)))
	assert.Equal(t, 3, row)
	assert.Equal(t, 5, col)
}

func TestInsertLinesOutOfRangeLeavesBuffer(t *testing.T) {
	b := FromText("ab")
	_, _, err := b.InsertLines(0, 5, [][]rune{[]rune("x"), []rune("y")})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = b.InsertLines(2, 0, [][]rune{[]rune("x"), []rune("y")})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "ab", b.Text())
	assert.Equal(t, 1, b.LineCount())
}

func TestRemoveRange(t *testing.T) {
	b := FromText("hello editor")
	require.NoError(t, b.RemoveRange(0, 6, 12))
	assert.Equal(t, "hello ", string(b.Line(0)))

	require.NoError(t, b.RemoveRange(0, 2, 2))
	assert.Equal(t, "hello ", string(b.Line(0)))

	assert.ErrorIs(t, b.RemoveRange(0, 4, 2), ErrOutOfRange)
	assert.ErrorIs(t, b.RemoveRange(0, 0, 7), ErrOutOfRange)
	assert.Equal(t, "hello ", string(b.Line(0)))
}

func TestRemoveLine(t *testing.T) {
	b := FromText("a\nb\nc")
	require.NoError(t, b.RemoveLine(1))
	assert.Equal(t, []string{"a", "c"}, lines(b))
	require.NoError(t, b.RemoveLine(1))
	require.NoError(t, b.RemoveLine(0))
	assert.Equal(t, []string{""}, lines(b))
	assert.Equal(t, 1, b.LineCount())
}

func TestRemoveOnlyLineClears(t *testing.T) {
	b := FromText("only")
	require.NoError(t, b.RemoveLine(0))
	assert.Equal(t, []string{""}, lines(b))
}

func TestSwapLines(t *testing.T) {
	b := FromText("one\ntwo")
	require.NoError(t, b.SwapLines(0, 1))
	assert.Equal(t, []string{"two", "one"}, lines(b))
	assert.ErrorIs(t, b.SwapLines(1, 2), ErrOutOfRange)
}

func TestReplace(t *testing.T) {
	b := FromText("old")
	b.Replace(FromText("new\ntext"))
	assert.Equal(t, []string{"new", "text"}, lines(b))
	b.Replace(nil)
	assert.Equal(t, []string{""}, lines(b))
}

func TestLineOutOfRange(t *testing.T) {
	b := FromText("x")
	assert.Nil(t, b.Line(-1))
	assert.Nil(t, b.Line(1))
	assert.Equal(t, 0, b.Len(5))
}
