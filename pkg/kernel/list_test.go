package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDListPushBackOrder(t *testing.T) {
	l := newDList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	require.Equal(t, 3, l.Len())

	var got []int
	l.Each(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDListPushFrontOrder(t *testing.T) {
	l := newDList[int]()
	l.PushBack(2)
	l.PushFront(1)
	l.PushBack(3)

	var got []int
	l.Each(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDListInsertBefore(t *testing.T) {
	l := newDList[string]()
	l.PushBack("a")
	at := l.PushBack("c")
	l.InsertBefore("b", at)

	var got []string
	l.Each(func(v string) { got = append(got, v) })
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDListRemove(t *testing.T) {
	l := newDList[int]()
	e1 := l.PushBack(1)
	e2 := l.PushBack(2)
	l.PushBack(3)

	l.Remove(e2)
	require.Equal(t, 2, l.Len())

	var got []int
	l.Each(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{1, 3}, got)

	l.Remove(e1)
	var got2 []int
	l.Each(func(v int) { got2 = append(got2, v) })
	assert.Equal(t, []int{3}, got2)
}

func TestDListRemoveNilIsNoOp(t *testing.T) {
	l := newDList[int]()
	l.PushBack(1)
	assert.NotPanics(t, func() { l.Remove(nil) })
	assert.Equal(t, 1, l.Len())
}

func TestDListRemoveTwiceIsNoOp(t *testing.T) {
	l := newDList[int]()
	e := l.PushBack(1)
	l.Remove(e)
	assert.NotPanics(t, func() { l.Remove(e) })
	assert.Equal(t, 0, l.Len())
}

func TestDListPopFront(t *testing.T) {
	l := newDList[int]()
	_, ok := l.PopFront()
	assert.False(t, ok, "empty list must report false")

	l.PushBack(10)
	l.PushBack(20)
	v, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, l.Len())
}

func TestDListFrontAndNext(t *testing.T) {
	l := newDList[int]()
	assert.Nil(t, l.Front())

	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	e := l.Front()
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Value)
	e = e.Next()
	require.NotNil(t, e)
	assert.Equal(t, 2, e.Value)
	e = e.Next()
	require.NotNil(t, e)
	assert.Equal(t, 3, e.Value)
	assert.Nil(t, e.Next(), "Next past the tail must return nil")
}

func TestDListEmpty(t *testing.T) {
	l := newDList[int]()
	assert.True(t, l.Empty())
	l.PushBack(1)
	assert.False(t, l.Empty())
}
