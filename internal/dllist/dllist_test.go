package dllist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values(l *List[int]) []int {
	var out []int
	l.ForEach(func(n *Node[int]) bool {
		out = append(out, n.Value)
		return true
	})
	return out
}

func TestPushFrontOrder(t *testing.T) {
	var l List[int]
	l.PushFront(&Node[int]{Value: 1})
	l.PushFront(&Node[int]{Value: 2})
	l.PushFront(&Node[int]{Value: 3})

	require.Equal(t, []int{3, 2, 1}, values(&l))
	require.Equal(t, 3, l.Len())
	require.Equal(t, 3, l.Front().Value)
	require.Equal(t, 1, l.Back().Value)
}

func TestPushBackOrder(t *testing.T) {
	var l List[int]
	l.PushBack(&Node[int]{Value: 1})
	l.PushBack(&Node[int]{Value: 2})
	l.PushBack(&Node[int]{Value: 3})

	require.Equal(t, []int{1, 2, 3}, values(&l))
}

func TestRemoveMiddle(t *testing.T) {
	var l List[int]
	a := &Node[int]{Value: 1}
	b := &Node[int]{Value: 2}
	c := &Node[int]{Value: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)
	require.Equal(t, []int{1, 3}, values(&l))
	require.Equal(t, 2, l.Len())
	require.Equal(t, c, l.Back())
}

func TestPopFrontBack(t *testing.T) {
	var l List[int]
	l.PushBack(&Node[int]{Value: 1})
	l.PushBack(&Node[int]{Value: 2})
	l.PushBack(&Node[int]{Value: 3})

	require.Equal(t, 1, l.PopFront().Value)
	require.Equal(t, 3, l.PopBack().Value)
	require.Equal(t, 1, l.Len())
	require.Equal(t, 2, l.Front().Value)
}

func TestPopEmpty(t *testing.T) {
	var l List[int]
	require.Nil(t, l.PopFront())
	require.Nil(t, l.PopBack())
}

func TestForEachStopsAtPredicate(t *testing.T) {
	var l List[int]
	l.PushBack(&Node[int]{Value: 1})
	l.PushBack(&Node[int]{Value: 2})
	l.PushBack(&Node[int]{Value: 3})

	stopped := l.ForEach(func(n *Node[int]) bool {
		return n.Value != 2
	})
	require.NotNil(t, stopped)
	require.Equal(t, 2, stopped.Value)
}

func TestForEachReverse(t *testing.T) {
	var l List[int]
	l.PushBack(&Node[int]{Value: 1})
	l.PushBack(&Node[int]{Value: 2})
	l.PushBack(&Node[int]{Value: 3})

	var out []int
	l.ForEachReverse(func(n *Node[int]) bool {
		out = append(out, n.Value)
		return true
	})
	require.Equal(t, []int{3, 2, 1}, out)
}

func TestRemoveWrongListIsNoop(t *testing.T) {
	var l1, l2 List[int]
	n := &Node[int]{Value: 1}
	l1.PushBack(n)
	l2.Remove(n) // no-op: n belongs to l1, not l2
	require.Equal(t, 1, l1.Len())
	require.Equal(t, 0, l2.Len())
}
