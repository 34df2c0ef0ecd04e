package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityQueueOrder(t *testing.T) {
	heap := NewPriorityQueue[string, float64](4)
	heap.Enqueue("c", 3)
	heap.Enqueue("a", 1)
	heap.Enqueue("b1", 2)
	heap.Enqueue("b2", 2)
	heap.Enqueue("b3", 2)

	order := NewList[string](5)
	for {
		item, ok := heap.Dequeue()
		if !ok {
			break
		}
		order.Add(item)
	}
	assert.Equal(t, List[string]{"a", "b1", "b2", "b3", "c"}, order)
	assert.Equal(t, 0, heap.Length())
}

func TestOptional(t *testing.T) {
	some := Some(5)
	none := None[int]()
	assert.True(t, some.HasValue())
	assert.Equal(t, 5, some.Value)
	assert.False(t, none.HasValue())
}

func TestDictSortedKeys(t *testing.T) {
	dict := NewDict[string, int](3)
	dict.Set("b", 2)
	dict.Set("c", 3)
	dict.Set("a", 1)
	assert.True(t, dict.ContainsKey("a"))
	assert.Equal(t, List[string]{"a", "b", "c"}, SortedKeys(dict))
	dict.Delete("a")
	assert.False(t, dict.ContainsKey("a"))
	assert.Equal(t, 2, dict.Length())
}
