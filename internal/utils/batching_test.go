package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, Chunk(items, 3))
	assert.Equal(t, [][]int{items}, Chunk(items, 10))
	assert.Nil(t, Chunk(items, 0))
	assert.Nil(t, Chunk([]int{}, 3))
}

func TestChunkDoesNotOverwriteNeighbours(t *testing.T) {
	chunks := Chunk([]string{"a", "b", "c"}, 2)
	chunks[0] = append(chunks[0], "z")
	assert.Equal(t, []string{"c"}, chunks[1])
}
