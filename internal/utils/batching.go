package utils

// DYNAMO_BATCH_SIZE is the most items a single BatchWriteItem call accepts.
const DYNAMO_BATCH_SIZE = 25

// Chunk splits items into consecutive slices of at most size elements. The
// chunks share the backing array of items.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end:end])
	}
	return chunks
}
