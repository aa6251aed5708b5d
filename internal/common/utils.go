package common

type BlockRange struct {
	From uint64
	To   uint64
}

// BlockRangeToChunks splits the inclusive range [from, to] into consecutive ranges of at most chunkSize blocks.
func BlockRangeToChunks(from, to uint64, chunkSize int) []BlockRange {
	if to < from {
		return nil
	}
	if chunkSize <= 0 || to-from < uint64(chunkSize) {
		return []BlockRange{{From: from, To: to}}
	}
	size := uint64(chunkSize)
	chunks := make([]BlockRange, 0, (to-from)/size+1)
	for start := from; start <= to; start += size {
		end := start + size - 1
		if end > to || end < start {
			end = to
		}
		chunks = append(chunks, BlockRange{From: start, To: end})
		if end == to {
			break
		}
	}
	return chunks
}
