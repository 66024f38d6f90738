package parallel

import "sync"

// rawParMap spawns one goroutine per chunk directly (no pool), capping
// the number of chunks at NumThreads*6 so that chunk count never
// explodes for huge slices; the last chunk always runs on the calling
// goroutine instead of being spawned.
func rawParMap[T any](threads int, data []T, chunks int, fn func(index int, item *T)) {
	if len(data) == 0 {
		return
	}
	maxChunks := threads * 6
	chunkCount := max1(chunks)
	if chunkCount > maxChunks {
		chunkCount = maxChunks
	}
	chunkSize := ceilDiv(len(data), chunkCount)

	if chunkCount == 1 {
		sequentialParMap(data, fn)
		return
	}

	var wg sync.WaitGroup
	slice := data
	for chunkID := 0; chunkID < chunkCount; chunkID++ {
		sliceLen := len(slice)
		take := chunkSize
		if take > sliceLen {
			take = sliceLen
		}
		left, right := slice[:take], slice[take:]
		slice = right

		start := chunkID * chunkSize
		if chunkID == chunkCount-1 {
			for i, item := range left {
				fn(start+i, &left[i])
				_ = item
			}
		} else {
			wg.Add(1)
			go func(start int, left []T) {
				defer wg.Done()
				for i := range left {
					fn(start+i, &left[i])
				}
			}(start, left)
		}
	}
	wg.Wait()
}

func rawParChunksMut[T any](data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	if len(data) == 0 {
		return
	}
	chunkSize = max1(chunkSize)
	chunkCount := ceilDiv(len(data), chunkSize)
	if chunkCount == 1 {
		fn(0, data)
		return
	}

	var wg sync.WaitGroup
	slice := data
	for chunkID := 0; chunkID < chunkCount; chunkID++ {
		sliceLen := len(slice)
		take := chunkSize
		if take > sliceLen {
			take = sliceLen
		}
		left, right := slice[:take], slice[take:]
		slice = right

		if chunkID == chunkCount-1 {
			fn(chunkID, left)
		} else {
			wg.Add(1)
			go func(chunkID int, left []T) {
				defer wg.Done()
				fn(chunkID, left)
			}(chunkID, left)
		}
	}
	wg.Wait()
}

func rawParChunks[T any](data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	rawParChunksMut(data, chunkSize, fn)
}
