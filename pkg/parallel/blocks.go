package parallel

import "runtime"

// Block is a half-open index range [Start, End)
type Block struct {
	Start int
	End   int
}

// Len returns the number of indices in the block
func (b Block) Len() int {
	return b.End - b.Start
}

// Split divides [0, n) into at most parts contiguous blocks of near-equal size.
// The split depends only on n and parts, so per-block results can be reduced in
// block order to get scheduling-independent output.
func Split(n, parts int) []Block {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	blocks := make([]Block, 0, parts)
	size, rem := n/parts, n%parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < rem {
			end++
		}
		blocks = append(blocks, Block{Start: start, End: end})
		start = end
	}
	return blocks
}

// Chunks divides [0, n) into contiguous blocks of the given size; the last
// block may be shorter.
func Chunks(n, size int) []Block {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = 1
	}

	blocks := make([]Block, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		blocks = append(blocks, Block{Start: start, End: end})
	}
	return blocks
}

// ForEachBlock splits [0, n) into blocks and runs fn for every block on a
// pool of the given size. fn receives the block's position so it can write
// into a pre-sized result slot without locking.
func ForEachBlock(n, workers, blocksPerWorker int, fn func(pos int, b Block)) error {
	if blocksPerWorker <= 0 {
		blocksPerWorker = 1
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return ForEach(Split(n, workers*blocksPerWorker), workers, fn)
}

// ForEach runs fn for every block on a pool of the given size and waits for
// all of them.
func ForEach(blocks []Block, workers int, fn func(pos int, b Block)) error {
	pool, err := NewWorkerPool(workers)
	if err != nil {
		return err
	}

	for pos, b := range blocks {
		pos, b := pos, b
		pool.Submit(func() { fn(pos, b) })
	}
	return pool.Wait()
}
