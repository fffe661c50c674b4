package render

import (
	"runtime"
	"sync"
)

// rowBands splits rows [0, rows) into one contiguous band per CPU, calls fn
// for every band concurrently and waits for all of them.
func rowBands(rows int, fn func(y0, y1 int)) {
	bands := min(runtime.GOMAXPROCS(0), rows)
	if bands <= 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(bands)
	for b := 0; b < bands; b++ {
		y0, y1 := b*rows/bands, (b+1)*rows/bands
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
