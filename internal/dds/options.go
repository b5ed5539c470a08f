package dds

import "golang.org/x/sync/errgroup"

// Options tunes a single decode. A nil *Options decodes leniently on the
// calling goroutine.
type Options struct {
	// Strict fails compressed surfaces whose source is shorter than the tile
	// scan needs, instead of decoding the missing blocks as zeros.
	Strict bool
	// Workers is the number of rows decoded concurrently. Values below 2
	// decode sequentially.
	Workers int
}

func (o *Options) strict() bool {
	return o != nil && o.Strict
}

func (o *Options) workers() int {
	if o == nil {
		return 1
	}
	return o.Workers
}

// forEachRow calls fn for every row in [0, rows). Rows write disjoint parts
// of the output, so they can run in any order.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers < 2 {
		for row := 0; row < rows; row++ {
			fn(row)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for row := 0; row < rows; row++ {
		g.Go(func() error {
			fn(row)
			return nil
		})
	}
	g.Wait()
}
