package saliency

import (
	"runtime"
	"sync"
)

// WorkItem holds one drug queued for extraction.
type WorkItem struct {
	Seq  int
	Drug string
}

// WorkResult holds the ranked hits for one drug.
type WorkResult struct {
	Seq  int
	Drug string
	Hits []Record
	Err  error
}

// ParallelExtract extracts top hits for queued drugs using a pool of
// workers. The shared coordinate matrix and locus registry are
// read-only after pipeline construction, so workers need no locking.
// Results arrive in completion order; use OrderedCollect to consume
// them in sequence-number order. If workers is 0, runtime.NumCPU() is
// used.
func (p *Pipeline) ParallelExtract(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				hits, err := p.ExtractDrug(item.Drug)
				results <- WorkResult{
					Seq:  item.Seq,
					Drug: item.Drug,
					Hits: hits,
					Err:  err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are buffered in a pending map and emitted as
// soon as the next expected sequence number is available. Blocks until
// the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
