package vibration

import "sync"

// RunBatch analyzes all trials and returns the filled aggregator.
//
// Trials are independent pure computations over shared immutable
// configuration, so they parallelize trivially: up to workers goroutines
// analyze trials concurrently and only Aggregator.Add is serialized.
// workers < 2 runs the batch sequentially. Result ordering is unaffected
// by the worker count because the aggregator sorts on read.
func RunBatch(a *Analyzer, trials []Trial, workers int) *Aggregator {
	agg := NewAggregator()

	if workers < 2 || len(trials) < 2 {
		for _, t := range trials {
			agg.Add(a.Analyze(t))
		}

		return agg
	}

	if workers > len(trials) {
		workers = len(trials)
	}

	work := make(chan Trial)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			for t := range work {
				agg.Add(a.Analyze(t))
			}
		}()
	}

	for _, t := range trials {
		work <- t
	}
	close(work)

	wg.Wait()

	return agg
}
