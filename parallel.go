package mdcgen

import "sync"

// parallelRanges splits n items into contiguous per-worker ranges and runs
// fn on each range concurrently. Ranges don't overlap, so fn may write to
// disjoint slices without synchronization. numWorkers <= 1 runs inline.
func parallelRanges(n, numWorkers int, fn func(start, end int)) {
	if numWorkers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	perWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}

// generateClusters synthesizes every cluster's cloud, dispatching contiguous
// cluster ranges across Workers goroutines. Each cluster consumes only its
// own sub-stream (seeded from the master stream in cluster order), so the
// output is bit-identical regardless of worker count.
func generateClusters(cfg *Config, cat catalog, cellWidth float64, seeds [][2]uint64, injector noiseInjector) (clouds [][]float64, skippedCorr, skippedRot []int) {
	clouds = make([][]float64, cfg.NClusters)
	skippedCorr = make([]int, cfg.NClusters)
	skippedRot = make([]int, cfg.NClusters)

	parallelRanges(cfg.NClusters, cfg.Workers, func(start, end int) {
		for k := start; k < end; k++ {
			clouds[k], skippedCorr[k], skippedRot[k] = buildCluster(cfg, cat, cellWidth, k, seeds[k], injector)
		}
	})

	return clouds, skippedCorr, skippedRot
}
