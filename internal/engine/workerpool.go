package engine

import (
	"runtime"
	"sync"

	"github.com/aeonforge/chronicle/internal/polity"
)

// runPolityUpdates runs polity.Update for every live polity in the registry,
// fanned out across a bounded worker pool. Determinism does not depend on
// scheduling order here: every territory mutation routes through the grid's
// mutex (ctx.Registry.Transfer/transferLocked), every cross-polity decision
// that must not depend on thread interleaving goes through
// entropy.DeterministicUnit, and each polity only ever mutates its own
// fields plus, via the war/annihilation bridge, an enemy's War/Territory/
// Cities/Treasury under the same locking discipline (Section 5).
func runPolityUpdates(all []*polity.Polity, workerCount int, makeCtx func(p *polity.Polity) *polity.Context) {
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	if workerCount > len(all) {
		workerCount = len(all)
	}
	if workerCount <= 1 {
		for _, p := range all {
			polity.Update(p, makeCtx(p))
		}
		return
	}

	jobs := make(chan *polity.Polity, len(all))
	for _, p := range all {
		jobs <- p
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for p := range jobs {
				polity.Update(p, makeCtx(p))
			}
		}()
	}
	wg.Wait()
}
