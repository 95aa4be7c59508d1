package simulation

import (
	"runtime"
	"sync"

	"github.com/sarchlab/cachesim/mem/cache"
)

// A Job is a trace file to be run by a simulation.
type Job struct {
	Simulation *Simulation
	Path       string
}

// A Result is the outcome of a job.
type Result struct {
	Job   Job
	Stats cache.Stats
	Err   error
}

// RunBatch runs the jobs in parallel and returns the results in the order of
// the jobs. Every job must have its own simulation.
func RunBatch(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	slots := make(chan struct{}, runtime.GOMAXPROCS(0))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			slots <- struct{}{}
			defer func() { <-slots }()

			stats, err := job.Simulation.RunFile(job.Path)
			results[i] = Result{Job: job, Stats: stats, Err: err}
		}()
	}

	wg.Wait()

	return results
}
