// Package simulation drives a cache with the entries of a trace.
package simulation

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sarchlab/cachesim/analysis"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
)

// RunTableName is the table that stores the final counters of a run.
const RunTableName = "runs"

// RunRecord is the row stored for every finished run.
type RunRecord struct {
	ID        string `csim_data:"unique"`
	Trace     string `csim_data:"index"`
	SetBits   int
	Ways      int
	BlockBits int
	Hits      int64
	Misses    int64
	Evictions int64
}

// A Simulation feeds the entries of a trace to a cache and counts the
// outcomes.
type Simulation struct {
	id   string
	name string

	lock  sync.Mutex
	cache *cache.Cache
	stats cache.Stats

	tracers      []trace.Tracer
	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	setPressure  *analysis.SetPressure
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Name returns the name of the simulation.
func (s *Simulation) Name() string {
	return s.name
}

// Geometry returns the geometry of the simulated cache.
func (s *Simulation) Geometry() cache.Geometry {
	return s.cache.Geometry()
}

// Stats returns the counters accumulated so far.
func (s *Simulation) Stats() cache.Stats {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.stats
}

// SetState returns a copy of the lines in a set.
func (s *Simulation) SetState(setIndex int) []cache.LineState {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.cache.SetState(setIndex)
}

// GetDataRecorder returns the data recorder, or nil if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// SetPressure returns the per-set counters, or nil if they are not collected.
func (s *Simulation) SetPressure() *analysis.SetPressure {
	return s.setPressure
}

// Step simulates a single trace entry and returns the result of every access
// it makes. Instruction fetches make no access.
func (s *Simulation) Step(entry trace.Entry) []cache.AccessResult {
	n := entry.Op.NumAccesses()
	if n == 0 {
		return nil
	}

	results := make([]cache.AccessResult, 0, n)
	setIndex, tag := s.cache.Decoder().Decode(entry.Address)

	s.lock.Lock()
	for i := 0; i < n; i++ {
		r := s.cache.AccessDetailed(setIndex, tag)
		s.stats.Record(r.Outcome)

		if s.setPressure != nil {
			s.setPressure.Record(r)
		}

		results = append(results, r)
	}
	s.lock.Unlock()

	for _, t := range s.tracers {
		t.TraceEntry(entry, results)
	}

	return results
}

// Run simulates all the entries of a trace. If the trace cannot be read to
// the end, no counters are returned.
func (s *Simulation) Run(r *trace.Reader) (cache.Stats, error) {
	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar(s.name, r.Size())
		defer s.monitor.CompleteProgressBar(bar)
	}

	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return cache.Stats{}, fmt.Errorf("simulating %s: %w", r.Name(), err)
		}

		s.Step(entry)

		if bar != nil {
			bar.SetFinished(r.BytesRead())
		}
	}

	stats := s.Stats()
	s.recordRun(stats)

	return stats, nil
}

// RunFile opens a trace file and runs it.
func (s *Simulation) RunFile(path string) (cache.Stats, error) {
	r, err := trace.Open(path)
	if err != nil {
		return cache.Stats{}, err
	}
	defer r.Close()

	return s.Run(r)
}

func (s *Simulation) recordRun(stats cache.Stats) {
	if s.dataRecorder == nil {
		return
	}

	g := s.Geometry()
	s.dataRecorder.InsertData(RunTableName, RunRecord{
		ID:        s.id,
		Trace:     s.name,
		SetBits:   g.SetBits,
		Ways:      g.Ways,
		BlockBits: g.BlockBits,
		Hits:      int64(stats.Hits),
		Misses:    int64(stats.Misses),
		Evictions: int64(stats.Evictions),
	})
	s.dataRecorder.Flush()
}

// Terminate flushes and closes the data recorder.
func (s *Simulation) Terminate() {
	if s.dataRecorder == nil {
		return
	}

	err := s.dataRecorder.Close()
	if err != nil {
		panic(err)
	}
}
