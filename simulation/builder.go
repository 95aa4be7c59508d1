package simulation

import (
	"github.com/rs/xid"
	"github.com/sarchlab/cachesim/analysis"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
)

// Builder can be used to build a simulation.
type Builder struct {
	geometry       cache.Geometry
	tracers        []trace.Tracer
	recordingOn    bool
	outputFileName string
	monitor        *monitoring.Monitor
	setPressureOn  bool
}

// MakeBuilder creates a new builder with the default geometry.
func MakeBuilder() Builder {
	return Builder{
		geometry: cache.Defaults(),
	}
}

// WithGeometry sets the geometry of the simulated cache.
func (b Builder) WithGeometry(g cache.Geometry) Builder {
	b.geometry = g
	return b
}

// WithTracer adds a tracer that is notified of every trace entry.
func (b Builder) WithTracer(t trace.Tracer) Builder {
	tracers := make([]trace.Tracer, 0, len(b.tracers)+1)
	tracers = append(tracers, b.tracers...)
	b.tracers = append(tracers, t)

	return b
}

// WithRecording records every access and the final counters into an SQLite
// database.
func (b Builder) WithRecording() Builder {
	b.recordingOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitor registers the simulation to a monitor.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

// WithSetPressure counts the accesses of every set.
func (b Builder) WithSetPressure() Builder {
	b.setPressureOn = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.recordingOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}

	if err := b.geometry.Validate(); err != nil {
		panic(err)
	}
}

// Build builds a simulation. The name identifies the simulation in the
// recorded data and on the monitor.
func (b Builder) Build(name string) *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:      xid.New().String(),
		name:    name,
		cache:   cache.MakeBuilder().WithGeometry(b.geometry).Build(),
		tracers: b.tracers,
		monitor: b.monitor,
	}

	if b.recordingOn {
		s.dataRecorder = datarecording.New(b.outputFileName)
		s.dataRecorder.CreateTable(RunTableName, RunRecord{})
		s.tracers = append(s.tracers, trace.NewDBTracer(s.dataRecorder))
	}

	if b.setPressureOn {
		s.setPressure = analysis.NewSetPressure(b.geometry.NumSets())
	}

	if b.monitor != nil {
		b.monitor.RegisterRun(s)
	}

	return s
}
