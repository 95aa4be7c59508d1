package trace

import (
	"fmt"
	"log"
	"strings"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
)

// A Tracer is notified of every entry that the simulator processes, together
// with the result of each cache access the entry makes.
type Tracer interface {
	TraceEntry(entry Entry, results []cache.AccessResult)
}

// accessEntry represents a cache access in the database
type accessEntry struct {
	ID         string `csim_data:"unique"`
	Line       int    `csim_data:"index"`
	Op         string `csim_data:"index"`
	Address    string
	Size       int
	SetIndex   int `csim_data:"index"`
	Tag        string
	Outcome    string `csim_data:"index"`
	EvictedTag string
}

// A textTracer prints the outcomes of every entry, one line per entry.
type textTracer struct {
	logger *log.Logger
}

// NewTextTracer creates a tracer that prints lines such as
// "L 10,1 miss eviction".
func NewTextTracer(logger *log.Logger) Tracer {
	t := new(textTracer)
	t.logger = logger

	return t
}

func (t *textTracer) TraceEntry(entry Entry, results []cache.AccessResult) {
	if len(results) == 0 {
		return
	}

	outcomes := make([]string, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.Outcome.String())
	}

	t.logger.Printf("%s %s\n", entry, strings.Join(outcomes, " "))
}

// A dbTracer records every cache access into a database using the data
// recorder.
type dbTracer struct {
	dataRecorder datarecording.DataRecorder
}

// AccessTableName is the table that the database tracer writes to.
const AccessTableName = "accesses"

// NewDBTracer creates a new database-based Tracer.
func NewDBTracer(dataRecorder datarecording.DataRecorder) Tracer {
	t := &dbTracer{
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(AccessTableName, accessEntry{})

	return t
}

func (t *dbTracer) TraceEntry(entry Entry, results []cache.AccessResult) {
	for i, r := range results {
		record := accessEntry{
			ID:       fmt.Sprintf("%d.%d", entry.Line, i),
			Line:     entry.Line,
			Op:       entry.Op.String(),
			Address:  fmt.Sprintf("0x%x", entry.Address),
			Size:     entry.Size,
			SetIndex: int(r.SetIndex),
			Tag:      fmt.Sprintf("0x%x", r.Tag),
			Outcome:  r.Outcome.String(),
		}

		if r.Outcome == cache.MissWithEviction {
			record.EvictedTag = fmt.Sprintf("0x%x", r.EvictedTag)
		}

		t.dataRecorder.InsertData(AccessTableName, record)
	}
}
