// Package monitoring serves the state of running simulations over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/monitoring/web"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A Run is a simulation that can be inspected while it runs.
type Run interface {
	Name() string
	Geometry() cache.Geometry
	Stats() cache.Stats
	SetState(setIndex int) []cache.LineState
}

// Monitor can turn a simulation into a server and allows external monitoring
// of the simulation.
type Monitor struct {
	portNumber int
	listener   net.Listener

	runsLock sync.Mutex
	runs     []Run

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRun registers a simulation to be monitored.
func (m *Monitor) RegisterRun(r Run) {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	m.runs = append(m.runs, r)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the monitoring API and pages.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/runs", m.listRuns)
	r.HandleFunc("/api/run/{id:[0-9]+}", m.runDetails)
	r.HandleFunc("/api/run/{id:[0-9]+}/set/{set:[0-9]+}", m.setDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	handler := m.Router()
	go func() {
		err := http.Serve(listener, handler)
		if err != nil && !isClosedConnError(err) {
			log.Panic(err)
		}
	}()

	return url
}

// StopServer stops accepting connections.
func (m *Monitor) StopServer() {
	if m.listener != nil {
		m.listener.Close()
	}
}

// OpenInBrowser opens the monitoring page in the default browser.
func (m *Monitor) OpenInBrowser(url string) error {
	return browser.OpenURL(url)
}

func isClosedConnError(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

type runRsp struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Geometry string      `json:"geometry"`
	NumSets  int         `json:"num_sets"`
	Stats    cache.Stats `json:"stats"`
	HitRate  float64     `json:"hit_rate"`
}

func makeRunRsp(id int, r Run) runRsp {
	stats := r.Stats()

	return runRsp{
		ID:       id,
		Name:     r.Name(),
		Geometry: r.Geometry().String(),
		NumSets:  r.Geometry().NumSets(),
		Stats:    stats,
		HitRate:  stats.HitRate(),
	}
}

func (m *Monitor) listRuns(w http.ResponseWriter, _ *http.Request) {
	m.runsLock.Lock()
	rsp := make([]runRsp, 0, len(m.runs))
	for i, r := range m.runs {
		rsp = append(rsp, makeRunRsp(i, r))
	}
	m.runsLock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) findRunOr404(w http.ResponseWriter, r *http.Request) (int, Run) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])

	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	if err != nil || id < 0 || id >= len(m.runs) {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Run not found"))
		dieOnErr(err)

		return 0, nil
	}

	return id, m.runs[id]
}

func (m *Monitor) runDetails(w http.ResponseWriter, r *http.Request) {
	id, run := m.findRunOr404(w, r)
	if run == nil {
		return
	}

	writeJSON(w, makeRunRsp(id, run))
}

type setRsp struct {
	SetIndex int
	Lines    []cache.LineState
}

func (m *Monitor) setDetails(w http.ResponseWriter, r *http.Request) {
	_, run := m.findRunOr404(w, r)
	if run == nil {
		return
	}

	setIndex, err := strconv.Atoi(mux.Vars(r)["set"])
	if err != nil || setIndex >= run.Geometry().NumSets() {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Set not found"))
		dieOnErr(err)

		return
	}

	rsp := &setRsp{
		SetIndex: setIndex,
		Lines:    run.SetState(setIndex),
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(rsp)
	serializer.SetMaxDepth(3)
	err = serializer.Serialize(w)

	dieOnErr(err)
}

type progressRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		b.Lock()
		bars = append(bars, progressRsp{
			ID:         b.ID,
			Name:       b.Name,
			StartTime:  b.StartTime,
			Total:      b.Total,
			Finished:   b.Finished,
			InProgress: b.InProgress,
		})
		b.Unlock()
	}

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

type functionSamples struct {
	Function string `json:"function"`
	Samples  int64  `json:"samples"`
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second
	if s := r.URL.Query().Get("ms"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: invalid duration %q", s)
			return
		}

		duration = time.Duration(ms) * time.Millisecond
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, summarizeProfile(prof))
}

// summarizeProfile adds up the samples of each leaf function, the most
// sampled first.
func summarizeProfile(prof *profile.Profile) []functionSamples {
	counts := make(map[string]int64)

	for _, s := range prof.Sample {
		if len(s.Location) == 0 || len(s.Location[0].Line) == 0 ||
			len(s.Value) == 0 {
			continue
		}

		fn := s.Location[0].Line[0].Function
		if fn == nil {
			continue
		}

		counts[fn.Name] += s.Value[0]
	}

	summary := make([]functionSamples, 0, len(counts))
	for name, n := range counts {
		summary = append(summary, functionSamples{Function: name, Samples: n})
	}

	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Samples != summary[j].Samples {
			return summary[i].Samples > summary[j].Samples
		}

		return summary[i].Function < summary[j].Function
	})

	return summary
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
