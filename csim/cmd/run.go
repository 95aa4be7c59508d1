package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg config, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)

	if cfg.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func run(cfg config, stdout, stderr io.Writer) error {
	stdout = &lockedWriter{w: stdout}
	logger := newLogger(cfg, stderr)

	logger.WithFields(logrus.Fields{
		"s":          cfg.geometry.SetBits,
		"E":          cfg.geometry.Ways,
		"b":          cfg.geometry.BlockBits,
		"sets":       cfg.geometry.NumSets(),
		"block_size": cfg.geometry.BlockSize(),
	}).Debug("cache geometry")

	var monitor *monitoring.Monitor
	if cfg.monitor {
		monitor = startMonitor(cfg, logger)
		defer monitor.StopServer()
	}

	jobs := make([]simulation.Job, 0, len(cfg.traces))
	for i, path := range cfg.traces {
		s := simulationBuilder(cfg, i, monitor, stdout).Build(path)
		defer s.Terminate()

		jobs = append(jobs, simulation.Job{Simulation: s, Path: path})
	}

	results := simulation.RunBatch(jobs)

	if len(results) == 1 {
		return reportSingle(cfg, results[0], stdout, logger)
	}

	return reportBatch(cfg, results, stdout, logger)
}

func startMonitor(cfg config, logger *logrus.Logger) *monitoring.Monitor {
	monitor := monitoring.NewMonitor()
	if cfg.monitorPort > 0 {
		monitor.WithPortNumber(cfg.monitorPort)
	}

	url := monitor.StartServer()

	if cfg.openBrowser {
		err := monitor.OpenInBrowser(url)
		if err != nil {
			logger.WithError(err).Warn("cannot open the monitoring page")
		}
	}

	return monitor
}

func simulationBuilder(
	cfg config,
	i int,
	monitor *monitoring.Monitor,
	stdout io.Writer,
) simulation.Builder {
	b := simulation.MakeBuilder().WithGeometry(cfg.geometry)

	if cfg.verbose {
		prefix := ""
		if len(cfg.traces) > 1 {
			prefix = cfg.traces[i] + ": "
		}

		b = b.WithTracer(trace.NewTextTracer(log.New(stdout, prefix, 0)))
	}

	if cfg.record {
		b = b.WithRecording()
		if cfg.recordFile != "" {
			b = b.WithOutputFileName(indexedName(cfg, cfg.recordFile, i))
		}
	}

	if monitor != nil {
		b = b.WithMonitor(monitor)
	}

	if cfg.report != "" {
		b = b.WithSetPressure()
	}

	return b
}

// indexedName gives every trace of a batch its own output file.
func indexedName(cfg config, name string, i int) string {
	if len(cfg.traces) == 1 {
		return name
	}

	ext := filepath.Ext(name)

	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i, ext)
}

func reportSingle(
	cfg config,
	result simulation.Result,
	stdout io.Writer,
	logger *logrus.Logger,
) error {
	if result.Err != nil {
		return result.Err
	}

	fmt.Fprintln(stdout, result.Stats)

	return writeSetPressure(cfg, result, 0, logger)
}

func reportBatch(
	cfg config,
	results []simulation.Result,
	stdout io.Writer,
	logger *logrus.Logger,
) error {
	failed := 0

	for i, result := range results {
		if result.Err != nil {
			logger.WithError(result.Err).
				WithField("trace", result.Job.Path).
				Error("simulation failed")

			failed++

			continue
		}

		fmt.Fprintf(stdout, "%s: %s\n", result.Job.Path, result.Stats)

		err := writeSetPressure(cfg, result, i, logger)
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d traces failed", failed, len(results))
	}

	return nil
}

func writeSetPressure(
	cfg config,
	result simulation.Result,
	i int,
	logger *logrus.Logger,
) error {
	if cfg.report == "" {
		return nil
	}

	path := indexedName(cfg, cfg.report, i)

	f, err := os.Create(path)
	if err != nil {
		return &trace.ResourceError{Path: path, Err: err}
	}
	defer f.Close()

	pressure := result.Job.Simulation.SetPressure()

	err = pressure.WriteCSV(f)
	if err != nil {
		return &trace.ResourceError{Path: path, Err: err}
	}

	summary := pressure.Summary()
	logger.WithFields(logrus.Fields{
		"trace":        result.Job.Path,
		"report":       path,
		"touched_sets": summary.TouchedSets,
		"mean_misses":  summary.MeanMisses,
		"std_misses":   summary.StdMisses,
		"hottest_set":  summary.HottestSet,
	}).Info("set pressure")

	return nil
}
