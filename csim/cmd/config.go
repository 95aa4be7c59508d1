package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/spf13/cobra"
)

type config struct {
	geometry    cache.Geometry
	traces      []string
	verbose     bool
	record      bool
	recordFile  string
	monitor     bool
	monitorPort int
	openBrowser bool
	report      string
}

type geometrySetting struct {
	flag  string
	env   string
	field string
}

var geometrySettings = []geometrySetting{
	{flag: "set-bits", env: "CSIM_SET_BITS", field: "s"},
	{flag: "lines", env: "CSIM_LINES", field: "E"},
	{flag: "block-bits", env: "CSIM_BLOCK_BITS", field: "b"},
}

const traceEnv = "CSIM_TRACE"

func addFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.IntP("set-bits", "s", 0, "Number of set index bits (2^s sets)")
	f.IntP("lines", "E", 0, "Number of lines per set")
	f.IntP("block-bits", "b", 0, "Number of block bits (2^b bytes per block)")
	f.StringArrayP("trace", "t", nil,
		"Trace file to replay, repeat to replay several traces in parallel")
	f.BoolP("verbose", "v", false, "Print the outcome of every trace entry")
	f.Bool("record", false, "Record every access into an SQLite database")
	f.String("record-file", "",
		"Name of the recording database, without the .sqlite3 extension")
	f.Bool("monitor", false, "Serve the simulation state over HTTP")
	f.Int("monitor-port", 0, "Port of the monitoring server")
	f.Bool("open-browser", false, "Open the monitoring page in a browser")
	f.String("report", "", "Write the per-set access counts to a CSV file")
}

// loadDotEnv loads the .env files into the environment. Variables that are
// already set are kept. Missing files are ignored.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func loadConfig(cmd *cobra.Command) (config, error) {
	cfg := config{}

	values := make([]int, len(geometrySettings))
	for i, s := range geometrySettings {
		v, err := intSetting(cmd, s)
		if err != nil {
			return config{}, err
		}

		values[i] = v
	}

	cfg.geometry = cache.Geometry{
		SetBits:   values[0],
		Ways:      values[1],
		BlockBits: values[2],
	}

	err := cfg.geometry.Validate()
	if err != nil {
		return config{}, err
	}

	cfg.traces, err = traceSetting(cmd)
	if err != nil {
		return config{}, err
	}

	f := cmd.Flags()
	cfg.verbose, _ = f.GetBool("verbose")
	cfg.record, _ = f.GetBool("record")
	cfg.recordFile, _ = f.GetString("record-file")
	cfg.monitor, _ = f.GetBool("monitor")
	cfg.monitorPort, _ = f.GetInt("monitor-port")
	cfg.openBrowser, _ = f.GetBool("open-browser")
	cfg.report, _ = f.GetString("report")

	if cfg.recordFile != "" && !cfg.record {
		return config{}, &cache.ConfigurationError{
			Field:  "record-file",
			Value:  cfg.recordFile,
			Reason: "requires --record",
		}
	}

	if cfg.openBrowser && !cfg.monitor {
		return config{}, &cache.ConfigurationError{
			Field:  "open-browser",
			Value:  true,
			Reason: "requires --monitor",
		}
	}

	return cfg, nil
}

func intSetting(cmd *cobra.Command, s geometrySetting) (int, error) {
	if cmd.Flags().Changed(s.flag) {
		return cmd.Flags().GetInt(s.flag)
	}

	text, ok := os.LookupEnv(s.env)
	if !ok {
		return 0, &cache.ConfigurationError{
			Field:  s.field,
			Value:  "",
			Reason: "missing, set -" + s.field + " or " + s.env,
		}
	}

	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &cache.ConfigurationError{
			Field:  s.field,
			Value:  text,
			Reason: "not an integer",
		}
	}

	return v, nil
}

func traceSetting(cmd *cobra.Command) ([]string, error) {
	traces, err := cmd.Flags().GetStringArray("trace")
	if err != nil {
		return nil, err
	}

	if !cmd.Flags().Changed("trace") {
		if env := os.Getenv(traceEnv); env != "" {
			traces = filepath.SplitList(env)
		}
	}

	if len(traces) == 0 {
		return nil, &cache.ConfigurationError{
			Field:  "t",
			Value:  "",
			Reason: "missing, set -t or " + traceEnv,
		}
	}

	return traces, nil
}
