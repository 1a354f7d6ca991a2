package main

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/hostprobe/pkg/config"
	"github.com/vertti/hostprobe/pkg/output"
)

var (
	configFile string
	outputFlag string
	verbose    bool
	noBanner   bool
	noColor    bool

	totalMemory string

	dbDriver        string
	dbConnection    string
	dbTable         string
	dbColumn        string
	dbInsertValue   string
	dbCreateTable   bool
	dbServerVersion string
	dbTimeout       time.Duration
)

// cfg is loaded before every command runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "hostprobe [flags] [-- command [args...]]",
	Short: "Report host, runtime, cgroup and database diagnostics",
	Long: `hostprobe prints what a process can see of its host: OS and runtime,
user and host name, CPUs and memory, the cgroup memory limit it runs under,
and whether the configured database accepts an insert, a select and a
version query.

Examples:
  hostprobe                                   # full report
  hostprobe --connection "host=db;port=5432;username=app;password=pw;database=test"
  hostprobe cgroup --total-memory 2GiB        # cgroup limit only
  hostprobe -o json env                       # environment as JSON
  hostprobe --no-banner -- ./server --port 80 # report, then exec ./server`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runAll,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to YAML config file")
	pf.StringVarP(&outputFlag, "output", "o", "", "output format: text or json")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log probe details to stderr")
	pf.BoolVar(&noBanner, "no-banner", false, "do not print the banner")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	pf.StringVar(&totalMemory, "total-memory", "",
		"total available memory used for the cgroup percentage (e.g., 2GiB; default: detected)")

	pf.StringVar(&dbDriver, "driver", "", "database driver: postgres or sqlite")
	pf.StringVar(&dbConnection, "connection", "",
		"connection string, e.g. host=localhost;port=5432;username=u;password=p;database=test (env: "+config.EnvConnection+")")
	pf.StringVar(&dbTable, "table", "", "table used by the database smoke test")
	pf.StringVar(&dbColumn, "column", "", "text column used by the database smoke test")
	pf.StringVar(&dbInsertValue, "value", "", "value inserted by the database smoke test")
	pf.BoolVar(&dbCreateTable, "create-table", false, "create the smoke test table if it does not exist")
	pf.StringVar(&dbServerVersion, "server-version", "", "required server version constraint (e.g., \">= 12\")")
	pf.DurationVar(&dbTimeout, "timeout", 0, "database smoke test timeout (default: 30s)")
}

// loadConfig reads the config file, applies flag overrides and sets up
// logging. Flags win over the environment, which wins over the file.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}

	applyFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}

	setupLogging(cmd, loaded)
	if noColor {
		output.SetColor(false)
	}
	cfg = loaded
	return nil
}

func setupLogging(cmd *cobra.Command, c *config.Config) {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
}
