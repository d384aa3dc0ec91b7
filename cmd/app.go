// Package cmd implements the CLI application to manage a personal finance ledger.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Environment variables read when the matching flag is not set.
const (
	EnvLedgerFile = "PFT_LEDGER_FILE"
	EnvRatesURL   = "PFT_RATES_URL"
	EnvTimeout    = "PFT_TIMEOUT"
	EnvStrict     = "PFT_STRICT"
	EnvVerbose    = "PFT_VERBOSE"
)

const (
	defaultLedgerFile = "data/transactions.json"
	defaultTimeout    = 10 * time.Second
)

// Commands lists all pft subcommands.
var Commands = []subcommands.Command{
	&addCmd{kind: fintrack.Income},
	&addCmd{kind: fintrack.Expense},
	&txCmd{},
	&summaryCmd{},
	&chartCmd{},
	&fmtCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, group(cmd))
	}
}

func group(c subcommands.Command) string {
	switch c.(type) {
	case *addCmd:
		return "transactions"
	case *fmtCmd:
		return "ledger"
	default:
		return "reports"
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSON format).\n If missing it will read the environment variable \""+EnvLedgerFile+"\", and default to \""+defaultLedgerFile+"\".")
	ratesURL   = flag.String("rates-url", "", "Currency rate service endpoint.\n If missing it will read the environment variable \""+EnvRatesURL+"\", and default to \""+fintrack.FrankfurterURL+"\".")
	timeout    = flag.Duration("timeout", 0, "Timeout of a currency rate lookup.\n If missing it will read the environment variable \""+EnvTimeout+"\", and default to "+defaultTimeout.String()+".")
	strict     = flag.Bool("strict", false, "Reject transactions whose amount cannot be converted, instead of keeping the original amount.\n Also enabled by the environment variable \""+EnvStrict+"\".")
	noCache    = flag.Bool("no-cache", false, "Do not cache currency rate lookups on disk.")
	Verbose    = flag.Bool("v", false, "Verbose logging. Also enabled by the environment variable \""+EnvVerbose+"\".")
	raw        = flag.Bool("raw", false, "Print reports as plain markdown.")
)

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// envBool reads a boolean environment variable, false if unset or invalid.
func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

func ledgerPath() string {
	if *ledgerFile == "" {
		*ledgerFile = os.Getenv(EnvLedgerFile)
	}
	if *ledgerFile == "" {
		*ledgerFile = defaultLedgerFile
	}
	return *ledgerFile
}

func ratesAddr() string {
	if *ratesURL == "" {
		*ratesURL = os.Getenv(EnvRatesURL)
	}
	if *ratesURL == "" {
		*ratesURL = fintrack.FrankfurterURL
	}
	return *ratesURL
}

func lookupTimeout() time.Duration {
	if *timeout == 0 {
		if d, err := time.ParseDuration(os.Getenv(EnvTimeout)); err == nil {
			*timeout = d
		}
	}
	if *timeout <= 0 {
		*timeout = defaultTimeout
	}
	return *timeout
}

func strictMode() bool { return *strict || envBool(EnvStrict) }

// cacheDir is where rate lookups are cached.
func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pft")
}

var log *logrus.Logger

// logger returns the application logger, created on first use.
func logger() *logrus.Logger {
	if log == nil {
		log = SetupLogging(*Verbose || envBool(EnvVerbose))
	}
	return log
}

// SetupLogging returns a logger writing text lines to stderr.
func SetupLogging(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	logger.Level = logrus.InfoLevel
	if verbose {
		logger.Level = logrus.DebugLevel
	}
	return logger
}

// OpenLedger opens the ledger file selected by the flags.
func OpenLedger() (*fintrack.Ledger, error) {
	log := logger()
	client := &http.Client{Timeout: lookupTimeout()}
	if !*noCache {
		client = fintrack.Daily(cacheDir(), lookupTimeout(), log)
	}
	converter := &fintrack.CurrencyConverter{
		Rates:  &fintrack.Frankfurter{URL: ratesAddr(), Client: client},
		Strict: strictMode(),
		Log:    log,
	}
	log.WithField("file", ledgerPath()).Debug("opening ledger")
	ledger, err := fintrack.OpenLedger(fintrack.NewStore(ledgerPath()), converter, log)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", ledgerPath(), err)
	}
	return ledger, nil
}

// printMarkdown prints md to stdout, styled for the terminal unless -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	logger().WithError(err).Debug("cannot style markdown")
	fmt.Fprint(stdout, md)
}
