// Package cmd implements the CLI application to manage the treasury ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/finco/finco"
	"github.com/finco/finco/pgstore"
)

// Register the subcommands.
// A main package calls Register() to declare them, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&listCmd{}, "ledger")
	c.Register(&editCmd{}, "ledger")
	c.Register(&deleteCmd{}, "ledger")
	c.Register(&settleCmd{}, "ledger")
	c.Register(&statusCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&importCmd{}, "ledger")

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&cashflowCmd{}, "reports")
	c.Register(&annualCmd{}, "reports")

	c.Register(&classificationsCmd{}, "settings")
	c.Register(&configCmd{}, "settings")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing entries (JSONL format)")
var databaseURL = flag.String("database-url", "", "Postgres connection string. Overrides the ledger file when set.")

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// openStore opens the entry store selected by the global flags: the Postgres
// store when -database-url is set, the JSONL ledger file otherwise. The
// returned persist function flushes file-backed changes and releases the
// connection pool; callers run it once, after their writes.
func openStore(ctx context.Context) (finco.EntryStore, func() error, error) {
	if *databaseURL != "" {
		pool, err := pgxpool.New(ctx, *databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to %q: %w", *databaseURL, err)
		}
		store, err := pgstore.New(pool, pgstore.WithLogger(logger))
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, func() error { pool.Close(); return nil }, nil
	}

	ledger, err := DecodeLedger()
	if err != nil {
		return nil, nil, err
	}
	return ledger, func() error { return EncodeLedger(ledger) }, nil
}

// DecodeLedger decodes the ledger from the app default ledger file.
// If the file does not exist, it returns a new empty ledger.
func DecodeLedger() (*finco.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("file", *ledgerFile).Msg("ledger file does not exist, starting empty")
			return finco.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := finco.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// EncodeLedger writes the ledger back to the app default ledger file in
// canonical form.
func EncodeLedger(ledger *finco.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("could not create ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	if err := finco.EncodeLedger(f, ledger); err != nil {
		return fmt.Errorf("could not encode ledger file %q: %w", *ledgerFile, err)
	}
	return nil
}

// printMarkdown renders markdown for the terminal. Plain text is printed
// as-is when the renderer cannot be built.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}

// fail prints the error and returns the failure exit status, so commands can
// end with a one-liner.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
