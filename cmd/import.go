package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finco/finco"
	"github.com/finco/finco/nfe"
)

type importCmd struct {
	file           string
	url            string
	from           string
	to             string
	classification string
	category       string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import fiscal documents as pending entries" }
func (*importCmd) Usage() string {
	return `fin import [-f <file> | -url <portal> -from <date> -to <date>] [-c <classification>] [-cat <category>]

  Reads fiscal document summaries, from a local feed export or from the
  document portal, and promotes the new ones to pending entries. Documents
  already present, by source key or by promoted label, are ignored, so
  re-importing the same feed is safe.

Usage Examples:
# Import a downloaded feed export.
$ fin import -f documentos.json

# Fetch April directly from the portal.
$ fin import -url https://portal.example/api/documentos -from 2025-04-01 -to 2025-04-30
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "f", "", "Feed export file to read. '-' reads stdin.")
	f.StringVar(&p.url, "url", "", "Document portal address to fetch from.")
	f.StringVar(&p.from, "from", "", "Start of the fetch period (YYYY-MM-DD).")
	f.StringVar(&p.to, "to", "", "End of the fetch period (YYYY-MM-DD).")
	f.StringVar(&p.classification, "c", "FORNECEDORES", "Classification for the created entries.")
	f.StringVar(&p.category, "cat", string(finco.Operational), "Category for the created entries.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category, err := finco.ParseCategory(p.category)
	if err != nil {
		return fail(err)
	}

	candidates, err := p.load(ctx)
	if err != nil {
		return fail(err)
	}

	store, persist, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	existing, err := store.ListEntries(ctx, finco.EntryFilter{})
	if err != nil {
		return fail(err)
	}

	res := finco.ReconcileImport(candidates, existing, p.classification, category)
	for _, e := range res.Created {
		if _, err := store.CreateEntry(ctx, e); err != nil {
			return fail(err)
		}
	}
	if err := persist(); err != nil {
		return fail(err)
	}

	fmt.Printf("Batch %s: %d created, %d updated, %d ignored, %d failed\n",
		res.Batch, len(res.Created), len(res.Updated), len(res.Ignored), len(res.Errors))
	for _, m := range res.Months {
		fmt.Printf("  touched %s %d\n", m.Month(), m.Year())
	}
	for _, ierr := range res.Errors {
		fmt.Fprintln(os.Stderr, "Warning:", ierr)
	}
	return subcommands.ExitSuccess
}

func (p *importCmd) load(ctx context.Context) ([]finco.ImportCandidate, error) {
	switch {
	case p.file == "-":
		return nfe.Load(os.Stdin)
	case p.file != "":
		f, err := os.Open(p.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return nfe.Load(f)
	case p.url != "":
		from, err := finco.ParseDate(p.from)
		if err != nil {
			return nil, fmt.Errorf("invalid -from: %w", err)
		}
		to, err := finco.ParseDate(p.to)
		if err != nil {
			return nil, fmt.Errorf("invalid -to: %w", err)
		}
		return nfe.NewClient(p.url).Fetch(ctx, finco.NewRange(from, to))
	default:
		return nil, fmt.Errorf("one of -f or -url is required")
	}
}
