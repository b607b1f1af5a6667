package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/finco/finco/agent"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fin assist [<initial question>]

  Starts an interactive session with the treasury assistant. The Treasurer
  expert answers from the ledger reports; the Analyst expert grounds
  market questions on web search.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}

	analyst := agent.NewAnalyst()
	treasurer := agent.NewTreasurer(store)
	a := agent.New(os.Stdout, os.Stdin, analyst, treasurer)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
