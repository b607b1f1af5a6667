package agent

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/finco/finco"
	"github.com/finco/finco/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user manages the company treasury: settlements, cash balances,
			the cash band and the monthly reports. Check the ledger reports first
			before answering questions about amounts or balances.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst is an expert grounded on web search, for questions about
// suppliers, clients or market context that the ledger cannot answer.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert financial analyst,
		aware of financial institutions, companies and recent market news.
		Ask the Analyst whenever you need recent or grounding information
		that is not in the ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert financial analyst. You can search and find anything
			related to financial institutions, companies and markets. You leverage
			Google Search to ground your assertions.
		`}}},
		},
	}
}

// NewTreasurer is the expert in charge of the user's ledger. Its tools read
// the store and answer with the markdown reports.
func NewTreasurer(store finco.EntryStore) *Expert {
	lib := []Function{
		cashFlowTool(store),
		cashBandTool(store),
		rankingsTool(store),
	}

	return &Expert{
		Name: "Treasurer",
		Description: `This is the Treasurer. He is in charge of reading the user's
		ledger of settlements. He can compute the cash flow of a month, the position
		of the balance inside the cash band, and the supplier, client and
		classification rankings of a year.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the treasurer in charge of the user's ledger of settlements.
				You use the available tools to compute the relevant figures:
				  - the cash flow statement of a month
				  - the current balance and its position inside the cash band
				  - the top suppliers, clients and expense classifications of a year
				Other experts might ask you questions about the user's cash position,
				pardon their approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a Function from a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

var periodSchema = map[string]*genai.Schema{
	"year": {
		Type:        genai.TypeInteger,
		Description: "The year of the period. Defaults to the current year.",
	},
	"month": {
		Type:        genai.TypeInteger,
		Description: "The month of the period, 1 to 12. Defaults to the current month.",
	},
}

func cashFlowTool(store finco.EntryStore) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CashFlow",
			Description: `CashFlow computes the cash flow statement of a month:
			the opening balance, every settlement with its running balance, the
			inflow and outflow totals and the closing balance.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: periodSchema,
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted cash flow statement.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			year, month := parsePeriod(args)
			cf, err := finco.MonthlyCashFlow(ctx, store, year, month)
			if err != nil {
				return errResponse(id, "CashFlow", err)
			}
			return okResponse(id, "CashFlow", renderer.RenderCashFlow(cf))
		},
	}
}

func cashBandTool(store finco.EntryStore) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CashBand",
			Description: `CashBand computes the current settled balance and where
			it sits inside the configured cash band: below the minimum, within the
			band, or above the maximum.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The balance, the band thresholds and the band position.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			entries, err := store.ListEntries(ctx, finco.EntryFilter{Status: finco.Settled})
			if err != nil {
				return errResponse(id, "CashBand", err)
			}
			thresholds, err := store.Thresholds(ctx)
			if err != nil {
				return errResponse(id, "CashBand", err)
			}
			balance := finco.CurrentBalance(entries)
			band, err := finco.EvaluateBand(balance, thresholds)
			if err != nil {
				return errResponse(id, "CashBand", err)
			}
			out := fmt.Sprintf("Balance: %s, status: %s (%s of the band)\n\n%s",
				band.Balance, band.Status, band.PositionPercent(), renderer.Thresholds(thresholds))
			return okResponse(id, "CashBand", out)
		},
	}
}

func rankingsTool(store finco.EntryStore) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TopRankings",
			Description: `TopRankings lists the top suppliers, clients and expense
			classifications of a year, with amounts and shares.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year": periodSchema["year"],
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Markdown-formatted ranking tables.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			year, _ := parsePeriod(args)
			report, err := finco.NewAnnualReport(ctx, store, year)
			if err != nil {
				return errResponse(id, "TopRankings", err)
			}
			return okResponse(id, "TopRankings", renderer.RenderAnnual(report))
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

// parsePeriod reads optional year and month arguments, defaulting to today.
// Numbers arrive as float64 from the wire.
func parsePeriod(args map[string]any) (int, time.Month) {
	today := finco.Today()
	year, month := today.Year(), today.Month()
	if v, ok := args["year"].(float64); ok && v != 0 {
		year = int(v)
	}
	if v, ok := args["month"].(float64); ok && v >= 1 && v <= 12 {
		month = time.Month(v)
	}
	return year, month
}
