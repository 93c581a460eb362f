package agent

import (
	"context"
	"fmt"

	"github.com/ymgch/shisan"
	"github.com/ymgch/shisan/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and fully dedicated to you; they keep context of your previous questions.

			The user is here primarily to get information about the holdings of his investment portfolio.
			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume you already checked his portfolio and know what he holds.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market expert, grounded in search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions,
		and of the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can find out about anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions, and you know how to relate the latest news to the
			user's request. The user is Japanese; his reporting currency is JPY.
				`}}},
		},
	}
}

// NewAccountant returns the expert in charge of reading the user's
// portfolio, with tools over the given store.
func NewAccountant(store *shisan.Store, policy shisan.KeyPolicy) *Expert {
	lib := []Function{
		holdingsTool(store, policy),
		summaryTool(store, policy),
		gainsTool(store),
	}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He reads the user's portfolio and can report
		its holdings, its valuation summary and its sell history.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's investment portfolio.
				Use the available tools to extract relevant information about the
				holdings, their valuation and the realized gains. Other experts might
				ask you questions with approximative wording; figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// load reads everything a tool needs from the store.
func load(store *shisan.Store, policy shisan.KeyPolicy) (*shisan.Ledger, []shisan.Holding, shisan.Snapshots, shisan.Rates, error) {
	ledger, err := store.LoadLedger()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("could not load ledger: %w", err)
	}
	snaps, err := store.LoadSnapshots()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("could not load snapshots: %w", err)
	}
	rates := shisan.Rates{}
	if db, err := store.LoadPrices(); err == nil {
		if rate, ok := db.RateOn(shisan.Today()); ok {
			rates["USD"] = rate
		}
	}
	return ledger, ledger.Consolidate(policy), snaps, rates, nil
}

// toolResponse wraps a rendered report or an error for the model.
func toolResponse(id, name, output string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name}
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
		return fresp
	}
	fresp.Response = map[string]any{"output": output}
	return fresp
}

func holdingsTool(store *shisan.Store, policy shisan.KeyPolicy) Function {
	const name = "Holdings"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Holdings lists all active holdings of the portfolio with their
			quantity, average cost, current price, value and unrealized profit or loss.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the active holdings.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			_, holdings, _, rates, err := load(store, policy)
			if err != nil {
				return toolResponse(id, name, "", err)
			}
			return toolResponse(id, name, renderer.HoldingsMarkdown(holdings, rates, shisan.Today()), nil)
		},
	}
}

func summaryTool(store *shisan.Store, policy shisan.KeyPolicy) Function {
	const name = "Summary"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Summary reports the total portfolio value in JPY and USD, the
			unrealized and realized profit or loss, and the day, week, month and
			year-to-date performance.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown summary of the portfolio.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, holdings, snaps, rates, err := load(store, policy)
			if err != nil {
				return toolResponse(id, name, "", err)
			}
			out := renderer.SummaryMarkdown(ledger, holdings, snaps, rates, nil, shisan.Today())
			return toolResponse(id, name, out, nil)
		},
	}
}

func gainsTool(store *shisan.Store) Function {
	const name = "Gains"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Gains lists every past sale with its realized profit or loss,
			and the realized total.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the sell history.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, err := store.LoadLedger()
			if err != nil {
				return toolResponse(id, name, "", fmt.Errorf("could not load ledger: %w", err))
			}
			return toolResponse(id, name, renderer.GainsMarkdown(ledger, shisan.Rates{}), nil)
		},
	}
}
