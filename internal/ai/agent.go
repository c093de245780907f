package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resto-pos/internal/pos"
	"resto-pos/internal/store"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Agent is the back-office assistant. It answers questions about the menu,
// the stock room and the books by calling read-only tools against the same
// repository the handlers use. It never writes.
type Agent struct {
	repo     store.Repository
	reporter *pos.Reporter
	apiKey   string
}

func NewAgent(repo store.Repository, reporter *pos.Reporter, apiKey string) *Agent {
	return &Agent{repo: repo, reporter: reporter, apiKey: apiKey}
}

func (a *Agent) Enabled() bool { return a.apiKey != "" }

func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are a restaurant back-office assistant.

RULES:
1. MENU: For questions about dishes, prices or recipes, call 'check_menu'.
2. STOCK: For questions about ingredients or what is running low, call 'check_inventory'.
3. MONEY: For sales, costs, expenses or profit, call 'get_financial_report'.
4. Answer from the tool data. Do NOT say you cannot access the system.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_menu",
					Description: "Get the full menu with prices, categories and recipes.",
				},
				{
					Name:        "check_inventory",
					Description: "Get every ingredient with quantity on hand, unit, cost per unit and minimum level.",
				},
				{
					Name:        "get_financial_report",
					Description: "Get total sales, cost of goods, expenses and net balance for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// One round of tool calls is enough for every question the tools cover.
	for _, part := range resp.Candidates[0].Content.Parts {
		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			continue
		}
		result, err := a.callTool(funcCall)
		if err != nil {
			return "", err
		}
		finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
			Name:     funcCall.Name,
			Response: result,
		})
		if err != nil {
			return "", err
		}
		return printResponse(finalResp), nil
	}

	return printResponse(resp), nil
}

func (a *Agent) callTool(funcCall genai.FunctionCall) (map[string]interface{}, error) {
	switch funcCall.Name {
	case "check_menu":
		items, err := a.repo.MenuItems()
		if err != nil {
			return nil, err
		}
		return jsonPayload("menu", items)

	case "check_inventory":
		ingredients, err := a.repo.Ingredients()
		if err != nil {
			return nil, err
		}
		return jsonPayload("inventory", ingredients)

	case "get_financial_report":
		start, err1 := time.Parse("2006-01-02", stringArg(funcCall.Args, "start_date"))
		end, err2 := time.Parse("2006-01-02", stringArg(funcCall.Args, "end_date"))
		if err1 != nil || err2 != nil {
			return map[string]interface{}{"error": "dates must be in YYYY-MM-DD format"}, nil
		}
		report, err := a.reporter.Generate(start, end)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"total_sales":         report.TotalSales,
			"total_cost_of_goods": report.TotalCostOfGoods,
			"total_expenses":      report.TotalExpenses,
			"net_balance":         report.NetBalance,
		}, nil

	default:
		return map[string]interface{}{"error": "unknown tool " + funcCall.Name}, nil
	}
}

func jsonPayload(key string, v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{key: string(raw)}, nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
