package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iamhamptom/foodfriend/pkg/llm"
)

// PlanParams describes one meal-plan request.
type PlanParams struct {
	Days         int      `json:"days"`
	People       int      `json:"people"`
	Diet         string   `json:"diet"`
	Allergies    []string `json:"allergies"`
	BudgetAmount float64  `json:"budget_amount"`
	Currency     string   `json:"currency"`
}

// Ingredient is one shopping-list line produced by the model.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Meal is one slot in the plan (breakfast, lunch, dinner).
type Meal struct {
	Day         int          `json:"day"`
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
}

// MealPlan is the model's structured response.
type MealPlan struct {
	Title string `json:"title"`
	Meals []Meal `json:"meals"`
}

// Planner turns plan parameters into a structured meal plan via an LLM.
type Planner struct {
	provider llm.LLMProvider
}

func NewPlanner(provider llm.LLMProvider) *Planner {
	return &Planner{provider: provider}
}

const systemPrompt = `You are an expert personal chef and nutritionist.
Your goal is to create a detailed, healthy, and budget-conscious meal plan.
Output MUST be valid JSON matching the specified schema.
Do not include markdown formatting like ` + "```json" + `.`

func userPrompt(params PlanParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day meal plan for %d people.\n", params.Days, params.People)
	fmt.Fprintf(&b, "Diet: %s\n", params.Diet)
	fmt.Fprintf(&b, "Allergies: %s\n", strings.Join(params.Allergies, ", "))
	fmt.Fprintf(&b, "Budget Target: %s %.0f\n\n", params.Currency, params.BudgetAmount)
	b.WriteString(`Provide 3 meals (Breakfast, Lunch, Dinner) per day.

Response Schema:
{
  "title": "Strategy for the plan",
  "meals": [
    {
       "day": 1,
       "type": "breakfast",
       "title": "Meal Name",
       "description": "Short description",
       "ingredients": [{ "name": "item", "quantity": 1, "unit": "kg" }]
    }
  ]
}`)
	return b.String()
}

// GeneratePlan asks the model for a plan and parses its JSON response.
func (p *Planner) GeneratePlan(ctx context.Context, params PlanParams) (*MealPlan, error) {
	if params.Days <= 0 {
		params.Days = 7
	}
	if params.People <= 0 {
		params.People = 1
	}

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt(params)},
	}

	raw, err := p.provider.Chat(ctx, history, llm.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("meal plan generation failed: %w", err)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		return nil, fmt.Errorf("meal plan parse failed: %w", err)
	}
	return plan, nil
}

// parsePlan tolerates models that wrap JSON in a markdown fence despite the
// system prompt telling them not to.
func parsePlan(raw string) (*MealPlan, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var plan MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, err
	}
	if len(plan.Meals) == 0 {
		return nil, fmt.Errorf("model returned no meals")
	}
	return &plan, nil
}
