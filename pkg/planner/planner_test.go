package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/Iamhamptom/foodfriend/pkg/llm"
)

type stubProvider struct {
	response string
	lastChat []llm.Message
}

func (s *stubProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.lastChat = history
	return s.response, nil
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

const samplePlan = `{
  "title": "Budget week",
  "meals": [
    {"day": 1, "type": "breakfast", "title": "Oats", "description": "Quick oats",
     "ingredients": [{"name": "oats", "quantity": 0.5, "unit": "kg"}]}
  ]
}`

func TestGeneratePlanParsesResponse(t *testing.T) {
	stub := &stubProvider{response: samplePlan}
	p := NewPlanner(stub)

	plan, err := p.GeneratePlan(context.Background(), PlanParams{
		Days: 7, People: 2, Diet: "none", BudgetAmount: 500, Currency: "R",
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.Title != "Budget week" {
		t.Errorf("title = %q", plan.Title)
	}
	if len(plan.Meals) != 1 || plan.Meals[0].Ingredients[0].Name != "oats" {
		t.Errorf("meals = %+v", plan.Meals)
	}
}

func TestGeneratePlanPromptIncludesConstraints(t *testing.T) {
	stub := &stubProvider{response: samplePlan}
	p := NewPlanner(stub)

	_, err := p.GeneratePlan(context.Background(), PlanParams{
		Days: 3, People: 4, Diet: "vegetarian",
		Allergies: []string{"nuts", "shellfish"},
		BudgetAmount: 800, Currency: "R",
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(stub.lastChat) != 2 || stub.lastChat[0].Role != "system" {
		t.Fatalf("history = %+v", stub.lastChat)
	}
	user := stub.lastChat[1].Content
	for _, want := range []string{"3-day", "4 people", "vegetarian", "nuts, shellfish", "R 800"} {
		if !strings.Contains(user, want) {
			t.Errorf("prompt missing %q:\n%s", want, user)
		}
	}
}

func TestParsePlanStripsMarkdownFence(t *testing.T) {
	plan, err := parsePlan("```json\n" + samplePlan + "\n```")
	if err != nil {
		t.Fatalf("parsePlan: %v", err)
	}
	if plan.Title != "Budget week" {
		t.Errorf("title = %q", plan.Title)
	}
}

func TestParsePlanRejectsEmptyMeals(t *testing.T) {
	if _, err := parsePlan(`{"title": "x", "meals": []}`); err == nil {
		t.Fatal("expected error for empty meals")
	}
}

func TestGeneratePlanDefaults(t *testing.T) {
	stub := &stubProvider{response: samplePlan}
	p := NewPlanner(stub)

	if _, err := p.GeneratePlan(context.Background(), PlanParams{Currency: "R"}); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	user := stub.lastChat[1].Content
	if !strings.Contains(user, "7-day") || !strings.Contains(user, "1 people") {
		t.Errorf("defaults not applied:\n%s", user)
	}
}
