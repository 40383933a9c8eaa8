package main

import (
	"fmt"
	"strings"

	"github.com/Iamhamptom/foodfriend/pkg/catalog"
	"github.com/Iamhamptom/foodfriend/pkg/dialogue"
	"github.com/Iamhamptom/foodfriend/pkg/store"

	"github.com/fatih/color"
)

// Scripted conversation replay against the in-process dialogue engine.
// Useful for eyeballing the full onboarding-to-checkout flow without a
// running server.
func main() {
	fmt.Println("=== FoodFriend Dialogue Simulation ===")

	engine := dialogue.NewEngine(catalog.NewRegistry())
	session := engine.NewSession()

	printAssistant(session.Messages)

	script := []string{
		"Alice",
		"Cape Town",
		"ZAR",
		"checkers",
		"done",
		"allow",
		"skip_tools",
		"I want a burger for R100",
		"order_p2",
		"checkout",
	}

	for _, input := range script {
		prevCount := len(session.Messages)

		color.Cyan("\nUSER: %s", input)
		session = engine.Advance(session, input)

		// Skip the echoed user message itself
		printAssistant(session.Messages[prevCount+1:])
		color.Yellow("   [state=%s cart=%d]", session.State, len(session.Cart))
	}
}

func printAssistant(messages []store.Message) {
	for _, m := range messages {
		if m.Role != store.RoleAssistant {
			continue
		}
		color.Green("AI: %s", m.Content)

		switch {
		case m.Data != nil && m.Data.StoreGrid != nil:
			for _, s := range m.Data.StoreGrid.Stores {
				mark := " "
				if s.Connected {
					mark = "x"
				}
				fmt.Printf("    [%s] %s (%s)\n", mark, s.Name, s.Key)
			}
		case m.Data != nil && m.Data.ProductList != nil:
			for _, p := range m.Data.ProductList.Products {
				fmt.Printf("    %s - %s @ %s R%.2f (%s)\n", p.ID, p.Name, p.Store, p.Price, p.ETA)
			}
		case m.Data != nil && m.Data.GroceryList != nil:
			for _, g := range m.Data.GroceryList.Groups {
				fmt.Printf("    %s:\n", g.Category)
				for _, item := range g.Items {
					fmt.Printf("      %s @ %s R%.2f\n", item.Name, item.Store, item.Price)
				}
			}
			fmt.Printf("    Total: R%.2f\n", m.Data.GroceryList.Total)
		case m.Data != nil && m.Data.Checkout != nil:
			for _, item := range m.Data.Checkout.Items {
				fmt.Printf("    %dx %s R%.2f\n", item.Quantity, item.Name, item.Price)
			}
			fmt.Printf("    Total: R%.2f (%s)\n", m.Data.Checkout.Total, m.Data.Checkout.Store)
		}

		if len(m.Actions) > 0 {
			var labels []string
			for _, a := range m.Actions {
				labels = append(labels, fmt.Sprintf("%s(%s)", a.Label, a.Value))
			}
			fmt.Printf("    actions: %s\n", strings.Join(labels, " | "))
		}
	}
}
