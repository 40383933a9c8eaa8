package dialogue

import "testing"

func TestExtractGroceryBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"currency prefix", "I need groceries for R1000", 1000, true},
		{"currency prefix with space", "groceries for R 750 please", 750, true},
		{"prefix wins over smaller numbers", "R1000 for 4 people", 1000, true},
		{"prefix wins over larger numbers", "R300 even though we are 600 strong", 300, true},
		{"dollar prefix", "weekly shop for $120", 120, true},
		{"budget keyword", "my budget 600 for the week", 600, true},
		{"budget keyword with symbol", "budget R850", 850, true},
		{"bare large number", "plan groceries, 500 should do", 500, true},
		{"max of plausible numbers", "between 200 and 650 somewhere", 650, true},
		{"below threshold excluded", "groceries for 4 people", 0, false},
		{"no numbers", "plan my weekly groceries", 0, false},
		{"currency amount below threshold", "R40 groceries", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractGroceryBudget(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("budget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractTakeoutBudget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"currency amount", "I want a burger for R100", 100},
		{"bare amount", "pizza 80", 80},
		{"no amount defaults", "I'm hungry", defaultTakeoutBudget},
		{"first amount wins", "burger for R60 or maybe 200", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTakeoutBudget(tt.input); got != tt.want {
				t.Errorf("budget = %v, want %v", got, tt.want)
			}
		})
	}
}
