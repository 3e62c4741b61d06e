package search

import "testing"

func TestClassify_KeywordHits(t *testing.T) {
	cases := map[string]string{
		"Show me the sales pipeline for Q3":      IntentSales,
		"how much annual leave do I have left":   IntentHR,
		"When was invoice INV-104 paid?":         IntentFinance,
		"current stock of steel rods":            IntentInventory,
		"defect rate on line 2 this week":        IntentProduction,
		"what can you help me with":              IntentGeneral,
		"":                                       IntentGeneral,
		"bonjour, comment allez-vous aujourd'hui": IntentGeneral,
	}
	for text, want := range cases {
		if got := Classify(text); got != want {
			t.Errorf("Classify(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("PAYROLL run status"); got != IntentHR {
		t.Fatalf("Classify uppercase = %q, want %q", got, IntentHR)
	}
}

func TestClassify_PriorityOrderWins(t *testing.T) {
	// "customer" (sales) and "invoice" (finance) both present: sales is
	// earlier in the rules and must win.
	if got := Classify("customer invoice overdue"); got != IntentSales {
		t.Fatalf("Classify overlap = %q, want %q", got, IntentSales)
	}
	// "order" triggers sales via substring even inside a production question.
	if got := Classify("production order status"); got != IntentSales {
		t.Fatalf("Classify substring = %q, want %q", got, IntentSales)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	const text = "warehouse stock levels"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify not deterministic: %q then %q", first, got)
		}
	}
}

func TestIntents_ClosedSetAndOrder(t *testing.T) {
	got := Intents()
	want := []string{IntentSales, IntentHR, IntentFinance, IntentInventory, IntentProduction, IntentGeneral}
	if len(got) != len(want) {
		t.Fatalf("Intents() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Intents()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
