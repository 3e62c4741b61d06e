// Package services – generative prompt assembly
//
// Builds the system prompt for the generative fallback stage: assistant
// persona, caller identity, recent conversation turns, the ERP integrations
// the caller may use, and a department-specific context blurb.
package services

import (
	"fmt"
	"strings"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// moduleContexts are short factual blurbs about each ERP area, injected into
// the system prompt so the model answers in terms of the actual product.
var moduleContexts = map[string]string{
	"sales":      "NovaERP Sales module handles customer management, quotations, invoicing, and order processing. Sales data includes customer details, product prices, discount schemes, taxes, and payment terms.",
	"purchase":   "NovaERP Purchase module manages vendor relationships, purchase orders, goods receipt, and vendor bills. It includes data on suppliers, purchase prices, and inventory received.",
	"gst":        "GST module in NovaERP handles tax calculations, GST returns, e-invoicing, and compliance. It includes GSTIN validation, HSN codes, and tax rates for different products.",
	"finance":    "Finance module covers accounts receivable, accounts payable, general ledger, and financial reporting. Chart of accounts follows standard accounting principles.",
	"inventory":  "Inventory module tracks stock levels, warehouse management, stock transfers, and inventory valuation. Products have SKUs, batch tracking, and expiry dates where applicable.",
	"production": "Production module handles BOMs, work orders, machine scheduling, and raw material planning. Production processes are defined with input materials, labor, and machine hours.",
	"general":    "NovaERP is an integrated business management system with modules for Sales, Purchase, GST, Finance, Inventory, and Production. The system follows standard business processes and compliance requirements.",
}

// ModuleContext returns the blurb for a department/module tag, falling back
// to the general description.
func ModuleContext(module string) string {
	if c, ok := moduleContexts[strings.ToLower(module)]; ok {
		return c
	}
	return moduleContexts["general"]
}

// PromptContext carries everything the system prompt is assembled from.
type PromptContext struct {
	User         *domain.User
	History      []domain.Query           // newest first; rendered oldest first
	Integrations []domain.ERPIntegration  // integrations visible to the caller
	FAQHint      *domain.FAQ              // near-miss FAQ offered as grounding
}

// BuildSystemPrompt renders the system prompt for the generative stage.
func BuildSystemPrompt(pc PromptContext) string {
	var b strings.Builder

	b.WriteString("You are AskNova, an AI assistant for the NovaERP enterprise resource planning system.\n")
	b.WriteString("You help employees navigate the ERP system and answer their questions about enterprise processes.\n\n")

	name := pc.User.Name
	if name == "" {
		name = "Employee"
	}
	fmt.Fprintf(&b, "User Info:\n- Name: %s\n- Department: %s\n- Role: %s\n\n", name, pc.User.Department, pc.User.Role)

	fmt.Fprintf(&b, "Department context:\n%s\n\n", ModuleContext(pc.User.Department))

	if len(pc.History) > 0 {
		b.WriteString("Recent conversation history:\n")
		for i := len(pc.History) - 1; i >= 0; i-- {
			h := pc.History[i]
			fmt.Fprintf(&b, "User: %s\nAskNova: %s\n", h.Prompt, h.Response)
		}
		b.WriteString("\n")
	}

	if len(pc.Integrations) > 0 {
		b.WriteString("Available ERP modules:\n")
		for _, e := range pc.Integrations {
			fmt.Fprintf(&b, "- %s (%s): %s\n", e.Module, e.Name, e.Description)
		}
		b.WriteString("\n")
	}

	if pc.FAQHint != nil {
		fmt.Fprintf(&b, "Possibly relevant FAQ:\nQ: %s\nA: %s\n\n", pc.FAQHint.Question, pc.FAQHint.Answer)
	}

	b.WriteString("When answering:\n")
	b.WriteString("1. Be concise and professional\n")
	b.WriteString("2. For data-specific queries, mention you can fetch real-time ERP data\n")
	b.WriteString("3. For complex process questions, provide step-by-step instructions\n")
	b.WriteString("4. If you don't know, suggest escalation to a human agent\n")

	return b.String()
}
