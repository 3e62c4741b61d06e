// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file seeds the reference tables (FAQ entries and ERP
// integration descriptors) with a starter set on first run, so a fresh
// database can resolve questions without an administrator loading data
// first.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// SeedReferenceData inserts the default FAQ entries and ERP integration
// descriptors when their tables are empty. Existing rows are left untouched.
func SeedReferenceData(ctx context.Context, db *gorm.DB) error {
	var faqCount int64
	if err := db.WithContext(ctx).Model(&domain.FAQ{}).Count(&faqCount).Error; err != nil {
		return err
	}
	if faqCount == 0 {
		for i := range defaultFAQs {
			if _, err := CreateFAQ(ctx, db, &defaultFAQs[i]); err != nil {
				return err
			}
		}
	}

	var erpCount int64
	if err := db.WithContext(ctx).Model(&domain.ERPIntegration{}).Count(&erpCount).Error; err != nil {
		return err
	}
	if erpCount == 0 {
		for i := range defaultIntegrations {
			if _, err := CreateIntegration(ctx, db, &defaultIntegrations[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

var defaultFAQs = []domain.FAQ{
	{
		Department: "gst",
		Category:   "transaction",
		Question:   "How to generate GST invoice?",
		Answer:     "To generate a GST invoice in NovaERP: 1) Go to Sales > Invoices, 2) Click 'Create New Invoice', 3) Select the customer and add products, 4) Verify the GST rates and HSN codes, 5) Click 'Generate Invoice'. The system will automatically calculate CGST, SGST, or IGST based on the customer's location.",
		Keywords:   []string{"gst", "invoice", "tax"},
	},
	{
		Department: "sales",
		Category:   "report",
		Question:   "Where can I see pending orders?",
		Answer:     "To view pending orders: 1) Navigate to Sales > Orders dashboard, 2) Look for the 'Pending Orders' section or use the filter option to select 'Status: Pending'. You can also access the comprehensive pending orders report from Reports > Sales > Pending Orders Report.",
		Keywords:   []string{"sales", "orders", "pending"},
	},
	{
		Department: "inventory",
		Category:   "report",
		Question:   "How to check inventory status?",
		Answer:     "To check inventory status: 1) Go to Inventory > Dashboard to see overall stock levels, 2) For specific items, go to Inventory > Stock Query and enter the product code/name, 3) The system will display current stock, allocated quantity, available quantity, and reorder level information.",
		Keywords:   []string{"inventory", "stock", "status"},
	},
	{
		Department: "purchase",
		Category:   "process",
		Question:   "What is the process for return goods?",
		Answer:     "To process returned goods: 1) Go to Purchase > Return Orders, 2) Click 'Create New Return', 3) Select the original purchase order or add items manually, 4) Enter return quantity and reason, 5) Submit for approval. Once approved, the system will update inventory and generate a credit note if required.",
		Keywords:   []string{"purchase", "returns"},
	},
	{
		Department: "sales",
		Category:   "master_data",
		Question:   "How to create a new customer?",
		Answer:     "To create a new customer: 1) Navigate to Sales > Customers, 2) Click 'Add New Customer', 3) Fill in mandatory fields including name, contact information, billing/shipping address, and GSTIN, 4) Set payment terms and credit limit if applicable, 5) Click 'Save'. The customer will now be available for selection in sales transactions.",
		Keywords:   []string{"sales", "customer"},
	},
}

var defaultIntegrations = []domain.ERPIntegration{
	{
		Module:      "hr",
		Name:        "Employee Leave Balance",
		Description: "Get current leave balance for an employee",
		Endpoint:    "/hr/employee/leave-balance",
		Method:      "GET",
		Parameters: []domain.ParamSpec{
			{Name: "employeeId", Type: "string", Description: "Employee ID number", Required: true},
		},
		ResponseMapping: map[string]string{
			"employeeName": "name",
			"annualLeave":  "leaveBalance.annual",
			"sickLeave":    "leaveBalance.sick",
			"casualLeave":  "leaveBalance.casual",
		},
		AccessRoles: []string{"employee", "manager", "hr", "admin"},
	},
	{
		Module:      "finance",
		Name:        "Invoice Status",
		Description: "Check the status of an invoice",
		Endpoint:    "/finance/invoice/status",
		Method:      "GET",
		Parameters: []domain.ParamSpec{
			{Name: "invoiceNumber", Type: "string", Description: "Invoice number", Required: true},
		},
		AccessRoles: []string{"finance", "admin", "manager"},
	},
	{
		Module:      "sales",
		Name:        "Sales Dashboard Data",
		Description: "Get sales dashboard data for reporting",
		Endpoint:    "/sales/dashboard",
		Method:      "GET",
		Parameters: []domain.ParamSpec{
			{Name: "period", Type: "string", Description: "Reporting period (daily, weekly, monthly, yearly)", Required: true},
			{Name: "startDate", Type: "date", Description: "Start date for the report", Required: true},
			{Name: "endDate", Type: "date", Description: "End date for the report", Required: false},
		},
		AccessRoles: []string{"sales", "manager", "admin"},
	},
	{
		Module:      "inventory",
		Name:        "Stock Levels",
		Description: "Current stock levels by location and category",
		Endpoint:    "/inventory/stock",
		Method:      "GET",
		Parameters: []domain.ParamSpec{
			{Name: "location", Type: "string", Description: "Warehouse location", Required: false},
			{Name: "category", Type: "string", Description: "Product category", Required: false},
		},
		AccessRoles: []string{"all"},
	},
}
