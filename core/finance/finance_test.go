package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/finance"
	"github.com/trezcool/somo/tests"
)

var ctx = context.Background()

func TestSummarize(t *testing.T) {
	txs := []finance.Transaction{
		{Type: finance.TypeIncome, Category: "Business", Amount: 500},
		{Type: finance.TypeExpense, Category: "Transport", Amount: 20},
		{Type: finance.TypeExpense, Category: "Food", Amount: 12.5},
		{Type: finance.TypeExpense, Category: "Transport", Amount: 5},
		{Type: "", Category: "Food", Amount: 99},
	}
	sum := finance.Summarize(txs)
	assert.Equal(t, 500.0, sum.Income)
	assert.Equal(t, 37.5, sum.Expenses)
	assert.Equal(t, 462.5, sum.Balance)
	assert.Equal(t, []finance.CategoryTotal{
		{Category: "Transport", Total: 25},
		{Category: "Food", Total: 12.5},
	}, sum.ByCategory)

	empty := finance.Summarize(nil)
	assert.Zero(t, empty.Balance)
	assert.Empty(t, empty.ByCategory)
}

func TestNewTransaction_Validate(t *testing.T) {
	validate := testutil.NewValidator()
	finance.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		nt      finance.NewTransaction
		wantErr bool
	}{
		{name: "valid", nt: finance.NewTransaction{Type: "Expense", Category: "Study Materials", Amount: 30}},
		{name: "zero amount", nt: finance.NewTransaction{Type: "Expense", Category: "Food", Amount: 0}, wantErr: true},
		{name: "negative amount", nt: finance.NewTransaction{Type: "Income", Category: "Business", Amount: -4}, wantErr: true},
		{name: "unknown type", nt: finance.NewTransaction{Type: "Loan", Category: "Food", Amount: 4}, wantErr: true},
		{name: "unknown category", nt: finance.NewTransaction{Type: "Income", Category: "Gifts", Amount: 4}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nt.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService(t *testing.T) {
	store, db := testutil.NewStore(t)
	svc := finance.NewService(store)
	svc.Load(ctx)

	tx, res := svc.Create(ctx, finance.NewTransaction{Type: "Income", Category: "Business", Amount: 120.25})
	if !res.OK() {
		t.Fatalf("Create() failed: %v", res.Err)
	}
	assert.Equal(t, core.Today(time.Now()), tx.Date)
	svc.Create(ctx, finance.NewTransaction{Date: "2026-01-05", Type: "Expense", Category: "Food", Amount: 20})

	assert.Equal(t, 100.25, svc.Balance())

	_, rows, _ := db.Dump(finance.Schema.Name)
	assert.Equal(t, []string{"2026-01-05", "Expense", "Food", "20", ""}, rows[1])

	reloaded := finance.NewService(store)
	reloaded.Load(ctx)
	assert.Equal(t, svc.QueryAll(), reloaded.QueryAll())
}
