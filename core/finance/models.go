package finance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// Transaction types
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

var (
	Types      = []string{TypeIncome, TypeExpense}
	Categories = []string{"Food", "Business", "Transport", "Study Materials", "Personal", "Others"}

	Schema = table.Schema{
		Name:    "Finances",
		Columns: []string{"Date", "Type", "Category", "Amount", "Description"},
		Floats:  []string{"Amount"},
	}
)

type Transaction struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

func fromRow(r table.Row) Transaction {
	return Transaction{
		Date:        r.Date("Date"),
		Type:        r.String("Type"),
		Category:    r.String("Category"),
		Amount:      r.Float("Amount"),
		Description: r.String("Description"),
	}
}

func (tx Transaction) row() table.Row {
	return table.Row{
		"Date":        core.FormatDate(tx.Date),
		"Type":        tx.Type,
		"Category":    tx.Category,
		"Amount":      tx.Amount,
		"Description": tx.Description,
	}
}

// NewTransaction contains information needed to record a transaction. Date defaults to today.
type NewTransaction struct {
	Date        string  `json:"date" validate:"omitempty,date"`
	Type        string  `json:"type" validate:"required,tx_type"`
	Category    string  `json:"category" validate:"required,tx_category"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description"`
}

func (nt *NewTransaction) Validate(validate *validator.Validate) error {
	nt.Date = core.CleanString(nt.Date)
	nt.Type = core.CleanString(nt.Type)
	nt.Category = core.CleanString(nt.Category)
	nt.Description = core.CleanString(nt.Description)
	return validate.Struct(nt)
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	// ByCategory breaks expenses down per category, categories in order of first appearance.
	ByCategory []CategoryTotal `json:"by_category"`
}

// Summarize totals `txs`. Rows of an unknown type count towards neither side.
func Summarize(txs []Transaction) Summary {
	var sum Summary
	idx := make(map[string]int)
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			sum.Income += tx.Amount
		case TypeExpense:
			sum.Expenses += tx.Amount
			i, ok := idx[tx.Category]
			if !ok {
				i = len(sum.ByCategory)
				idx[tx.Category] = i
				sum.ByCategory = append(sum.ByCategory, CategoryTotal{Category: tx.Category})
			}
			sum.ByCategory[i].Total += tx.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expenses
	return sum
}
