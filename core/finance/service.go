package finance

import (
	"context"
	"time"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

type Service struct {
	txs *table.Binding
	now func() time.Time
}

func NewService(store *table.Store) *Service {
	return &Service{txs: store.Bind(Schema), now: time.Now}
}

func (svc *Service) Load(ctx context.Context) table.Result {
	return svc.txs.Load(ctx)
}

func (svc *Service) QueryAll() []Transaction {
	rows := svc.txs.Rows()
	txs := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, fromRow(r))
	}
	return txs
}

func (svc *Service) Create(ctx context.Context, nt NewTransaction) (Transaction, table.Result) {
	tx := Transaction{
		Date:        core.Today(svc.now()),
		Type:        nt.Type,
		Category:    nt.Category,
		Amount:      nt.Amount,
		Description: nt.Description,
	}
	if d, err := core.ParseDate(nt.Date); err == nil {
		tx.Date = d
	}
	return tx, svc.txs.Append(ctx, tx.row())
}

func (svc *Service) Summary() Summary {
	return Summarize(svc.QueryAll())
}

// Balance is total income minus total expenses.
func (svc *Service) Balance() float64 {
	return svc.Summary().Balance
}
