package scholarship

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

var (
	ErrInvalidAppStatus = errors.New("invalid application status")
	ErrInvalidResult    = errors.New("invalid result")
)

type Service struct {
	apps *table.Binding
}

func NewService(store *table.Store) *Service {
	return &Service{apps: store.Bind(Schema)}
}

func (svc *Service) Load(ctx context.Context) table.Result {
	return svc.apps.Load(ctx)
}

func (svc *Service) QueryAll() []Scholarship {
	rows := svc.apps.Rows()
	apps := make([]Scholarship, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, fromRow(r))
	}
	return apps
}

func (svc *Service) Create(ctx context.Context, ns NewScholarship) (Scholarship, table.Result) {
	s := Scholarship{Name: ns.Name, Bond: ns.Bond, AppStatus: ns.AppStatus, Result: ns.Result}
	if d, err := core.ParseDate(ns.DueDate); err == nil {
		s.DueDate = d
	}
	return s, svc.apps.Append(ctx, s.row())
}

// Update applies `us` to the i-th application.
func (svc *Service) Update(ctx context.Context, i int, us UpdateScholarship) (Change, table.Result, error) {
	skipped := table.Result{Table: Schema.Name, Status: table.StatusSkipped}
	if us.AppStatus != "" && !core.IsChoice(us.AppStatus, AppStatuses) {
		return Change{}, skipped, errors.Wrapf(ErrInvalidAppStatus, "%q", us.AppStatus)
	}
	if us.Result != "" && !core.IsChoice(us.Result, Results) {
		return Change{}, skipped, errors.Wrapf(ErrInvalidResult, "%q", us.Result)
	}

	var chg Change
	res, err := svc.apps.Update(ctx, i, func(r table.Row) {
		chg.PrevResult = r.String("Result")
		if us.AppStatus != "" {
			r["App Status"] = us.AppStatus
		}
		if us.Result != "" {
			r["Result"] = us.Result
		}
		chg.Scholarship = fromRow(r)
		chg.ResultChanged = chg.Scholarship.Result != chg.PrevResult
	})
	return chg, res, err
}
