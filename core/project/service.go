package project

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

var ErrInvalidStatus = errors.New("invalid project status")

type Service struct {
	projects *table.Binding
}

func NewService(store *table.Store) *Service {
	return &Service{projects: store.Bind(Schema)}
}

func (svc *Service) Load(ctx context.Context) table.Result {
	return svc.projects.Load(ctx)
}

func (svc *Service) QueryAll() []Project {
	rows := svc.projects.Rows()
	projects := make([]Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, fromRow(r))
	}
	return projects
}

// Create adds a project; new projects are Not Started.
func (svc *Service) Create(ctx context.Context, np NewProject) (Project, table.Result) {
	prj := Project{
		Name:    np.Name,
		Subject: np.Subject,
		Members: SplitMembers(np.Members),
		Status:  StatusNotStarted,
	}
	if d, err := core.ParseDate(np.DueDate); err == nil {
		prj.DueDate = d
	}
	return prj, svc.projects.Append(ctx, prj.row())
}

// SetStatus updates the i-th project's progress status.
func (svc *Service) SetStatus(ctx context.Context, i int, status string) (Project, table.Result, error) {
	if !core.IsChoice(status, Statuses) {
		return Project{}, table.Result{Table: Schema.Name, Status: table.StatusSkipped}, errors.Wrapf(ErrInvalidStatus, "%q", status)
	}
	var prj Project
	res, err := svc.projects.Update(ctx, i, func(r table.Row) {
		r["Status"] = status
		prj = fromRow(r)
	})
	return prj, res, err
}

// CountByStatus counts projects per progress status; every status is present.
func (svc *Service) CountByStatus() map[string]int {
	counts := make(map[string]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, prj := range svc.QueryAll() {
		counts[prj.Status]++
	}
	return counts
}
