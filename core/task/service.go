package task

import (
	"context"
	"time"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// Service manages the task list.
type Service struct {
	tasks *table.Binding
	now   func() time.Time
}

func NewService(store *table.Store) *Service {
	return &Service{tasks: store.Bind(Schema), now: time.Now}
}

func (svc *Service) Load(ctx context.Context) table.Result {
	return svc.tasks.Load(ctx)
}

func (svc *Service) today() time.Time {
	return core.Today(svc.now())
}

func (svc *Service) QueryAll() []Task {
	rows := svc.tasks.Rows()
	tasks := make([]Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, fromRow(r))
	}
	return tasks
}

func (svc *Service) GetByIndex(i int) (Task, error) {
	r, err := svc.tasks.Row(i)
	if err != nil {
		return Task{}, err
	}
	return fromRow(r), nil
}

func (svc *Service) Create(ctx context.Context, nt NewTask) (Task, table.Result) {
	tsk := Task{
		Task:     nt.Task,
		Subject:  nt.Subject,
		Priority: nt.Priority,
		Notes:    nt.Notes,
	}
	if d, err := core.ParseDate(nt.Deadline); err == nil {
		tsk.Deadline = d
	}
	return tsk, svc.tasks.Append(ctx, tsk.row())
}

// SetDone marks the i-th task done or pending.
func (svc *Service) SetDone(ctx context.Context, i int, done bool) (Task, table.Result, error) {
	var tsk Task
	res, err := svc.tasks.Update(ctx, i, func(r table.Row) {
		r["Status"] = done
		tsk = fromRow(r)
	})
	return tsk, res, err
}

// Toggle flips the i-th task's done status.
func (svc *Service) Toggle(ctx context.Context, i int) (Task, table.Result, error) {
	tsk, err := svc.GetByIndex(i)
	if err != nil {
		return Task{}, table.Result{Table: Schema.Name, Status: table.StatusSkipped}, err
	}
	return svc.SetDone(ctx, i, !tsk.Done)
}

// ClearCompleted removes every done task.
func (svc *Service) ClearCompleted(ctx context.Context) (int, table.Result) {
	return svc.tasks.Remove(ctx, func(r table.Row) bool { return r.Bool("Status") })
}

func (svc *Service) Pending() []Task {
	var pending []Task
	for _, tsk := range svc.QueryAll() {
		if !tsk.Done {
			pending = append(pending, tsk)
		}
	}
	return pending
}

func (svc *Service) PendingCount() int {
	return len(svc.Pending())
}

// PriorityCounts counts pending tasks per priority; every priority is present.
func (svc *Service) PriorityCounts() map[string]int {
	counts := make(map[string]int, len(Priorities))
	for _, p := range Priorities {
		counts[p] = 0
	}
	for _, tsk := range svc.Pending() {
		counts[tsk.Priority]++
	}
	return counts
}

// Focus lists pending tasks due within FocusDays, overdue ones included, in table order.
func (svc *Service) Focus() []Focus {
	today := svc.today()
	var focus []Focus
	for i, tsk := range svc.QueryAll() {
		if tsk.Done || tsk.Deadline.IsZero() {
			continue
		}
		if days := tsk.DaysLeft(today); days <= FocusDays {
			focus = append(focus, Focus{Index: i, Task: tsk, DaysLeft: days, Urgency: tsk.Urgency(today)})
		}
	}
	return focus
}
