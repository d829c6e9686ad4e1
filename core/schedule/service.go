package schedule

import (
	"context"

	"github.com/trezcool/somo/core/table"
)

type Service struct {
	classes *table.Binding
}

func NewService(store *table.Store) *Service {
	return &Service{classes: store.Bind(Schema)}
}

func (svc *Service) Load(ctx context.Context) table.Result {
	return svc.classes.Load(ctx)
}

func (svc *Service) QueryAll() []Class {
	rows := svc.classes.Rows()
	classes := make([]Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, fromRow(r))
	}
	return classes
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, table.Result) {
	c := Class{Day: nc.Day, Time: nc.Time, Subject: nc.Subject, Location: nc.Location}
	return c, svc.classes.Append(ctx, c.row())
}

// Week groups classes by weekday, Monday first; days without classes are omitted.
// Classes keep their table order within a day. Rows with an unknown day are left out.
func (svc *Service) Week() []Day {
	byDay := make(map[string][]Class)
	for _, c := range svc.QueryAll() {
		byDay[c.Day] = append(byDay[c.Day], c)
	}
	week := make([]Day, 0, len(Weekdays))
	for _, d := range Weekdays {
		if classes := byDay[d]; len(classes) > 0 {
			week = append(week, Day{Day: d, Classes: classes})
		}
	}
	return week
}
