package echoapi

import (
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/somo/core/task"
)

var orderingParam = "ordering"

type (
	OrderField struct {
		Field     string
		Ascending bool
	}

	// Ordering is read from `?ordering=field,-field`; a leading "-" sorts descending.
	Ordering struct {
		Fields []OrderField
	}
)

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Fields = append(ord.Fields, OrderField{Field: field, Ascending: !descending})
	}
}

// comparer compares one field: <0, 0 or >0. Unknown fields compare equal.
type comparer func(a, b TaskView, field string) int

func compareTasks(a, b TaskView, field string) int {
	switch field {
	case "deadline":
		// no deadline sorts last
		switch {
		case a.Deadline.Equal(b.Deadline):
			return 0
		case a.Deadline.IsZero():
			return 1
		case b.Deadline.IsZero():
			return -1
		case a.Deadline.Before(b.Deadline):
			return -1
		default:
			return 1
		}
	case "priority":
		return priorityRank(a.Priority) - priorityRank(b.Priority)
	case "subject":
		return strings.Compare(strings.ToLower(a.Subject), strings.ToLower(b.Subject))
	case "task":
		return strings.Compare(strings.ToLower(a.Task.Task), strings.ToLower(b.Task.Task))
	case "done":
		return boolRank(a.Done) - boolRank(b.Done)
	default:
		return 0
	}
}

func priorityRank(p string) int {
	for i, prio := range task.Priorities {
		if prio == p {
			return i
		}
	}
	return len(task.Priorities)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Sort orders the views in place; ties keep the table order.
func (ord Ordering) Sort(views []TaskView, cmp comparer) {
	if len(ord.Fields) == 0 {
		return
	}
	sort.SliceStable(views, func(i, j int) bool {
		for _, f := range ord.Fields {
			c := cmp(views[i], views[j], f.Field)
			if c == 0 {
				continue
			}
			if f.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}
