package task

import (
	"time"

	"github.com/trezcool/somo/core/table"
)

// NewServiceAt returns a Service whose "today" is fixed at `now`.
func NewServiceAt(store *table.Store, now time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc
}
