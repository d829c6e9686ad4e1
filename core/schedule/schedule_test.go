package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/schedule"
	"github.com/trezcool/somo/tests"
)

var ctx = context.Background()

func TestService_Week(t *testing.T) {
	store, db := testutil.NewStore(t)
	db.Seed(schedule.Schema.Name, []string{"Day", "Subject", "Time"},
		[]string{"Wednesday", "Physics", "10:00"},
		[]string{"Monday", "Math", "08:00"},
		[]string{"Sunday", "Nothing", "00:00"},
	)
	svc := schedule.NewService(store)
	svc.Load(ctx)

	svc.Create(ctx, schedule.NewClass{Day: "Monday", Time: "14:00", Subject: "Chemistry", Location: "Lab 2"})

	week := svc.Week()
	if assert.Len(t, week, 2) {
		assert.Equal(t, "Monday", week[0].Day)
		assert.Equal(t, []string{"Math", "Chemistry"}, []string{week[0].Classes[0].Subject, week[0].Classes[1].Subject})
		assert.Equal(t, "Wednesday", week[1].Day)
		assert.Equal(t, "", week[1].Classes[0].Location)
	}
}

func TestNewClass_Validate(t *testing.T) {
	validate := testutil.NewValidator()
	schedule.InitValidators(validate, core.NewTranslator())

	ok := schedule.NewClass{Day: "Friday", Time: "9am", Subject: "Art"}
	assert.NoError(t, ok.Validate(validate))

	weekend := schedule.NewClass{Day: "Saturday", Time: "9am", Subject: "Art"}
	assert.Error(t, weekend.Validate(validate))

	noSubject := schedule.NewClass{Day: "Friday", Time: "9am"}
	assert.Error(t, noSubject.Validate(validate))
}
