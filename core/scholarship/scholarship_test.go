package scholarship_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/scholarship"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/tests"
)

var ctx = context.Background()

func TestNewScholarship_Validate(t *testing.T) {
	validate := testutil.NewValidator()
	scholarship.InitValidators(validate, core.NewTranslator())

	ns := scholarship.NewScholarship{Name: "Merit award", Bond: "No"}
	if assert.NoError(t, ns.Validate(validate)) {
		assert.Equal(t, scholarship.AppNotStarted, ns.AppStatus)
		assert.Equal(t, scholarship.ResultPending, ns.Result)
	}

	bad := scholarship.NewScholarship{Name: "Merit award", Bond: "Maybe"}
	assert.Error(t, bad.Validate(validate))

	us := scholarship.UpdateScholarship{Result: "Won"}
	assert.Error(t, us.Validate(validate))
	empty := scholarship.UpdateScholarship{}
	assert.NoError(t, empty.Validate(validate))
}

func TestService_Update(t *testing.T) {
	store, _ := testutil.NewStore(t)
	svc := scholarship.NewService(store)
	svc.Load(ctx)
	svc.Create(ctx, scholarship.NewScholarship{
		Name: "Merit award", Bond: "Yes", DueDate: "2026-06-30",
		AppStatus: scholarship.AppInProgress, Result: scholarship.ResultPending,
	})

	tests := []struct {
		name        string
		update      scholarship.UpdateScholarship
		wantChanged bool
		wantResult  string
		wantStatus  string
	}{
		{
			name:       "status only",
			update:     scholarship.UpdateScholarship{AppStatus: scholarship.AppSubmitted},
			wantResult: scholarship.ResultPending,
			wantStatus: scholarship.AppSubmitted,
		},
		{
			name:        "result moves",
			update:      scholarship.UpdateScholarship{Result: scholarship.ResultSuccessful},
			wantChanged: true,
			wantResult:  scholarship.ResultSuccessful,
			wantStatus:  scholarship.AppSubmitted,
		},
		{
			name:       "same result again",
			update:     scholarship.UpdateScholarship{Result: scholarship.ResultSuccessful},
			wantResult: scholarship.ResultSuccessful,
			wantStatus: scholarship.AppSubmitted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chg, res, err := svc.Update(ctx, 0, tt.update)
			if err != nil || !res.OK() {
				t.Fatalf("Update() failed: %v %v", err, res.Err)
			}
			assert.Equal(t, tt.wantChanged, chg.ResultChanged)
			assert.Equal(t, tt.wantResult, chg.Scholarship.Result)
			assert.Equal(t, tt.wantStatus, chg.Scholarship.AppStatus)
		})
	}
	assert.True(t, svc.QueryAll()[0].Decided())

	if _, _, err := svc.Update(ctx, 1, scholarship.UpdateScholarship{}); err != table.ErrRowNotFound {
		t.Errorf("Update(1) err = %v; want %v", err, table.ErrRowNotFound)
	}
	if _, _, err := svc.Update(ctx, 0, scholarship.UpdateScholarship{Result: "Won"}); err == nil {
		t.Error("Update() with invalid result succeeded")
	}
}
