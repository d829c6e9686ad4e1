package project_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/project"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/tests"
)

var ctx = context.Background()

func TestSplitMembers(t *testing.T) {
	assert.Equal(t, []string{"Ana", "Ben"}, project.SplitMembers(" Ana, ,Ben ,"))
	assert.Empty(t, project.SplitMembers(""))
}

func TestService(t *testing.T) {
	store, db := testutil.NewStore(t)
	svc := project.NewService(store)
	assert.Equal(t, table.StatusCreated, svc.Load(ctx).Status)

	prj, res := svc.Create(ctx, project.NewProject{Name: "Robot", Subject: "Mechatronics", Members: "Ana, Ben", DueDate: "2026-05-01"})
	if !res.OK() {
		t.Fatalf("Create() failed: %v", res.Err)
	}
	assert.Equal(t, project.StatusNotStarted, prj.Status)

	_, rows, _ := db.Dump(project.Schema.Name)
	assert.Equal(t, [][]string{{"Robot", "Mechatronics", "Ana, Ben", "Not Started", "2026-05-01"}}, rows)

	prj, _, err := svc.SetStatus(ctx, 0, project.StatusInProgress)
	if err != nil {
		t.Fatalf("SetStatus() failed: %v", err)
	}
	assert.Equal(t, project.StatusInProgress, prj.Status)
	assert.Equal(t, 1, svc.CountByStatus()[project.StatusInProgress])

	if _, _, err := svc.SetStatus(ctx, 0, "Abandoned"); errors.Cause(err) != project.ErrInvalidStatus {
		t.Errorf("SetStatus(Abandoned) err = %v; want %v", err, project.ErrInvalidStatus)
	}
	if _, _, err := svc.SetStatus(ctx, 3, project.StatusCompleted); err != table.ErrRowNotFound {
		t.Errorf("SetStatus(3) err = %v; want %v", err, table.ErrRowNotFound)
	}
}

func TestUpdateStatus_Validate(t *testing.T) {
	validate := testutil.NewValidator()
	project.InitValidators(validate, core.NewTranslator())

	ok := project.UpdateStatus{Status: " Completed "}
	assert.NoError(t, ok.Validate(validate))
	bad := project.UpdateStatus{Status: "done"}
	assert.Error(t, bad.Validate(validate))

	np := project.NewProject{Name: ""}
	assert.Error(t, np.Validate(validate))
}
