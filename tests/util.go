package testutil

import (
	"io"
	"log"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
	logsvc "github.com/trezcool/somo/services/logger"
	dummydb "github.com/trezcool/somo/storage/dummy"
)

// Logger returns a logger that writes nowhere and never reports to rollbar.
func Logger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{Env: "TEST", TestMode: true})
	logger.Enable(false)
	return logger
}

// NewStore returns a store over a fresh in-memory backend.
func NewStore(t *testing.T) (*table.Store, *dummydb.DB) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return table.NewStore(table.Static(db), Logger()), db
}

// NewValidator returns a validator with the core validators registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}
