package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/dashboard"
	logsvc "github.com/trezcool/somo/services/logger"
	"github.com/trezcool/somo/storage"
)

var isTerminalFunc = term.IsTerminal // mockable

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	store, err := storage.NewStore(conf, logger)
	if err != nil {
		logger.Fatal("setting up storage", err)
	}

	validate := validator.New()
	dashboard.InitValidators(validate, core.NewTranslator())

	color.NoColor = !isTerminalFunc(int(os.Stdout.Fd()))

	// start CLI
	cli := commandLine{
		conf:     conf,
		store:    store,
		session:  dashboard.NewSession(store, conf.Dashboard),
		validate: validate,
		out:      os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
			color.New(color.FgRed).Fprintf(os.Stderr, "\nerror: %s\n", err)
			printFieldErrors(err)
		}
		os.Exit(1)
	}
}

func printFieldErrors(err error) {
	if vErr, ok := core.AsValidationError(err); ok {
		for _, fld := range vErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fld.Field, fld.Error)
		}
	}
}
