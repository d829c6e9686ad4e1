package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/dashboard"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/storage/database"
)

var (
	createDBFunc = database.CreateIfNotExist // mockable

	errHelp         = errors.New("help provided")
	errUnknownTable = errors.New("unknown table")
)

type commandLine struct {
	conf     *core.Config
	store    *table.Store
	session  *dashboard.Session
	validate *validator.Validate
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  provision - load every table, creating the missing ones")
	fmt.Fprintln(cli.out, "  show -table NAME - print a table")
	fmt.Fprintln(cli.out, "  cgpa - print the CGPA, its trend and every semester's progress")
	fmt.Fprintln(cli.out, "  init-semester -semester N -subjects S -credits C - set a semester's target")
	fmt.Fprintln(cli.out, "  add-grade -semester N -code X -subject Y -credit C -grade G - record a subject result")
	fmt.Fprintln(cli.out, "  reset-semester -semester N - delete a complete semester's records and target")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	showCmd := cli.newFlagSet("show")
	showTable := showCmd.String("table", "", "The table to print: "+tableNames())

	initCmd := cli.newFlagSet("init-semester")
	initSem := initCmd.String("semester", "", "The semester number (1-8)")
	initSubjects := initCmd.Int("subjects", 0, "Number of subjects that complete the semester")
	initCredits := initCmd.Int("credits", 0, "Total credit hours of the semester")

	gradeCmd := cli.newFlagSet("add-grade")
	gradeSem := gradeCmd.String("semester", "", "The semester number (1-8)")
	gradeCode := gradeCmd.String("code", "", "The subject code")
	gradeSubject := gradeCmd.String("subject", "", "The subject name")
	gradeCredit := gradeCmd.Int("credit", 0, "The subject's credit hours (1-6)")
	gradeGrade := gradeCmd.String("grade", "", "The letter grade, e.g. A-")

	resetCmd := cli.newFlagSet("reset-semester")
	resetSem := resetCmd.String("semester", "", "The semester number (1-8)")

	switch args[1] {
	case "provision":
		return cli.provision(ctx)
	case "show":
		if err := showCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *showTable == "" {
			showCmd.Usage()
			return errHelp
		}
		return cli.show(ctx, *showTable)
	case "cgpa":
		cli.session.Load(ctx)
		cli.cgpa()
		return nil
	case "init-semester":
		if err := initCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *initSem == "" {
			initCmd.Usage()
			return errHelp
		}
		return cli.initSemester(ctx, *initSem, *initSubjects, *initCredits)
	case "add-grade":
		if err := gradeCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *gradeSem == "" || *gradeGrade == "" {
			gradeCmd.Usage()
			return errHelp
		}
		return cli.addGrade(ctx, *gradeSem, *gradeCode, *gradeSubject, *gradeCredit, *gradeGrade)
	case "reset-semester":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetSem == "" {
			resetCmd.Usage()
			return errHelp
		}
		return cli.resetSemester(ctx, *resetSem)
	default:
		cli.printUsage()
		return errHelp
	}
}

func tableNames() string {
	names := make([]string, 0, len(dashboard.Schemas))
	for _, s := range dashboard.Schemas {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// report prints one line per store result; failures are printed, not returned.
func (cli *commandLine) report(results ...table.Result) {
	for _, res := range results {
		switch {
		case !res.OK():
			color.New(color.FgRed).Fprintf(cli.out, "%s: %s (%v)\n", res.Table, res.Status, res.Err)
		case res.Status == table.StatusCreated:
			color.New(color.FgYellow).Fprintf(cli.out, "%s: %s\n", res.Table, res.Status)
		default:
			fmt.Fprintf(cli.out, "%s: %s\n", res.Table, res.Status)
		}
	}
}
