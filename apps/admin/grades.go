package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/trezcool/somo/core/grade"
)

func (cli *commandLine) cgpa() {
	tracker := cli.session.Grades
	color.New(color.FgCyan, color.Bold).Fprintf(cli.out, "CGPA: %.2f (%d semesters recorded)\n",
		grade.Round2(tracker.CGPA()), tracker.SemestersRecorded())

	tw := tablewriter.NewWriter(cli.out)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Semester", "State", "Recorded", "GPA", "Dean's List"})
	for _, t := range tracker.Targets() {
		p := tracker.Progress(t.Semester)
		deans := ""
		if p.State == grade.Complete && grade.QualifiesForDeansList(p.GPA) {
			deans = "yes"
		}
		tw.Append([]string{
			p.Semester,
			p.State.String(),
			fmt.Sprintf("%d/%d", p.Recorded, p.Subjects),
			fmt.Sprintf("%.2f", p.GPA),
			deans,
		})
	}
	tw.Render()
}

func (cli *commandLine) initSemester(ctx context.Context, sem string, subjects, credits int) error {
	cli.session.Grades.Load(ctx)
	nt := grade.NewTarget{Semester: sem, Subjects: subjects, Credits: credits}
	if err := nt.Validate(cli.validate); err != nil {
		return err
	}
	target, res, err := cli.session.Grades.Initialize(ctx, nt)
	if err != nil {
		return err
	}
	cli.report(res)
	fmt.Fprintf(cli.out, "%s: target %d subjects, %d credits\n", target.Semester, target.Subjects, target.Credits)
	return nil
}

func (cli *commandLine) addGrade(ctx context.Context, sem, code, subject string, credit int, g string) error {
	tracker := cli.session.Grades
	tracker.Load(ctx)
	nr := grade.NewRecord{Semester: sem, Code: code, Subject: subject, Credit: credit, Grade: g}
	if err := nr.Validate(cli.validate); err != nil {
		return err
	}
	rec, res, err := tracker.Record(ctx, nr)
	if err != nil {
		return err
	}
	cli.report(res)

	p := tracker.Progress(rec.Semester)
	fmt.Fprintf(cli.out, "%s: %s %s (%.2f), %d/%d recorded\n", rec.Semester, rec.Subject, rec.Grade, rec.Pointer, p.Recorded, p.Subjects)
	if p.State == grade.Complete {
		st := tracker.DeansList(rec.Semester)
		fmt.Fprintf(cli.out, "%s complete, GPA %.2f\n", rec.Semester, st.GPA)
		if st.Celebrate {
			color.New(color.FgGreen, color.Bold).Fprintf(cli.out, "Dean's List! %s GPA %.2f\n", rec.Semester, st.GPA)
		}
	}
	return nil
}

func (cli *commandLine) resetSemester(ctx context.Context, sem string) error {
	tracker := cli.session.Grades
	tracker.Load(ctx)
	label, err := grade.ParseSemester(sem)
	if err != nil {
		return err
	}
	results, err := tracker.Reset(ctx, label)
	if err != nil {
		return err
	}
	cli.report(results...)
	color.New(color.FgYellow).Fprintf(cli.out, "%s reset\n", label)
	return nil
}
