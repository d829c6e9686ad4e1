package main

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/dashboard"
)

func (cli *commandLine) provision(ctx context.Context) error {
	if cli.conf.Backend == core.BackendPostgres {
		if err := createDBFunc(ctx, cli.conf.Database); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	results := cli.session.Load(ctx)
	cli.report(results...)
	for _, res := range results {
		if !res.OK() {
			return res.Err
		}
	}
	return nil
}

func (cli *commandLine) show(ctx context.Context, name string) error {
	schema, ok := dashboard.LookupSchema(name)
	if !ok {
		return errors.Wrapf(errUnknownTable, "%q (one of %s)", name, tableNames())
	}
	tbl, res := cli.store.Load(ctx, schema)
	if !res.OK() {
		cli.report(res)
		return res.Err
	}

	header, rows := tbl.Serialize()
	tw := tablewriter.NewWriter(cli.out)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(append([]string{"#"}, header...))
	for i, r := range rows {
		tw.Append(append([]string{fmt.Sprint(i)}, r...))
	}
	tw.Render()
	return nil
}
