package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func cmdHistory(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cfgPath := configFlag(fs)
	limit := fs.Int("limit", 20, "number of runs to show, 0 for all")
	fs.Parse(args)

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()
	if e.store == nil {
		return errors.New("no history: db_path is empty")
	}

	runs, err := e.store.ListRuns(context.Background(), *limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tPRESET\tTEMPLATES\tDOMAIN\tGENERATED\tSKIPPED\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), orDash(r.PresetID),
			strings.Join(r.Templates, ","), orDash(r.Domain), r.Generated, r.Skipped, r.Output)
	}
	return tw.Flush()
}
