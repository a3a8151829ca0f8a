package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hazyhaar/zemailer/pkg/pattern"
)

func cmdClassify(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	cfgPath := configFlag(fs)
	order := fs.String("initial-order", "", "slot order for concatenated initials: template, initial_first or initial_last")
	asJSON := fs.Bool("json", false, "print JSON")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no template given")
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	orderName := cfg.Defaults.InitialOrder
	if *order != "" {
		orderName = *order
	}
	initialOrder, err := pattern.ParseInitialOrder(orderName)
	if err != nil {
		return err
	}
	c := pattern.NewClassifier(pattern.WithInitialOrder(initialOrder))

	var (
		cts    []pattern.ClassifiedTemplate
		failed int
	)
	for _, tmpl := range fs.Args() {
		ct, err := c.Classify(tmpl)
		if err != nil {
			fmt.Fprintln(w, err)
			failed++
			continue
		}
		cts = append(cts, ct)
	}

	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cts); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TEMPLATE\tSHAPE\tSEPARATOR\tFAMILY\tGIVEN\tINITIAL")
		for _, ct := range cts {
			fmt.Fprintf(tw, "%s\t%s\t%q\t%s\t%s\t%s\n",
				ct.Template, ct.Shape, ct.Separator, slot(ct.FamilySlot), slot(ct.GivenSlot), ct.InitialSide)
		}
		tw.Flush()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d templates not recognized", failed, fs.NArg())
	}
	return nil
}

func slot(i int) string {
	if i == pattern.NoSlot {
		return "-"
	}
	return fmt.Sprint(i)
}
