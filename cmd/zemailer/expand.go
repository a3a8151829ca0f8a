package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/rowio"
)

func cmdExpand(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("expand", flag.ExitOnError)
	cfgPath := configFlag(fs)
	list := fs.String("names", "", "comma-separated full names (or pass them as arguments)")
	seps := fs.String("separators", "", "separators as one string, e.g. \".-_\" (default from config)")
	domains := fs.String("domains", "", "comma-separated domains (default from config)")
	merge := fs.Bool("merge-at-front", true, "merge the first two words of a three-word name")
	out := fs.String("out", "", "write a one-column table instead of printing")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	fullNames := append(pattern.SplitList(*list), fs.Args()...)
	if len(fullNames) == 0 {
		fs.Usage()
		return errors.New("no name given")
	}

	separators := cfg.Defaults.Separators
	if isSet(fs, "separators") {
		separators = splitChars(*seps)
	}
	domainList := cfg.Defaults.Domains
	if isSet(fs, "domains") {
		domainList = pattern.SplitList(*domains)
	}
	mergeAtFront := cfg.Defaults.MergeAtFront
	if isSet(fs, "merge-at-front") {
		mergeAtFront = *merge
	}

	addrs := cfg.expander(mergeAtFront).ExpandList(fullNames, separators, domainList)
	if *out != "" {
		t := &rowio.Table{Header: []string{cfg.Defaults.EmailHeader}}
		for _, a := range addrs {
			t.Rows = append(t.Rows, []string{a})
		}
		if err := rowio.WriteFile(*out, t, cfg.Input); err != nil {
			return err
		}
		fmt.Fprintf(w, "%d addresses written to %s\n", len(addrs), *out)
		return nil
	}
	for _, a := range addrs {
		fmt.Fprintln(w, a)
	}
	return nil
}

// splitChars turns ".-_" into [".", "-", "_"]. An empty string means
// plain concatenation.
func splitChars(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "")
}
