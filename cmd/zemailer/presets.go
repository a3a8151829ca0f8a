package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/preset"
)

func cmdPresets(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	cfgPath := configFlag(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: zemailer presets [flags] <action>

Actions:
  list                          List presets (default)
  show <id>                     Show one preset
  set-domain <id> <domain>      Override a preset's domain in the store
  set-templates <id> <t1,t2>    Override a preset's templates in the store

Flags:
`)
		fs.PrintDefaults()
	}
	fs.Parse(args)

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()

	action := "list"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}
	rest := fs.Args()
	if len(rest) > 0 {
		rest = rest[1:]
	}

	switch action {
	case "list":
		list, err := e.presets().ListPresets()
		if err != nil {
			return err
		}
		printPresets(w, list)
		return nil

	case "show":
		if len(rest) != 1 {
			return errors.New("usage: presets show <id>")
		}
		p, err := e.presets().GetPreset(rest[0])
		if err != nil {
			return err
		}
		printPresets(w, []preset.Preset{p})
		return nil

	case "set-domain", "set-templates":
		if len(rest) != 2 {
			return fmt.Errorf("usage: presets %s <id> <value>", action)
		}
		if e.store == nil {
			return errors.New("overrides need a store: set db_path in the config")
		}
		id := rest[0]
		if action == "set-domain" {
			if cerr := pattern.CheckDomain(rest[1]); cerr != nil {
				return cerr
			}
			err = e.store.SetDomain(id, pattern.NormalizeDomain(rest[1]))
		} else {
			templates := pattern.SplitList(rest[1])
			if _, cerr := pattern.NewClassifier().ClassifyAll(templates); cerr != nil {
				return cerr
			}
			err = e.store.SetTemplates(id, templates)
		}
		if err != nil {
			return err
		}
		e.logger.Info("preset updated", "id", id, "action", action)
		p, err := e.store.GetPreset(id)
		if err != nil {
			return err
		}
		printPresets(w, []preset.Preset{p})
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("unknown action %q", action)
	}
}

func printPresets(w io.Writer, list []preset.Preset) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTEMPLATES\tDOMAIN\tCOUNTRY\tSOURCE")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, strings.Join(p.Templates, ","), orDash(p.Domain), orDash(p.Country), p.Source)
	}
	tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
