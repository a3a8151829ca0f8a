package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hazyhaar/zemailer/pkg/batch"
	"github.com/hazyhaar/zemailer/pkg/pattern"
	"github.com/hazyhaar/zemailer/pkg/preset"
	"github.com/hazyhaar/zemailer/pkg/rowio"
	"github.com/hazyhaar/zemailer/pkg/store"
)

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := configFlag(fs)
	in := fs.String("in", "", "input file (.csv, .tsv, .txt or .xlsx)")
	out := fs.String("out", "", "output file (default <in>_emails.<ext>)")
	templates := fs.String("templates", "", "comma-separated templates, e.g. prenom.nom,pnom")
	presetID := fs.String("preset", "", "institution preset supplying templates and domain")
	domain := fs.String("domain", "", "mail domain, overrides the preset's")
	nameCol := fs.String("column", "", "column holding full names (default first column)")
	givenCol := fs.String("given-column", "", "column holding given names")
	familyCol := fs.String("family-column", "", "column holding family names")
	merge := fs.Bool("merge-at-front", true, "merge the first two words of a three-word name")
	encoding := fs.String("encoding", "", "input encoding, e.g. windows-1252")
	delimiter := fs.String("delimiter", "", "CSV delimiter")
	sheet := fs.String("sheet", "", "XLSX sheet name")
	mailTo := fs.String("mail-to", "", "comma-separated recipients of the output file")
	fs.Parse(args)

	if *in == "" {
		fs.Usage()
		return errors.New("-in is required")
	}

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()

	runCfg, err := resolveRun(e.presets(), *presetID, pattern.SplitList(*templates), *domain)
	if err != nil {
		return err
	}
	runCfg.MergeAtFront = e.cfg.Defaults.MergeAtFront
	if isSet(fs, "merge-at-front") {
		runCfg.MergeAtFront = *merge
	}
	runCfg.NameColumn = *nameCol
	runCfg.GivenColumn = *givenCol
	runCfg.FamilyColumn = *familyCol
	runCfg.EmailHeader = e.cfg.Defaults.EmailHeader

	opts := e.cfg.Input
	if *encoding != "" {
		opts.Encoding = *encoding
	}
	if *delimiter != "" {
		opts.Delimiter = *delimiter
	}
	if *sheet != "" {
		opts.Sheet = *sheet
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := rowio.ReadFile(*in, opts)
	if err != nil {
		return err
	}
	res, err := e.cfg.runner(e.logger).Run(ctx, table, runCfg)
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = outputPath(*in)
	}
	// The output is always UTF-8; only the delimiter and sheet carry over.
	if err := rowio.WriteFile(outPath, res.Table, rowio.Options{Delimiter: opts.Delimiter, Sheet: opts.Sheet}); err != nil {
		return err
	}
	fmt.Printf("%d addresses written to %s (%d rows skipped)\n", len(res.Addresses), outPath, len(res.Skipped))
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "  skipped %v\n", s)
	}

	if e.store != nil {
		run := &store.Run{
			PresetID:  runPresetID(*presetID),
			Templates: runCfg.Templates,
			Domain:    pattern.NormalizeDomain(runCfg.Domain),
			Input:     *in,
			Output:    outPath,
			Generated: len(res.Addresses),
			Skipped:   len(res.Skipped),
		}
		if err := e.store.RecordRun(ctx, run); err != nil {
			return err
		}
		e.logger.Debug("run recorded", "id", run.ID)
	}

	if recipients := pattern.SplitList(*mailTo); len(recipients) > 0 {
		subject := fmt.Sprintf("zemailer: %s", filepath.Base(outPath))
		body := fmt.Sprintf("%d addresses generated from %s.\n", len(res.Addresses), filepath.Base(*in))
		return sendFiles(ctx, e, recipients, subject, body, []string{outPath}, "")
	}
	return nil
}

// resolveRun merges a preset with explicit templates and domain. Explicit
// values win; a preset is required when no template is given.
func resolveRun(lookup preset.Lookup, presetID string, templates []string, domain string) (batch.Config, error) {
	cfg := batch.Config{Templates: templates, Domain: domain}
	if presetID != "" {
		p, err := lookup.GetPreset(presetID)
		if err != nil {
			return cfg, err
		}
		if len(cfg.Templates) == 0 {
			cfg.Templates = p.Templates
		}
		if cfg.Domain == "" {
			cfg.Domain = p.Domain
		}
	}
	if len(cfg.Templates) == 0 {
		return cfg, errors.New("no template: pass -templates or -preset")
	}
	if err := pattern.CheckDomain(cfg.Domain); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPresetID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// outputPath derives "<base>_emails<ext>" from the input path.
func outputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_emails" + ext
}

// isSet reports whether the flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
