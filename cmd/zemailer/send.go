package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/zemailer/pkg/mailer"
	"github.com/hazyhaar/zemailer/pkg/pattern"
)

func cmdSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	cfgPath := configFlag(fs)
	to := fs.String("to", "", "comma-separated recipients")
	subject := fs.String("subject", "zemailer export", "message subject")
	text := fs.String("text", "", "message body")
	server := fs.String("server", "", "SMTP server: gmail, outlook or host[:port] (default from config)")
	fs.Parse(args)

	recipients := pattern.SplitList(*to)
	if len(recipients) == 0 {
		fs.Usage()
		return errors.New("-to is required")
	}
	if fs.NArg() == 0 {
		return errors.New("no file to send")
	}

	e, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return sendFiles(ctx, e, recipients, *subject, *text, fs.Args(), *server)
}

// sendFiles mails files as attachments. An empty server uses smtp.server
// from the config.
func sendFiles(ctx context.Context, e *env, to []string, subject, text string, files []string, server string) error {
	if server == "" {
		server = e.cfg.SMTP.Server
	}
	srv, err := mailer.LookupServer(server)
	if err != nil {
		return err
	}
	creds, err := mailer.LoadCredentials(e.cfg.EnvFile)
	if err != nil {
		return err
	}

	sender := mailer.NewSender(mailer.Config{Server: srv, Credentials: creds, From: e.cfg.SMTP.From})
	msg := mailer.Message{To: to, Subject: subject, Text: text, Attachments: files}
	if err := sender.Send(ctx, msg); err != nil {
		return err
	}
	e.logger.Info("mail sent", "server", srv.Host, "to", to, "files", len(files))
	fmt.Printf("sent %d file(s) to %d recipient(s)\n", len(files), len(to))
	return nil
}
