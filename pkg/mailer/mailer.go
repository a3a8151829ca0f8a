// Package mailer delivers generated address files over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/wneessen/go-mail"
)

// ErrNoCredentials is returned when neither the environment nor the env
// file provides an SMTP user and password.
var ErrNoCredentials = errors.New("mailer: no SMTP credentials (set ZEMAILER_USER and ZEMAILER_PASSWORD)")

// Environment variables read by LoadCredentials.
const (
	EnvUser     = "ZEMAILER_USER"
	EnvPassword = "ZEMAILER_PASSWORD"
)

// Server is an SMTP endpoint using STARTTLS.
type Server struct {
	Host string
	Port int
}

// Servers are the named endpoints accepted by LookupServer.
var Servers = map[string]Server{
	"gmail":   {Host: "smtp.gmail.com", Port: 587},
	"outlook": {Host: "smtp-mail.outlook.com", Port: 587},
}

// LookupServer resolves a preset name ("gmail") or a host[:port].
func LookupServer(name string) (Server, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if s, ok := Servers[name]; ok {
		return s, nil
	}
	if name == "" {
		return Server{}, fmt.Errorf("mailer: empty server")
	}
	host, port, found := strings.Cut(name, ":")
	if !found {
		return Server{Host: host, Port: 587}, nil
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		return Server{}, fmt.Errorf("mailer: bad port in %q", name)
	}
	return Server{Host: host, Port: p}, nil
}

// Credentials authenticate against the SMTP server.
type Credentials struct {
	User     string
	Password string
}

// LoadCredentials reads ZEMAILER_USER and ZEMAILER_PASSWORD. When envFile
// exists it is loaded first; real environment variables win over it.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, fmt.Errorf("mailer: load %s: %w", envFile, err)
		}
	}
	c := Credentials{User: os.Getenv(EnvUser), Password: os.Getenv(EnvPassword)}
	if c.User == "" || c.Password == "" {
		return Credentials{}, ErrNoCredentials
	}
	return c, nil
}

// Config configures a Sender. From defaults to the credential user.
type Config struct {
	Server      Server
	Credentials Credentials
	From        string
	Timeout     time.Duration
}

// Message is one outgoing email. Attachments are file paths.
type Message struct {
	To          []string
	Subject     string
	Text        string
	Attachments []string
}

// Sender sends messages through one SMTP server.
type Sender struct {
	cfg Config
}

// NewSender creates a sender with a 30s default timeout.
func NewSender(cfg Config) *Sender {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.From == "" {
		cfg.From = cfg.Credentials.User
	}
	return &Sender{cfg: cfg}
}

// Build assembles the MIME message without touching the network.
func (s *Sender) Build(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("mailer: no recipients")
	}
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("mailer: invalid from address: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("mailer: invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("mailer: attachment: %w", err)
		}
		m.AttachFile(path, mail.WithFileName(filepath.Base(path)))
	}
	return m, nil
}

// Send builds and delivers msg with STARTTLS and PLAIN authentication.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	m, err := s.Build(msg)
	if err != nil {
		return err
	}
	if s.cfg.Credentials.User == "" || s.cfg.Credentials.Password == "" {
		return ErrNoCredentials
	}

	c, err := mail.NewClient(s.cfg.Server.Host,
		mail.WithPort(s.cfg.Server.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Credentials.User),
		mail.WithPassword(s.cfg.Credentials.Password),
	)
	if err != nil {
		return fmt.Errorf("mailer: create client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
