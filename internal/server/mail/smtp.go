package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"

	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SMTPSender delivers account emails through a plain SMTP relay.
type SMTPSender struct {
	dialer    *gomail.Dialer
	from      string
	templates *template.Template
}

func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &SMTPSender{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:      cfg.MailFrom,
		templates: tmpl,
	}, nil
}

type templateData struct {
	Name  string
	Token string
}

func (s *SMTPSender) send(to, subject, templateName string, data templateData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) SendAccountCreated(_ context.Context, user *models.User, confirmToken string) error {
	return s.send(user.Email, "Please confirm your account", "account_created.html",
		templateData{Name: user.Name, Token: confirmToken})
}

func (s *SMTPSender) SendAccountConfirmed(_ context.Context, user *models.User) error {
	return s.send(user.Email, "Your account is confirmed", "account_confirmed.html",
		templateData{Name: user.Name})
}

func (s *SMTPSender) SendPasswordRecoverCode(_ context.Context, user *models.User, resetToken string) error {
	return s.send(user.Email, "Password reset requested", "password_recover.html",
		templateData{Name: user.Name, Token: resetToken})
}

func (s *SMTPSender) SendPasswordSuccessfullyChanged(_ context.Context, user *models.User) error {
	return s.send(user.Email, "Your password was changed", "password_changed.html",
		templateData{Name: user.Name})
}
