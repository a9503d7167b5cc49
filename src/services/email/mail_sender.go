// Package email sends notification mail over SMTP.
package email

import (
	"fmt"
	"html"
	"strings"

	"Backend-TanyaPintar/src/config"
	"Backend-TanyaPintar/src/models"

	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"
)

type MailSender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPSender builds a sender from config. Missing settings are reported
// together so the operator can fix them at once.
func NewSMTPSender(c *config.Config) (*SMTPSender, error) {
	missing := []string{}
	if c.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SMTPPort == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if c.SMTPFrom == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing SMTP env: %s", strings.Join(missing, ", "))
	}
	return &SMTPSender{Host: c.SMTPHost, Port: c.SMTPPort, User: c.SMTPUser, Pass: c.SMTPPass, From: c.SMTPFrom}, nil
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return errors.Wrap(d.DialAndSend(m), "smtp send")
}

// InsightMail renders the "analysis finished" message for an insight.
func InsightMail(in models.Insight) (subject, body string) {
	status := "selesai"
	if in.Status == models.InsightFailed {
		status = "gagal"
	}
	subject = fmt.Sprintf("[TanyaPintar] Analisis AI %s (%d jawaban)", status, in.SubmissionCount)

	var b strings.Builder
	b.WriteString("<h2>Analisis AI " + status + "</h2>")
	fmt.Fprintf(&b, "<p>Jumlah jawaban yang dianalisis: <b>%d</b></p>", in.SubmissionCount)
	b.WriteString("<div>")
	for _, line := range strings.Split(in.Report, "\n") {
		b.WriteString(html.EscapeString(line))
		b.WriteString("<br>")
	}
	b.WriteString("</div>")
	return subject, b.String()
}
