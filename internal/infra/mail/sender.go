package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

const importSummaryTemplate = `
<h2>Hi {{.Name}},</h2>
<p>Your lead import has finished.</p>
<ul>
  <li><strong>{{.SuccessCount}}</strong> leads imported</li>
  <li><strong>{{.FailedCount}}</strong> skipped (invalid or duplicate)</li>
</ul>
<p>Out of {{.Total}} entries total.</p>
<p>— LeadFlow</p>
`

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendImportSummary(to, name string, successCount, failedCount int) error {
	data := ImportSummaryData{
		Name:         name,
		SuccessCount: successCount,
		FailedCount:  failedCount,
		Total:        successCount + failedCount,
	}

	t, err := template.New("import-summary").Parse(importSummaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your import finished: %d leads added", successCount))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email over SMTP: %w", err)
	}

	return nil
}
