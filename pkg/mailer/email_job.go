package mailer

import (
	"errors"
	"strings"

	mailtpl "github.com/oksasatya/go-videotube/pkg/mailer/templates"
)

var errEmptyJob = errors.New("job has no recipient or body")

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered with Data) or a literal Subject plus Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "password_changed"
	Data     map[string]any `json:"data,omitempty"`
}

// Label names the job in metrics and logs.
func (j EmailJob) Label() string {
	if j.Template == "" {
		return "literal"
	}
	return j.Template
}

// Render resolves the final subject and bodies, from the template when one is named.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if strings.TrimSpace(j.To) == "" {
		return "", "", "", errEmptyJob
	}
	if j.Template != "" {
		return mailtpl.Render(j.Template, j.Data)
	}
	if j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return "", "", "", errEmptyJob
	}
	return j.Subject, j.Text, j.HTML, nil
}
