package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-credentials/pkg/mailer"
)

// EnsureRecipientAndEmail fills Data["Email"] from job.To when it is missing.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// NormalizeTemplate lowercases the template name and copies it into Data["Type"].
func NormalizeTemplate(job *mailer.EmailJob) {
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
	if job.Template == "" {
		return
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Type"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Type"] = job.Template
	}
}

// ValidateJob reports why a job cannot be sent.
func ValidateJob(job mailer.EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("email job has no recipient")
	}
	if job.Template == "" && (job.Subject == "" || (job.Text == "" && job.HTML == "")) {
		return fmt.Errorf("email job needs a template or a subject with text/html")
	}
	return nil
}
