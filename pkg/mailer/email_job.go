package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue. Template names one of
// the embedded templates and Data feeds it; Subject/Text/HTML are sent as is
// when Template is empty.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
