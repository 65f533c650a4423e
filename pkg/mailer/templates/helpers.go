package templates

import (
	"time"

	"github.com/oksasatya/go-ddd-credentials/config"
)

type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewBaseEmailData fills branding from cfg, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, loginID, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    name,
		LoginID: loginID,
		Email:   email,
		Type:    typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, loginID, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, loginID, email, opts...))
}

// NewPasswordChangedData addresses the recipient by login id; the stored name
// is only ever exposed masked.
func NewPasswordChangedData(cfg *config.Config, loginID, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, PasswordChanged, loginID, loginID, email, opts...))
}
