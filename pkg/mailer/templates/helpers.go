package templates

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/oksasatya/go-videotube/config"
)

// Recipient is who an account email is about.
type Recipient struct {
	Name     string
	Username string
	Email    string
}

// EmailData is the flat field set every template can reference.
type EmailData struct {
	Name     string `json:"Name"`
	Username string `json:"Username"`
	Email    string `json:"Email"`
	Type     string `json:"Type"`

	AppName        string `json:"AppName"`
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`

	LogoURL        string `json:"LogoURL"`
	SupportURL     string `json:"SupportURL"`
	PrivacyURL     string `json:"PrivacyURL"`
	UnsubscribeURL string `json:"UnsubscribeURL"`
	ChannelURL     string `json:"ChannelURL"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap flattens d into the JSON-friendly map carried by EmailJob.Data.
func (d EmailData) ToMap() map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.TimeAt = t.UTC()
		d.Time = d.TimeAt.Format("02 January 2006, 15:04")
	}
}

// WithChannel points ChannelURL at the user's public channel page.
func WithChannel(base, username string) Option {
	return func(d *EmailData) {
		if base = strings.TrimSpace(base); base != "" && username != "" {
			d.ChannelURL = strings.TrimRight(base, "/") + "/" + username
		}
	}
}

// NewEmailData fills the branding fields from cfg, then applies opts.
func NewEmailData(cfg *config.Config, typ string, to Recipient, opts ...Option) EmailData {
	d := EmailData{
		Name:           to.Name,
		Username:       to.Username,
		Email:          to.Email,
		Type:           typ,
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func WelcomeData(cfg *config.Config, to Recipient, opts ...Option) map[string]any {
	opts = append([]Option{WithChannel(cfg.ChannelURL, to.Username)}, opts...)
	return NewEmailData(cfg, Welcome, to, opts...).ToMap()
}

func PasswordChangedData(cfg *config.Config, to Recipient, opts ...Option) map[string]any {
	opts = append([]Option{WithTime(time.Now())}, opts...)
	return NewEmailData(cfg, PasswordChanged, to, opts...).ToMap()
}
