package app

import (
	"log/slog"

	"github.com/aussiebroadwan/warden/internal/rbac/notify"
)

// Deliverer picks SMTP when a host is configured and the log otherwise.
// The worker and the in-process sender share it.
func (c Config) Deliverer(logger *slog.Logger) notify.Deliverer {
	if c.SMTPHost == "" {
		logger.Warn("SMTP host not set, e-mail is written to the log")
		return notify.LogDeliverer{}
	}
	return &notify.SMTPDeliverer{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}
