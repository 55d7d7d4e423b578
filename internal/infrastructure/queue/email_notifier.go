package queue

import (
	"context"

	"github.com/oksasatya/go-videotube/config"
	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/pkg/mailer"
	mailtpl "github.com/oksasatya/go-videotube/pkg/mailer/templates"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier enqueues account emails for cmd/email_worker.
type EmailNotifier struct {
	pub JSONPublisher
	cfg *config.Config
}

func NewEmailNotifier(pub JSONPublisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{pub: pub, cfg: cfg}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	return n.enqueue(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.WelcomeData(n.cfg, recipient(u)),
	})
}

func (n *EmailNotifier) PasswordChanged(ctx context.Context, u *entity.User) error {
	return n.enqueue(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.PasswordChanged,
		Data:     mailtpl.PasswordChangedData(n.cfg, recipient(u)),
	})
}

func recipient(u *entity.User) mailtpl.Recipient {
	return mailtpl.Recipient{Name: u.FullName, Username: u.Username, Email: u.Email}
}

// enqueue is a no-op when sending is disabled or no broker is wired.
func (n *EmailNotifier) enqueue(ctx context.Context, job mailer.EmailJob) error {
	if n.pub == nil || !n.cfg.MailSendEnabled {
		return nil
	}
	return n.pub.PublishJSON(ctx, job)
}

var _ application.Notifier = (*EmailNotifier)(nil)
