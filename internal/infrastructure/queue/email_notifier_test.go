package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-videotube/config"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/pkg/mailer"
)

type capturePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if c.err != nil {
		return c.err
	}
	c.jobs = append(c.jobs, body.(mailer.EmailJob))
	return nil
}

func TestEmailNotifier(t *testing.T) {
	u := &entity.User{Username: "alice", Email: "alice@example.com", FullName: "Alice"}
	cfg := &config.Config{AppName: "VideoTube", ChannelURL: "https://tube.example.com/c", MailSendEnabled: true}

	t.Run("enqueues templated jobs", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEmailNotifier(pub, cfg)
		require.NoError(t, n.Welcome(context.Background(), u))
		require.NoError(t, n.PasswordChanged(context.Background(), u))

		require.Len(t, pub.jobs, 2)
		assert.Equal(t, "welcome", pub.jobs[0].Template)
		assert.Equal(t, "alice@example.com", pub.jobs[0].To)
		assert.Equal(t, "https://tube.example.com/c/alice", pub.jobs[0].Data["ChannelURL"])
		assert.Equal(t, "password_changed", pub.jobs[1].Template)
		assert.NotEmpty(t, pub.jobs[1].Data["Time"])
	})

	t.Run("disabled sending publishes nothing", func(t *testing.T) {
		pub := &capturePublisher{}
		off := *cfg
		off.MailSendEnabled = false
		require.NoError(t, NewEmailNotifier(pub, &off).Welcome(context.Background(), u))
		assert.Empty(t, pub.jobs)
	})

	t.Run("broker error surfaces", func(t *testing.T) {
		pub := &capturePublisher{err: errors.New("channel closed")}
		assert.Error(t, NewEmailNotifier(pub, cfg).Welcome(context.Background(), u))
	})
}
