package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/metrics"
)

// Outcome is what the worker did with one delivery.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeRequeue Outcome = "requeued"
	OutcomeDropped Outcome = "dropped"
)

// Worker turns queued EmailJobs into sent mail. Malformed jobs are dropped, send failures are
// requeued.
type Worker struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			w.Handle(ctx, msg)
		}
	}
}

// Handle processes one delivery and acks, requeues or drops it.
func (w *Worker) Handle(ctx context.Context, msg amqp.Delivery) Outcome {
	var job EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		return w.drop(msg, "unknown", err)
	}
	label := job.Label()

	subject, text, html, err := job.Render()
	if err != nil {
		return w.drop(msg, label, err)
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.log().WithError(err).WithField("template", label).Warn("email send failed; requeueing")
		metrics.EmailJobsTotal.WithLabelValues(label, string(OutcomeRequeue)).Inc()
		_ = msg.Nack(false, true)
		return OutcomeRequeue
	}
	metrics.EmailJobsTotal.WithLabelValues(label, string(OutcomeSent)).Inc()
	_ = msg.Ack(false)
	return OutcomeSent
}

func (w *Worker) drop(msg amqp.Delivery, label string, err error) Outcome {
	w.log().WithError(err).WithField("template", label).Error("dropping email job")
	metrics.EmailJobsTotal.WithLabelValues(label, string(OutcomeDropped)).Inc()
	_ = msg.Nack(false, false)
	return OutcomeDropped
}

func (w *Worker) log() *logrus.Logger {
	if w.Logger == nil {
		return logrus.StandardLogger()
	}
	return w.Logger
}
