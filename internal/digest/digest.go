// Package digest sends each user a periodic summary of their open tasks.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskloop/taskloop/internal/email"
	"github.com/taskloop/taskloop/internal/metrics"
	"github.com/taskloop/taskloop/internal/repository"
)

type Digest struct {
	tasks  repository.TaskRepository
	email  email.Sender
	logger *slog.Logger
}

func New(tasks repository.TaskRepository, emailSender email.Sender, logger *slog.Logger) *Digest {
	return &Digest{
		tasks:  tasks,
		email:  emailSender,
		logger: logger.With("component", "digest"),
	}
}

// Run emails every user with at least one pending task. One failed delivery
// does not stop the rest of the cycle.
func (d *Digest) Run(ctx context.Context) {
	start := time.Now()

	summaries, err := d.tasks.PendingByUser(ctx)
	if err != nil {
		d.logger.Error("digest query", "error", err)
		return
	}

	sent := 0
	for _, s := range summaries {
		if err := d.email.Send(ctx, s.Email, subject(s.Pending), body(s.Name, s.Pending)); err != nil {
			d.logger.Error("digest email", "user_id", s.UserID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("failure").Inc()
			continue
		}
		metrics.DigestEmailsTotal.WithLabelValues("success").Inc()
		sent++
	}

	metrics.DigestCycleDuration.Observe(time.Since(start).Seconds())
	d.logger.Info("digest cycle finished", "users", len(summaries), "sent", sent)
}

func subject(pending int) string {
	if pending == 1 {
		return "You have 1 pending task"
	}
	return fmt.Sprintf("You have %d pending tasks", pending)
}

func body(name string, pending int) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>%d of your tasks are still open. Log in to knock them out.</p>",
		name, pending,
	)
}
