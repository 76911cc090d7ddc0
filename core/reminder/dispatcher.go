package reminder

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const (
	dispatchBatch    = 100
	reminderTemplate = "reminder"
	scheduledLayout  = "2006-01-02 15:04 MST"
)

// UserStore looks up the owner of a reminder.
type UserStore interface {
	GetUserByID(ctx context.Context, id int) (user.User, error)
}

// Dispatcher emails due reminders to their owners.
type Dispatcher struct {
	repo     Repository
	users    UserStore
	mail     core.EmailService
	logger   core.Logger
	interval time.Duration
	workers  int
}

func NewDispatcher(repo Repository, users UserStore, mail core.EmailService, logger core.Logger, conf *core.Config) *Dispatcher {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(users, "users"),
		vala.IsNotNil(mail, "mail"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	d := &Dispatcher{
		repo:     repo,
		users:    users,
		mail:     mail,
		logger:   logger,
		interval: conf.Reminders.PollInterval,
		workers:  conf.Reminders.Workers,
	}
	if d.interval <= 0 {
		d.interval = time.Minute
	}
	if d.workers <= 0 {
		d.workers = 1
	}
	return d
}

// Run dispatches due reminders every poll interval until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if _, err := d.DispatchDue(ctx); err != nil && ctx.Err() == nil {
			d.logger.Error("dispatching reminders", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// DispatchDue sends every reminder due by now and returns how many were sent.
// Failures on single reminders are logged and do not stop the pass.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	sent := 0
	for {
		due, err := d.repo.QueryDueReminders(ctx, nowFunc().UTC(), dispatchBatch)
		if err != nil {
			return sent, errors.Wrap(err, "querying due reminders")
		}
		if len(due) == 0 {
			return sent, nil
		}

		results := make([]bool, len(due))
		g := new(errgroup.Group)
		g.SetLimit(d.workers)
		for i, r := range due {
			i, r := i, r
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ok, err := d.dispatch(ctx, r)
				if err != nil {
					d.logger.Error(fmt.Sprintf("dispatching reminder %d", r.ID), err)
				}
				results[i] = ok
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return sent, err
		}

		batchSent := 0
		for _, ok := range results {
			if ok {
				batchSent++
			}
		}
		sent += batchSent
		// a batch where nothing could be claimed would be fetched again forever
		if batchSent == 0 || len(due) < dispatchBatch {
			return sent, nil
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, r Reminder) (bool, error) {
	claimed, err := d.repo.MarkSent(ctx, r.ID)
	if err != nil {
		return false, errors.Wrap(err, "marking reminder sent")
	}
	if !claimed {
		return false, nil
	}

	now := nowFunc().UTC()
	if next, ok := r.Next(now); ok {
		next.CreatedAt = now
		if _, err := d.repo.CreateReminder(ctx, next); err != nil {
			return true, errors.Wrap(err, "scheduling next occurrence")
		}
	}

	usr, err := d.users.GetUserByID(ctx, r.UserID)
	if err != nil {
		return true, errors.Wrap(err, "getting reminder owner")
	}
	if !usr.IsActive {
		return true, nil
	}

	name := usr.FullName
	if name == "" {
		name = usr.Username
	}
	d.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: name, Address: usr.Email}},
		Subject:      r.Title,
		TemplateName: reminderTemplate,
		TemplateData: map[string]string{
			"Name":          name,
			"Title":         r.Title,
			"Message":       r.Message,
			"ScheduledTime": r.ScheduledTime.UTC().Format(scheduledLayout),
		},
	})
	return true, nil
}
