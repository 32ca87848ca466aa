// Package broadcast sends the invitation to every guest who has not
// responded yet, pacing sends to stay under transport rate limits.
package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"rsvp-whatsapp/internal/messages"
	"rsvp-whatsapp/internal/models"
)

// Sender delivers invitations to guests.
type Sender interface {
	SendText(ctx context.Context, phoneNumber, text string) error
	SendImage(ctx context.Context, phoneNumber, imagePath, caption string) error
}

// Store is the slice of the guest directory the dispatcher needs. It
// only reads RSVP state; responses are never mutated here.
type Store interface {
	ListByStatus(status models.RSVPStatus) ([]models.Guest, error)
	SetSession(phoneNumber string, active, awaitingCount bool) error
	RecordFailure(phoneNumber, name, category string) error
}

type Config struct {
	// Delay is the fixed pause between consecutive sends.
	Delay time.Duration
	// InviteImage, when set, is sent with the invitation as caption.
	InviteImage string
	Messages    *messages.Config
}

// Report summarizes one broadcast run.
type Report struct {
	Sent   int
	Failed int
}

type Dispatcher struct {
	sender  Sender
	store   Store
	cfg     *Config
	log     zerolog.Logger
	limiter *rate.Limiter
}

// NewDispatcher creates a broadcast dispatcher.
func NewDispatcher(sender Sender, store Store, cfg *Config, log zerolog.Logger) *Dispatcher {
	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}
	return &Dispatcher{
		sender:  sender,
		store:   store,
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Run sends the invitation to every guest whose status is not_responded
// at the moment the run starts. Sends are strictly sequential; a failed
// send is recorded in the undelivered ledger (at most once per guest)
// and the run continues. A successful send arms the guest's session so
// a direct 1/2/3 reply is processed without the reset keyword.
// Canceling the context stops the run between sends.
func (d *Dispatcher) Run(ctx context.Context) (Report, error) {
	cohort, err := d.store.ListByStatus(models.RSVPNotResponded)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load broadcast cohort: %w", err)
	}

	d.log.Info().Int("cohort", len(cohort)).Msg("Starting broadcast")

	var rep Report
	for _, g := range cohort {
		if err := d.limiter.Wait(ctx); err != nil {
			return rep, err
		}

		if err := d.sendInvitation(ctx, g); err != nil {
			d.log.Warn().Err(err).Str("phone", g.Phone).Msg("Failed to send invitation")
			if rerr := d.store.RecordFailure(g.Phone, g.Name, g.Category); rerr != nil {
				d.log.Error().Err(rerr).Str("phone", g.Phone).Msg("Failed to record undelivered message")
			}
			rep.Failed++
			continue
		}

		// Arm the conversation so the guest can answer directly.
		if err := d.store.SetSession(g.Phone, true, false); err != nil {
			d.log.Error().Err(err).Str("phone", g.Phone).Msg("Failed to arm session after send")
		}
		rep.Sent++
		d.log.Info().Str("phone", g.Phone).Str("name", g.Name).Msg("Invitation sent")
	}

	return rep, nil
}

func (d *Dispatcher) sendInvitation(ctx context.Context, g models.Guest) error {
	text := messages.Invitation(g.Name, d.cfg.Messages)
	if d.cfg.InviteImage != "" {
		return d.sender.SendImage(ctx, g.Phone, d.cfg.InviteImage, text)
	}
	return d.sender.SendText(ctx, g.Phone, text)
}
