// Package handler implements the per-guest RSVP conversation.
//
// Each guest moves through four states: dormant (no open session),
// awaiting a 1/2/3 choice, awaiting an attendee count, and responded.
// The durable flags on the guest record are authoritative; the
// in-process session cache only mirrors them.
package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"rsvp-whatsapp/internal/messages"
	"rsvp-whatsapp/internal/models"
	"rsvp-whatsapp/internal/phone"
	"rsvp-whatsapp/internal/storage"
)

// Sender delivers outbound texts to a guest.
type Sender interface {
	SendText(ctx context.Context, phoneNumber, text string) error
}

// GuestStore is the slice of the guest directory the engine needs.
type GuestStore interface {
	Get(phoneNumber string) (*models.Guest, error)
	OpenSession(phoneNumber string) error
	SetSession(phoneNumber string, active, awaitingCount bool) error
	UpdateRSVP(phoneNumber string, status models.RSVPStatus, attendees int) error
}

type Config struct {
	CountryCode string
	Messages    *messages.Config
}

// session mirrors the durable per-guest flags for fast-path reads
// within one process lifetime. Entries are rebuilt from the guest
// record after a restart.
type session struct {
	awaitingCount     bool
	finalResponseSent bool
}

type RSVPHandler struct {
	sender Sender
	store  GuestStore
	cfg    *Config
	log    zerolog.Logger

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	sessions map[string]*session
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(sender Sender, store GuestStore, cfg *Config, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		sender:   sender,
		store:    store,
		cfg:      cfg,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
		sessions: make(map[string]*session),
	}
}

// HandleMessage processes one inbound message from a guest and sends at
// most one reply. The durable write always happens before the reply, so
// a reply never claims a state change that was not committed; if the
// store is unreachable the event errors out unanswered and can be
// redelivered. Redelivering an already-processed event only repeats
// idempotent writes and the reply.
func (h *RSVPHandler) HandleMessage(ctx context.Context, contact, text string) error {
	id := phone.Normalize(contact, h.cfg.CountryCode)
	if id == "" {
		return nil
	}

	// Serialize per guest: the read-modify-write below must not
	// interleave for the same contact.
	unlock := h.lockContact(id)
	defer unlock()

	in := classify(text, h.cfg.Messages.ResetKeyword)

	guest, err := h.store.Get(id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load guest %s: %w", id, err)
	}

	// The reset keyword reopens the conversation from any state, so an
	// answer can always be revised.
	if in.kind == inputReset {
		if err := h.store.OpenSession(id); err != nil {
			return fmt.Errorf("failed to open session for %s: %w", id, err)
		}
		h.cacheSession(id, false, false)
		var name string
		if guest != nil {
			name = guest.Name
		}
		return h.reply(ctx, id, messages.Invitation(name, h.cfg.Messages))
	}

	if guest == nil {
		// Unknown number and not a reset trigger: ignore.
		return nil
	}

	sess := h.sessionFor(guest)

	if !guest.SessionActive {
		if sess.finalResponseSent {
			// Final answer on file, no open session: rebuff without
			// touching state.
			return h.reply(ctx, id, messages.AlreadyResponded(h.cfg.Messages))
		}
		// Dormant guest who never opened the conversation; stay silent
		// so closed conversations don't get unsolicited replies.
		return nil
	}

	if sess.awaitingCount {
		return h.handleCount(ctx, id, in)
	}
	return h.handleChoice(ctx, id, in)
}

func (h *RSVPHandler) handleChoice(ctx context.Context, id string, in input) error {
	switch {
	case in.kind == inputAttend || (in.kind == inputNumeric && in.number == 1):
		if err := h.store.SetSession(id, true, true); err != nil {
			return fmt.Errorf("failed to arm attendee count for %s: %w", id, err)
		}
		h.cacheSession(id, true, false)
		return h.reply(ctx, id, messages.CountPrompt())

	case in.kind == inputDecline || (in.kind == inputNumeric && in.number == 2):
		if err := h.store.UpdateRSVP(id, models.RSVPNo, 0); err != nil {
			return fmt.Errorf("failed to record decline for %s: %w", id, err)
		}
		h.cacheSession(id, false, true)
		return h.reply(ctx, id, messages.DeclineAck(h.cfg.Messages))

	case in.kind == inputMaybe || (in.kind == inputNumeric && in.number == 3):
		if err := h.store.UpdateRSVP(id, models.RSVPMaybe, 0); err != nil {
			return fmt.Errorf("failed to record maybe for %s: %w", id, err)
		}
		h.cacheSession(id, false, true)
		return h.reply(ctx, id, messages.MaybeAck(h.cfg.Messages))

	default:
		return h.reply(ctx, id, messages.Help())
	}
}

func (h *RSVPHandler) handleCount(ctx context.Context, id string, in input) error {
	if in.kind != inputNumeric {
		return h.reply(ctx, id, messages.NotANumber())
	}
	if in.number < 1 || in.number > h.cfg.Messages.MaxAttendees {
		return h.reply(ctx, id, messages.OutOfRange(h.cfg.Messages))
	}

	if err := h.store.UpdateRSVP(id, models.RSVPYes, in.number); err != nil {
		return fmt.Errorf("failed to record attendance for %s: %w", id, err)
	}
	h.cacheSession(id, false, true)
	return h.reply(ctx, id, messages.Confirmation(in.number, h.cfg.Messages))
}

// reply sends the outbound text. Transport failures are logged and
// swallowed: state is already committed, and the guest can resend to
// get a fresh reply.
func (h *RSVPHandler) reply(ctx context.Context, id, text string) error {
	if err := h.sender.SendText(ctx, id, text); err != nil {
		h.log.Warn().Err(err).Str("phone", id).Msg("Failed to send reply")
	}
	return nil
}

// lockContact acquires the per-contact mutex, creating it on first use.
func (h *RSVPHandler) lockContact(id string) func() {
	h.mu.Lock()
	m, ok := h.locks[id]
	if !ok {
		m = &sync.Mutex{}
		h.locks[id] = m
	}
	h.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// sessionFor returns the cached session for the guest, rebuilding it
// from the durable flags when the cache is cold.
func (h *RSVPHandler) sessionFor(g *models.Guest) session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[g.Phone]; ok {
		return *s
	}
	s := &session{
		awaitingCount:     g.AwaitingCount,
		finalResponseSent: !g.SessionActive && g.Status.Responded(),
	}
	h.sessions[g.Phone] = s
	return *s
}

func (h *RSVPHandler) cacheSession(id string, awaitingCount, finalResponseSent bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[id] = &session{
		awaitingCount:     awaitingCount,
		finalResponseSent: finalResponseSent,
	}
}
