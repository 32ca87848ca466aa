package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-whatsapp/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertCreatesAndRefreshes(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000001", Name: "Dana", Category: "family"}))

	g, err := s.Get("972540000001")
	require.NoError(t, err)
	assert.Equal(t, "Dana", g.Name)
	assert.Equal(t, models.RSVPNotResponded, g.Status)
	assert.False(t, g.SessionActive)
	assert.False(t, g.InvitedAt.IsZero())

	// Re-import refreshes contact fields but keeps a single record.
	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000001", Name: "Dana Levi", Category: "work"}))

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Dana Levi", all[0].Name)
	assert.Equal(t, "work", all[0].Category)
}

func TestUpsertDoesNotOverwriteAnswer(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000002", Name: "Noa"}))
	require.NoError(t, s.UpdateRSVP("972540000002", models.RSVPYes, 3))

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000002", Name: "Noa Cohen"}))

	g, err := s.Get("972540000002")
	require.NoError(t, err)
	assert.Equal(t, models.RSVPYes, g.Status)
	assert.Equal(t, 3, g.Attendees)
	assert.Equal(t, "Noa Cohen", g.Name)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("972549999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenSessionCreatesUnknownGuest(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.OpenSession("972540000003"))

	g, err := s.Get("972540000003")
	require.NoError(t, err)
	assert.True(t, g.SessionActive)
	assert.False(t, g.AwaitingCount)
	assert.Equal(t, models.RSVPNotResponded, g.Status)
}

func TestOpenSessionClearsAwaitingCount(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000004"}))
	require.NoError(t, s.SetSession("972540000004", true, true))
	require.NoError(t, s.OpenSession("972540000004"))

	g, err := s.Get("972540000004")
	require.NoError(t, err)
	assert.True(t, g.SessionActive)
	assert.False(t, g.AwaitingCount)
}

func TestUpdateRSVPClosesSession(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000005", Name: "Yossi"}))
	require.NoError(t, s.SetSession("972540000005", true, true))

	require.NoError(t, s.UpdateRSVP("972540000005", models.RSVPYes, 4))

	g, err := s.Get("972540000005")
	require.NoError(t, err)
	assert.Equal(t, models.RSVPYes, g.Status)
	assert.Equal(t, 4, g.Attendees)
	assert.False(t, g.SessionActive)
	assert.False(t, g.AwaitingCount)
	assert.False(t, g.RespondedAt.IsZero())
}

func TestUpdateRSVPUnknownGuest(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateRSVP("972549999999", models.RSVPNo, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByStatus(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000010", Name: "A"}))
	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000011", Name: "B"}))
	require.NoError(t, s.Upsert(models.Guest{Phone: "972540000012", Name: "C"}))
	require.NoError(t, s.UpdateRSVP("972540000011", models.RSVPNo, 0))

	pending, err := s.ListByStatus(models.RSVPNotResponded)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "A", pending[0].Name)
	assert.Equal(t, "C", pending[1].Name)

	declined, err := s.ListByStatus(models.RSVPNo)
	require.NoError(t, err)
	require.Len(t, declined, 1)
	assert.Equal(t, "B", declined[0].Name)
}

func TestRecordFailureIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.RecordFailure("972540000020", "Gil", "friends"))
	require.NoError(t, s.RecordFailure("972540000020", "Gil", "friends"))
	require.NoError(t, s.RecordFailure("972540000021", "Tal", ""))

	entries, err := s.ListFailures()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "972540000020", entries[0].Phone)
	assert.Equal(t, "friends", entries[0].Category)
	assert.False(t, entries[0].FailedAt.IsZero())
}
