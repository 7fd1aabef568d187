package crm

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/google/uuid"
)

func meetingID(m store.Meeting) string { return m.ID }

type MeetingService struct {
	store *store.Storage
}

func NewMeetingService(s *store.Storage) *MeetingService {
	return &MeetingService{store: s}
}

type MeetingInput struct {
	Title          string    `json:"title"`
	ClientID       string    `json:"client_id"`
	ParticipantIDs []string  `json:"participant_ids"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Location       string    `json:"location"`
	Notes          string    `json:"notes"`
}

func (in MeetingInput) apply(m *store.Meeting) error {
	m.Title = strings.TrimSpace(in.Title)
	m.ClientID = in.ClientID
	m.ParticipantIDs = in.ParticipantIDs
	m.StartsAt = in.StartsAt
	m.EndsAt = in.EndsAt
	m.Location = in.Location
	m.Notes = in.Notes
	return validation.Struct(*m)
}

// List returns meetings starting in [from, to), sorted by start. A zero bound is open.
// Agents only see meetings they take part in.
func (svc *MeetingService) List(ctx context.Context, from, to time.Time, s auth.Session) ([]store.Meeting, error) {
	all, err := svc.store.Meetings.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []store.Meeting{}
	for _, m := range all {
		if !from.IsZero() && m.StartsAt.Before(from) {
			continue
		}
		if !to.IsZero() && !m.StartsAt.Before(to) {
			continue
		}
		if !s.IsSupervisor() && !participates(m, s.UserID) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// Create adds the author as a participant.
func (svc *MeetingService) Create(ctx context.Context, in MeetingInput, s auth.Session) (*store.Meeting, error) {
	if s.UserID != "" && !contains(in.ParticipantIDs, s.UserID) {
		in.ParticipantIDs = append(in.ParticipantIDs, s.UserID)
	}

	m := store.Meeting{ID: uuid.NewString()}
	if err := in.apply(&m); err != nil {
		return nil, err
	}

	err := svc.store.Meetings.Update(ctx, func(items []store.Meeting) ([]store.Meeting, error) {
		return append(items, m), nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (svc *MeetingService) Update(ctx context.Context, id string, in MeetingInput, s auth.Session) (*store.Meeting, error) {
	var result store.Meeting
	err := svc.store.Meetings.Update(ctx, func(items []store.Meeting) ([]store.Meeting, error) {
		i := indexOf(items, id, meetingID)
		if i < 0 {
			return nil, ErrMeetingNotFound
		}
		if !s.IsSupervisor() && !participates(items[i], s.UserID) {
			return nil, auth.ErrForbidden
		}
		next := items[i]
		if err := in.apply(&next); err != nil {
			return nil, err
		}
		items[i] = next
		result = next
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (svc *MeetingService) Delete(ctx context.Context, id string, s auth.Session) error {
	return svc.store.Meetings.Update(ctx, func(items []store.Meeting) ([]store.Meeting, error) {
		i := indexOf(items, id, meetingID)
		if i < 0 {
			return nil, ErrMeetingNotFound
		}
		if !s.IsSupervisor() && !participates(items[i], s.UserID) {
			return nil, auth.ErrForbidden
		}
		return remove(items, i), nil
	})
}

func participates(m store.Meeting, userID string) bool {
	return contains(m.ParticipantIDs, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
