package store

import "time"

// NotificationTTL is how long a notification stays visible unless dismissed.
const NotificationTTL = 5 * time.Second

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

type Notification struct {
	ID        int64
	Message   string
	Kind      NotificationKind
	ExpiresAt time.Time
}

// notify must be called with s.mu held.
func (s *Store) notify(msg string, kind NotificationKind) {
	s.nextNoteID++
	s.notes = append(s.notes, Notification{
		ID:        s.nextNoteID,
		Message:   msg,
		Kind:      kind,
		ExpiresAt: s.now().Add(NotificationTTL),
	})
}

// Notifications returns the visible notifications oldest first and forgets expired ones.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	live := s.notes[:0]
	for _, n := range s.notes {
		if now.Before(n.ExpiresAt) {
			live = append(live, n)
		}
	}
	s.notes = live

	out := make([]Notification, len(live))
	copy(out, live)
	return out
}

// Dismiss removes a notification before it expires. Unknown ids are ignored.
func (s *Store) Dismiss(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}
