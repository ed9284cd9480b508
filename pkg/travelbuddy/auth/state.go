package auth

import (
	"context"
	"sync"

	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
)

// SessionState follows one session for the lifetime of a long-lived
// connection. It ends when the session signs out or Close is called.
type SessionState struct {
	session *Session
	hub     *events.Hub
	sub     *events.Subscription
	changes chan events.Event
	done    chan struct{}
	once    sync.Once
}

// Resume starts tracking the session behind an existing token.
func (s *Service) Resume(ctx context.Context, token string) (*SessionState, error) {
	session, err := s.CurrentSession(ctx, token)
	if err != nil {
		return nil, err
	}

	st := &SessionState{
		session: session,
		hub:     s.hub,
		sub:     s.hub.Subscribe(events.SessionTopic(session.User.ID)),
		changes: make(chan events.Event, 16),
		done:    make(chan struct{}),
	}
	go st.watch()
	return st, nil
}

// Session returns the tracked session
func (st *SessionState) Session() *Session {
	return st.session
}

// Changes delivers session events for the user. It is closed once the
// state ends.
func (st *SessionState) Changes() <-chan events.Event {
	return st.changes
}

// Done is closed when the state ends.
func (st *SessionState) Done() <-chan struct{} {
	return st.done
}

// Close stops tracking. It is safe to call more than once.
func (st *SessionState) Close() {
	st.once.Do(func() {
		close(st.done)
		st.hub.Unsubscribe(st.sub)
	})
}

func (st *SessionState) watch() {
	defer close(st.changes)

	for e := range st.sub.Events {
		select {
		case st.changes <- e:
		default:
		}
		if e.Type == events.SignedOut && e.SessionID == st.session.ID {
			st.Close()
		}
	}
}
