package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidDirection = errors.New("Direction must be toWork or toHome")

// Manager runs route drafting sessions on behalf of users.
// Every operation loads the session, applies the change to its draft and stores it again.
// A failed change is never stored so the session stays as it was.
type Manager struct {
	Sessions *Store
	Routes   commuteroutes.Store
}

func (m *Manager) New(ctx context.Context, userID string, name string, direction ctdf.RouteDirection) (*Session, error) {
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}

	session := &Session{
		ID:               uuid.NewString(),
		UserID:           userID,
		Mode:             SessionModeNew,
		Name:             name,
		Direction:        direction,
		Draft:            routebuilder.NewDraft(),
		CreationDateTime: time.Now(),
	}

	if err := m.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	log.Debug().Str("session", session.ID).Str("user", userID).Msg("Started new route draft")

	return session, nil
}

// Edit starts a session pre-filled with the stops of a saved route
func (m *Manager) Edit(ctx context.Context, userID string, routeID string) (*Session, error) {
	route, err := m.Routes.Get(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if route.UserID != userID {
		return nil, commuteroutes.ErrRouteNotFound
	}

	session := &Session{
		ID:               uuid.NewString(),
		UserID:           userID,
		Mode:             SessionModeEdit,
		RouteID:          route.PrimaryIdentifier,
		Name:             route.Name,
		Direction:        route.Direction,
		Draft:            routebuilder.RestoreDraft(route.Checkpoints),
		CreationDateTime: time.Now(),
	}

	if err := m.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	log.Debug().Str("session", session.ID).Str("route", routeID).Msg("Started route edit draft")

	return session, nil
}

func (m *Manager) Get(ctx context.Context, userID string, id string) (*Session, error) {
	session, err := m.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (m *Manager) mutate(ctx context.Context, userID string, id string, change func(*Session) error) (*Session, error) {
	session, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := change(session); err != nil {
		return session, err
	}

	if err := m.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (m *Manager) SetSearchText(ctx context.Context, userID string, id string, text string) (*Session, error) {
	return m.mutate(ctx, userID, id, func(session *Session) error {
		session.Draft.SetSearchText(text)
		return nil
	})
}

// Pick resolves a search candidate, appending it when no line choice is needed
func (m *Manager) Pick(ctx context.Context, userID string, id string, candidate routebuilder.StopCandidate) (*Session, routebuilder.Disambiguation, error) {
	var disambiguation routebuilder.Disambiguation

	session, err := m.mutate(ctx, userID, id, func(session *Session) error {
		var err error
		disambiguation, err = session.Draft.Pick(candidate)
		return err
	})

	return session, disambiguation, err
}

func (m *Manager) Append(ctx context.Context, userID string, id string, choice routebuilder.StopChoice) (*Session, error) {
	return m.mutate(ctx, userID, id, func(session *Session) error {
		return session.Draft.Append(choice)
	})
}

func (m *Manager) Remove(ctx context.Context, userID string, id string, index int) (*Session, error) {
	return m.mutate(ctx, userID, id, func(session *Session) error {
		return session.Draft.Remove(index)
	})
}

func (m *Manager) Reorder(ctx context.Context, userID string, id string, key string, toIndex int) (*Session, error) {
	return m.mutate(ctx, userID, id, func(session *Session) error {
		return session.Draft.Reorder(key, toIndex)
	})
}

// Cancel discards the session without saving anything
func (m *Manager) Cancel(ctx context.Context, userID string, id string) error {
	if _, err := m.Get(ctx, userID, id); err != nil {
		return err
	}

	return m.Sessions.Delete(ctx, id)
}

// Save maps the draft into checkpoints and hands them to the route store, ending the session.
// A draft that does not validate is refused with a *routebuilder.RejectedError.
func (m *Manager) Save(ctx context.Context, userID string, id string) (*ctdf.CommuteRoute, error) {
	session, err := m.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	result := session.Draft.Validation()
	if !result.IsValid {
		return nil, &routebuilder.RejectedError{
			Message: result.Errors[0],
			Result:  result,
		}
	}

	route := &ctdf.CommuteRoute{
		PrimaryIdentifier: session.RouteID,
		UserID:            userID,
		Name:              session.Name,
		Direction:         session.Direction,
		Checkpoints:       routebuilder.MapCheckpoints(session.Draft.Stops(), session.Direction),
	}

	if session.Mode == SessionModeEdit {
		existing, err := m.Routes.Get(ctx, session.RouteID)
		if err != nil {
			return nil, err
		}
		route.CreationDateTime = existing.CreationDateTime
	}

	if err := m.Routes.Save(ctx, route); err != nil {
		return nil, err
	}

	if err := m.Sessions.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("session", id).Msg("Failed to discard saved draft")
	}

	log.Info().Str("route", route.PrimaryIdentifier).Str("user", userID).Int("checkpoints", len(route.Checkpoints)).Msg("Saved commute route")

	return route, nil
}
