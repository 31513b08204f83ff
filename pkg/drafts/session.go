package drafts

import (
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
)

type SessionMode string

const (
	SessionModeNew  SessionMode = "new"
	SessionModeEdit SessionMode = "edit"
)

// Session is one route drafting session, from creating or editing a route until it is
// saved or cancelled
type Session struct {
	ID      string
	UserID  string
	Mode    SessionMode
	RouteID string `json:",omitempty"`

	Name      string
	Direction ctdf.RouteDirection

	Draft *routebuilder.Draft

	CreationDateTime time.Time
}
