// Package routepath stores canonical HTTP paths for web modules.
package routepath

import "net/url"

const (
	Root   = "/"
	Health = "/up"

	StaticPrefix = "/static/"

	AuthPrefix     = "/auth/"
	Login          = "/auth/login"
	Logout         = "/auth/logout"
	AuthUser       = "/auth/user"
	PasswordChange = "/auth/pwchange"

	DashboardPrefix      = "/dashboard/"
	DashboardSessions    = "/dashboard/sessions"
	DashboardEvents      = "/dashboard/events"
	SessionPattern       = DashboardPrefix + "{sessionID}"
	SessionDeletePattern = DashboardSessions + "/{sessionID}"

	APIPrefix         = "/api/"
	APISessions       = "/api/session"
	APISessionPattern = APISessions + "/{sessionID}"
	APIBoards         = "/api/board"
	APIBoardPattern   = APIBoards + "/{boardID}"
)

// Session returns the dashboard page path of one session. The id is
// concatenated verbatim; callers render it through attribute escaping.
func Session(id string) string {
	return DashboardPrefix + id
}

// SessionDelete returns the delete endpoint path of one session.
func SessionDelete(id string) string {
	return DashboardSessions + "/" + url.PathEscape(id)
}
