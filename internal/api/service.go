package api

import (
	"context"
	"net/http"
)

// CreateService publishes a service listing. Requires an active session: it
// short-circuits with -10 before any network call when logged out, and always
// stamps the request with the stored session id.
func (c *Client) CreateService(ctx context.Context, req *ReqInsertarServicio) *ResInsertarServicio {
	if !c.sessions.LoggedIn() {
		return failure[ResInsertarServicio](CodeNoSession, "no active session, please log in")
	}
	req.SesionID = c.sessions.SessionID()
	return exchange[ResInsertarServicio](ctx, c, http.MethodPost, "api/servicio/insertar", req)
}
