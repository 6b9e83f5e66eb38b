package api

import (
	"context"
	"net/http"
)

// RegisterUser creates a new user account.
func (c *Client) RegisterUser(ctx context.Context, req *ReqInsertarUsuario) *ResInsertarUsuario {
	return exchange[ResInsertarUsuario](ctx, c, http.MethodPost, "api/usuario/insertar", req)
}

// Login authenticates the user and returns the server-issued session. The
// session is not persisted; see LoginAndSave.
func (c *Client) Login(ctx context.Context, email, password string) *ResLoginUsuario {
	req := &ReqLoginUsuario{Usuario: &UsuarioLogin{Correo: email, Contrasena: password}}
	return exchange[ResLoginUsuario](ctx, c, http.MethodPost, "api/usuario/login", req)
}

// LoginAndSave authenticates and, on success, persists the session locally.
// The display name is derived from the email local part until the profile
// supplies one.
func (c *Client) LoginAndSave(ctx context.Context, email, password string) *ResLoginUsuario {
	res := c.Login(ctx, email, password)
	if res.OK() && res.Sesion != nil {
		c.sessions.Save(res.Sesion, email, "", 0)
	}
	return res
}

// VerifyUser confirms the emailed verification code for email.
func (c *Client) VerifyUser(ctx context.Context, email string, code int) *ResVerificacion {
	req := &ReqVerificacion{Correo: email, Verificacion: code}
	return exchange[ResVerificacion](ctx, c, http.MethodPost, "api/usuario/verificar", req)
}

// GetUser fetches a user record by email and/or id. Pass userID 0 to look up
// by email alone.
func (c *Client) GetUser(ctx context.Context, email string, userID int) *ResObtenerUsuario {
	req := &ReqObtenerUsuario{Usuario: &Usuario{UsuarioID: userID, Correo: email, Activo: true}}
	return exchange[ResObtenerUsuario](ctx, c, http.MethodPost, "api/usuario/obtener", req)
}

// GetSessionUser fetches the profile of the logged-in user. Short-circuits
// with -10 when there is no active session and -11 when the session has no
// email, making zero network calls in either case.
func (c *Client) GetSessionUser(ctx context.Context) *ResObtenerUsuario {
	if !c.sessions.LoggedIn() {
		return failure[ResObtenerUsuario](CodeNoSession, "no active session, please log in")
	}
	email := c.sessions.UserEmail()
	if email == "" {
		return failure[ResObtenerUsuario](CodeNoSessionUser, "no user information in the session")
	}
	return c.GetUser(ctx, email, 0)
}
