// Package api is the typed client for the ServiFlex backend. One method per
// endpoint; every failure mode (transport, protocol, or application) is
// normalized into the response envelope, never surfaced as a raw error.
package api

import "serviflex/mobile/internal/session"

// ErrorItem is the uniform (code, message) pair used for both server-reported
// and client-synthesized failures.
type ErrorItem struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// Result is the envelope every response carries. When Resultado is false the
// payload is unusable and Error holds at least one entry.
type Result struct {
	Resultado bool        `json:"resultado"`
	Error     []ErrorItem `json:"error"`
}

// fail marks the envelope as a failure with a single error entry.
func (r *Result) fail(code int, message string) {
	r.Resultado = false
	r.Error = append(r.Error, ErrorItem{ErrorCode: code, Message: message})
}

// OK reports whether the operation succeeded.
func (r *Result) OK() bool { return r.Resultado }

// FirstError returns the first error message, or "" on success.
func (r *Result) FirstError() string {
	if len(r.Error) == 0 {
		return ""
	}
	return r.Error[0].Message
}

// FirstErrorCode returns the first error code, or 0 when there is none.
func (r *Result) FirstErrorCode() int {
	if len(r.Error) == 0 {
		return 0
	}
	return r.Error[0].ErrorCode
}

// Backend entities. Field casing follows the wire format exactly; timestamps
// stay raw strings because the backend's format varies (see session.Session).

// Provincia is a province in the location catalog.
type Provincia struct {
	ProvinciaID int    `json:"ProvinciaId"`
	Nombre      string `json:"Nombre"`
	CreatedAt   string `json:"CreatedAt,omitempty"`
	UpdatedAt   string `json:"UpdatedAt,omitempty"`
}

// Canton is a canton, nested under its province.
type Canton struct {
	CantonID  int        `json:"CantonId"`
	Provincia *Provincia `json:"Provincia,omitempty"`
	Nombre    string     `json:"Nombre"`
	CreatedAt string     `json:"CreatedAt,omitempty"`
	UpdatedAt string     `json:"UpdatedAt,omitempty"`
}

// Categoria is a top-level service category.
type Categoria struct {
	CategoriaID int    `json:"CategoriaId"`
	Nombre      string `json:"Nombre"`
	CreatedAt   string `json:"CreatedAt,omitempty"`
	UpdatedAt   string `json:"UpdatedAt,omitempty"`
}

// SubCategoria is a subcategory, nested under its category.
type SubCategoria struct {
	SubCategoriaID int        `json:"SubCategoriaId"`
	Categoria      *Categoria `json:"Categoria,omitempty"`
	Nombre         string     `json:"Nombre"`
	CreatedAt      string     `json:"CreatedAt,omitempty"`
	UpdatedAt      string     `json:"UpdatedAt,omitempty"`
}

// Usuario is the full user record as the backend models it.
type Usuario struct {
	UsuarioID       int        `json:"UsuarioId"`
	Provincia       *Provincia `json:"Provincia,omitempty"`
	Canton          *Canton    `json:"Canton,omitempty"`
	Nombre          string     `json:"Nombre"`
	Apellido1       string     `json:"Apellido1"`
	Apellido2       string     `json:"Apellido2"`
	FechaNacimiento string     `json:"FechaNacimiento,omitempty"`
	Correo          string     `json:"Correo"`
	FotoPerfil      string     `json:"FotoPerfil"`
	Telefono        string     `json:"Telefono"`
	Direccion       string     `json:"Direccion"`
	Contrasena      string     `json:"Contrasena"`
	Salt            string     `json:"Salt"`
	Verificacion    int        `json:"Verificacion"`
	Activo          bool       `json:"Activo"`
	PerfilCompleto  bool       `json:"PerfilCompleto"`
	CreatedAt       string     `json:"CreatedAt,omitempty"`
	UpdatedAt       string     `json:"UpdatedAt,omitempty"`
}

// Servicio is a published service listing.
type Servicio struct {
	ServicioID     int            `json:"ServicioId"`
	Usuario        *Usuario       `json:"Usuario,omitempty"`
	Categoria      *Categoria     `json:"Categoria,omitempty"`
	Titulo         string         `json:"Titulo"`
	Descripcion    string         `json:"Descripcion"`
	Precio         float64        `json:"Precio"`
	Disponibilidad string         `json:"Disponibilidad"`
	SubCategorias  []SubCategoria `json:"SubCategorias,omitempty"`
	CreatedAt      string         `json:"CreatedAt,omitempty"`
	UpdatedAt      string         `json:"UpdatedAt,omitempty"`
}

// Request/response envelopes, one pair per endpoint.

// ReqInsertarUsuario registers a new user.
type ReqInsertarUsuario struct {
	Usuario *Usuario `json:"Usuario"`
}

// ResInsertarUsuario answers the register call.
type ResInsertarUsuario struct {
	Result
}

// UsuarioLogin carries the login credentials.
type UsuarioLogin struct {
	Correo     string `json:"Correo"`
	Contrasena string `json:"Contrasena"`
}

// ReqLoginUsuario starts a session.
type ReqLoginUsuario struct {
	Usuario *UsuarioLogin `json:"Usuario"`
}

// ResLoginUsuario answers the login call with the server-issued session.
type ResLoginUsuario struct {
	Sesion *session.Session `json:"sesion"`
	Result
}

// ReqVerificacion confirms the emailed verification code.
type ReqVerificacion struct {
	Correo       string `json:"Correo"`
	Verificacion int    `json:"Verificacion"`
}

// ResVerificacion answers the verification call.
type ResVerificacion struct {
	Result
}

// ReqObtenerUsuario fetches a user by id or email.
type ReqObtenerUsuario struct {
	Usuario *Usuario `json:"Usuario"`
}

// ResObtenerUsuario answers the profile fetch.
type ResObtenerUsuario struct {
	Usuario *Usuario `json:"Usuario"`
	Result
}

// ResListarCategorias lists all categories.
type ResListarCategorias struct {
	Categorias []Categoria `json:"Categorias"`
	Result
}

// ResListarSubCategorias lists all subcategories.
type ResListarSubCategorias struct {
	SubCategorias []SubCategoria `json:"SubCategorias"`
	Result
}

// ResListarProvincias lists all provinces.
type ResListarProvincias struct {
	Provincias []Provincia `json:"Provincias"`
	Result
}

// ResListarCantones lists all cantons.
type ResListarCantones struct {
	Cantones []Canton `json:"Cantones"`
	Result
}

// ReqInsertarServicio publishes a service listing; requires an active session.
type ReqInsertarServicio struct {
	SesionID string    `json:"SesionId"`
	Servicio *Servicio `json:"Servicio"`
}

// ResInsertarServicio answers the publish call.
type ResInsertarServicio struct {
	ServicioID int    `json:"ServicioId"`
	Mensaje    string `json:"Mensaje"`
	Result
}
