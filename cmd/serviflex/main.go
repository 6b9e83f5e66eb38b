// serviflex is the terminal front-end for the ServiFlex marketplace: login,
// registration, email verification, profile, catalog browsing, and service
// publishing against the ServiFlex backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"serviflex/mobile/internal/api"
	"serviflex/mobile/internal/config"
	"serviflex/mobile/internal/session"
	"serviflex/mobile/internal/store"
	"serviflex/mobile/internal/store/migrate"
	"serviflex/mobile/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		log.Fatalf("data dir: %v", err)
	}
	dbPath := filepath.Join(cfg.DataDir, "prefs.db")
	if err := migrate.Run(dbPath, "up"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	prefs, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer prefs.Close()

	key, err := store.LoadOrCreateKey(cfg.DataDir)
	if err != nil {
		log.Fatalf("device key: %v", err)
	}
	sealer, err := store.NewSealer(key)
	if err != nil {
		log.Fatalf("sealer: %v", err)
	}

	sessions := session.NewManager(prefs, sealer)

	app := &app{
		cfg:      cfg,
		sessions: sessions,
		in:       bufio.NewScanner(os.Stdin),
	}
	notifier := transport.Notifier{
		Alert:           app.alert,
		ResetNavigation: app.resetNavigation,
	}
	httpClient := transport.NewHTTPClient(sessions, notifier, cfg.Timeout(), cfg.AppVersion, cfg.AppPlatform)
	app.client = api.New(cfg.APIBaseURL, httpClient, sessions)

	app.run()
}

// app holds the terminal UI state.
type app struct {
	cfg      *config.Config
	client   *api.Client
	sessions *session.Manager
	in       *bufio.Scanner
}

// alert is the transport's blocking-notification capability.
func (a *app) alert(title, message string) {
	fmt.Printf("\n[%s] %s\n", title, message)
}

// resetNavigation is the transport's redirect-to-entry capability. The menu
// loop re-checks the session on every pass, so announcing the redirect is
// enough; the next iteration lands on the entry menu.
func (a *app) resetNavigation() {
	fmt.Println("\nReturning to the sign-in screen.")
}

func (a *app) run() {
	fmt.Println("ServiFlex", a.cfg.AppVersion)
	for {
		if !a.sessions.LoggedIn() {
			if !a.entryMenu() {
				return
			}
			continue
		}
		if !a.homeMenu() {
			return
		}
	}
}

// entryMenu is the unauthenticated entry point.
func (a *app) entryMenu() bool {
	fmt.Println("\n1) Log in  2) Register  3) Verify email  0) Quit")
	switch a.prompt("> ") {
	case "1":
		a.login()
	case "2":
		a.register()
	case "3":
		a.verify()
	case "0":
		return false
	}
	return true
}

func (a *app) homeMenu() bool {
	fmt.Printf("\nLogged in as %s <%s>\n", a.sessions.UserName(), a.sessions.UserEmail())
	fmt.Println("1) Profile  2) Categories  3) Locations  4) Publish service  5) Session info  6) Log out  0) Quit")
	switch a.prompt("> ") {
	case "1":
		a.profile()
	case "2":
		a.categories()
	case "3":
		a.locations()
	case "4":
		a.publish()
	case "5":
		a.sessions.LogSessionInfo()
		a.sessions.LogTokenInfo()
	case "6":
		a.sessions.CloseSession()
		fmt.Println("Logged out.")
	case "0":
		return false
	}
	return true
}

func (a *app) login() {
	email := a.prompt("Email: ")
	password := a.prompt("Password: ")

	res := a.client.LoginAndSave(context.Background(), email, password)
	if !res.OK() {
		fmt.Println("Login failed:", res.FirstError())
		return
	}
	fmt.Println("Welcome,", a.sessions.UserName())
}

func (a *app) register() {
	user := &api.Usuario{
		Nombre:          a.prompt("First name: "),
		Apellido1:       a.prompt("Last name: "),
		Apellido2:       a.prompt("Second last name: "),
		Correo:          a.prompt("Email: "),
		Telefono:        a.prompt("Phone: "),
		FechaNacimiento: a.prompt("Date of birth (2000-01-31): "),
		Contrasena:      a.prompt("Password: "),
		Activo:          true,
	}

	res := a.client.RegisterUser(context.Background(), &api.ReqInsertarUsuario{Usuario: user})
	if !res.OK() {
		fmt.Println("Registration failed:", res.FirstError())
		return
	}
	fmt.Println("Registered. Check your email for the verification code.")
}

func (a *app) verify() {
	email := a.prompt("Email: ")
	code := a.promptInt("Verification code: ")

	res := a.client.VerifyUser(context.Background(), email, code)
	if !res.OK() {
		fmt.Println("Verification failed:", res.FirstError())
		return
	}
	fmt.Println("Email verified. You can log in now.")
}

func (a *app) profile() {
	res := a.client.GetSessionUser(context.Background())
	if !res.OK() {
		fmt.Println("Could not load profile:", res.FirstError())
		return
	}
	u := res.Usuario
	if u == nil {
		fmt.Println("Profile is empty.")
		return
	}
	fmt.Printf("%s %s %s <%s>\nPhone: %s\n", u.Nombre, u.Apellido1, u.Apellido2, u.Correo, u.Telefono)
	a.sessions.UpdateUserInfo(u.Nombre, u.UsuarioID)
}

func (a *app) categories() {
	cats := a.client.ListCategories(context.Background())
	if !cats.OK() {
		fmt.Println("Could not load categories:", cats.FirstError())
		return
	}
	subs := a.client.ListSubCategories(context.Background())
	for _, c := range cats.Categorias {
		fmt.Printf("%d) %s\n", c.CategoriaID, c.Nombre)
		if !subs.OK() {
			continue
		}
		for _, s := range subs.SubCategorias {
			if s.Categoria != nil && s.Categoria.CategoriaID == c.CategoriaID {
				fmt.Printf("   - %s\n", s.Nombre)
			}
		}
	}
}

func (a *app) locations() {
	provinces := a.client.ListProvinces(context.Background())
	if !provinces.OK() {
		fmt.Println("Could not load provinces:", provinces.FirstError())
		return
	}
	cantons := a.client.ListCantons(context.Background())
	for _, p := range provinces.Provincias {
		fmt.Printf("%d) %s\n", p.ProvinciaID, p.Nombre)
		if !cantons.OK() {
			continue
		}
		for _, c := range api.FilterCantonsByProvince(cantons.Cantones, p.ProvinciaID) {
			fmt.Printf("   - %s\n", c.Nombre)
		}
	}
}

func (a *app) publish() {
	servicio := &api.Servicio{
		Titulo:         a.prompt("Title: "),
		Descripcion:    a.prompt("Description: "),
		Disponibilidad: a.prompt("Availability: "),
	}
	if price, err := strconv.ParseFloat(a.prompt("Price: "), 64); err == nil {
		servicio.Precio = price
	}
	if id := a.promptInt("Category id: "); id > 0 {
		servicio.Categoria = &api.Categoria{CategoriaID: id}
	}

	res := a.client.CreateService(context.Background(), &api.ReqInsertarServicio{Servicio: servicio})
	if !res.OK() {
		fmt.Println("Publish failed:", res.FirstError())
		return
	}
	fmt.Printf("Published service %d: %s\n", res.ServicioID, res.Mensaje)
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) promptInt(label string) int {
	n, err := strconv.Atoi(a.prompt(label))
	if err != nil {
		return 0
	}
	return n
}
