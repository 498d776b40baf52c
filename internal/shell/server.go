package shell

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/template/html/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed views/*.html
var viewsFS embed.FS

// Server serves the window and its form actions.
type Server struct {
	App   *fiber.App
	shell *Shell
}

func NewServer(shell *Shell) *Server {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		AppName: "reviewlens",
		Views:   engine,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}

			slog.Error("[Server] Request failed",
				slog.String("path", c.Path()),
				slog.String("error", err.Error()))
			return c.Status(code).SendString(message)
		},
	})

	app.Use(recoverer.New())

	s := &Server{App: app, shell: shell}

	app.Get("/", s.Window)
	app.Post("/analyze", s.Analyze)
	app.Post("/cancel", s.Cancel)
	app.Post("/dismiss", s.Dismiss)
	app.Get("/api/state", s.State)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return s
}

func (s *Server) Listen(addr string) error {
	return s.App.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}

// Window renders the whole form.
func (s *Server) Window(c fiber.Ctx) error {
	snap := s.shell.Snapshot()
	return c.Render("window", fiber.Map{
		"URL":       snap.URL,
		"Analyzing": snap.State == Analyzing,
		"Results":   snap.ResultsText,
		"Spam":      snap.SpamText,
		"Error":     snap.Error,
	})
}

func (s *Server) Analyze(c fiber.Ctx) error {
	if err := s.shell.Submit(c.FormValue("url")); err != nil && !errors.Is(err, ErrBusy) {
		slog.Warn("[Server] Submission rejected", slog.String("error", err.Error()))
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (s *Server) Cancel(c fiber.Ctx) error {
	s.shell.Cancel()
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (s *Server) Dismiss(c fiber.Ctx) error {
	s.shell.Dismiss()
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (s *Server) State(c fiber.Ctx) error {
	return c.JSON(s.shell.Snapshot())
}
