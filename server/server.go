// Package server exposes document generation over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bilingual-pdf/logger"
)

const requestIDKey = "requestid"

type Server struct {
	listenAddr string
	app        *fiber.App
}

func NewServer(addr string, gen Generator) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: requestIDKey}))
	app.Use(requestLogger)

	var (
		checkHandler    = NewCheckHandler()
		documentHandler = NewDocumentHandler(gen)
		check           = app.Group("/check")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	app.Get("/", documentHandler.HandleIndex)
	app.Get("/preview", documentHandler.HandlePreview)
	app.Post("/generate_pdf", documentHandler.HandleGeneratePDF)
	app.Post("/generate_epub", documentHandler.HandleGenerateEPUB)

	return &Server{listenAddr: addr, app: app}
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run blocks until the server stops.
func (s *Server) Run() error {
	logger.Info("server listening", "addr", s.listenAddr)
	return s.app.Listen(s.listenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	logger.Info("server stopped")
	return err
}

// requestLogger logs one line per request. It runs the error handler
// itself so the logged status is the one sent.
func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	if chainErr := c.Next(); chainErr != nil {
		if err := ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	logger.InfoContext(c.UserContext(), "request",
		"request_id", c.Locals(requestIDKey),
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return nil
}
