// Package server exposes the statement pipeline over HTTP: a preview
// endpoint for the upload-and-check workflow and an import endpoint that
// runs the dedup gate. JSON in and out; the heavy lifting stays in the
// importer.
package server

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jmhart/bankscan/internal/importer"
	"github.com/jmhart/bankscan/internal/service"
)

// Server wires the fiber app to the importer and storage.
type Server struct {
	app   *fiber.App
	imp   *importer.Importer
	store service.Storage
}

// New creates a Server with all routes registered.
func New(imp *importer.Importer, store service.Storage) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:   "bankscan",
			BodyLimit: 32 << 20, // statement PDFs are small; 32MB is generous
		}),
		imp:   imp,
		store: store,
	}

	s.app.Get("/healthz", s.handleHealth)
	api := s.app.Group("/api")
	api.Post("/statements/preview", s.handlePreview)
	api.Post("/statements/import", s.handleImport)
	api.Get("/transactions", s.handleTransactions)
	api.Get("/transactions/stats", s.handleStats)

	return s
}

// Listen serves HTTP on the given address until shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// receiveStatement writes the uploaded statement to a temp file and returns
// its path. The importer dispatches on the file extension, so the original
// filename's extension is preserved.
func (s *Server) receiveStatement(c *fiber.Ctx) (string, func(), error) {
	fileHeader, err := c.FormFile("statement")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "missing statement file")
	}

	dir, err := os.MkdirTemp("", "bankscan-upload-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
