// Package server exposes games over HTTP and websockets.
//
// REST routes live under /api/games; /ws/games/:id carries the same
// operations as JSON messages on a long-lived connection.
package server

import (
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-ai-go/internal/config"
	"github.com/lgbarn/chess-ai-go/internal/errors"
	"github.com/lgbarn/chess-ai-go/internal/service"
)

// Server wires the game manager to a fiber app.
type Server struct {
	app   *fiber.App
	games *service.GameManager
	cfg   *config.Config
	log   zerolog.Logger
}

// New creates the server and registers its routes.
func New(cfg *config.Config, games *service.GameManager, log zerolog.Logger) *Server {
	s := &Server{
		games: games,
		cfg:   cfg,
		log:   log,
	}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	s.app.Use(s.requestLogger)

	api := s.app.Group("/api")
	api.Get("/health", s.health)

	gameRoutes := api.Group("/games")
	gameRoutes.Post("/", s.createGame)
	gameRoutes.Get("/:gameId", s.getGameState)
	gameRoutes.Delete("/:gameId", s.deleteGame)
	gameRoutes.Get("/:gameId/moves", s.legalMoves)
	gameRoutes.Post("/:gameId/moves", s.makeMove)
	gameRoutes.Post("/:gameId/ai", s.aiMove)

	s.app.Use("/ws", s.websocketUpgrade)
	s.app.Get("/ws/games/:gameId", websocket.New(s.handleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	return s
}

// App returns the fiber app, for tests and embedding.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("server listening")
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops the server, closing open connections.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return err
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case stderrors.As(err, &fe):
		return fe.Code
	case stderrors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrGameOver):
		return fiber.StatusConflict
	case stderrors.Is(err, errors.ErrIllegalMove),
		stderrors.Is(err, errors.ErrInvalidSquare),
		stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(ErrorPayload{Error: err.Error()})
}
