package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-ai-go/internal/service"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"games":  s.games.Count(),
	})
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req service.CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	state, err := s.games.CreateGame(req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (s *Server) getGameState(c *fiber.Ctx) error {
	state, err := s.games.GetGameState(c.Params("gameId"))
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.DeleteGame(c.Params("gameId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) legalMoves(c *fiber.Ctx) error {
	moves, err := s.games.LegalMoves(c.Params("gameId"), c.Query("from"))
	if err != nil {
		return err
	}
	return c.JSON(moves)
}

func (s *Server) makeMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	state, err := s.games.MakeMove(c.Params("gameId"), req)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

func (s *Server) aiMove(c *fiber.Ctx) error {
	state, err := s.games.AIMove(c.Params("gameId"))
	if err != nil {
		return err
	}
	return c.JSON(state)
}
