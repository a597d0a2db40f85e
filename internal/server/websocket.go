package server

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-ai-go/internal/service"
)

// websocketUpgrade lets only upgrade requests through to /ws routes.
func (s *Server) websocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// handleConnection serves one client of one game. The current state is sent
// on connect, then every request gets exactly one reply.
func (s *Server) handleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	log := s.log.With().Str("game", gameID).Logger()

	state, err := s.games.GetGameState(gameID)
	if err != nil {
		_ = c.WriteJSON(errorMessage(err))
		_ = c.Close()
		return
	}
	if err := c.WriteJSON(newMessage(MessageTypeState, state)); err != nil {
		return
	}
	log.Debug().Msg("websocket connected")

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("websocket closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		reply := errorMessage(fmt.Errorf("malformed message"))
		if err := json.Unmarshal(data, &msg); err == nil {
			reply = s.handleMessage(gameID, msg)
		}
		if err := c.WriteJSON(reply); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// handleMessage performs one websocket request and builds its reply.
func (s *Server) handleMessage(gameID string, msg Message) Message {
	switch msg.Type {
	case MessageTypeMove:
		var req service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return errorMessage(err)
		}
		return s.stateReply(s.games.MakeMove(gameID, req))

	case MessageTypeAI:
		return s.stateReply(s.games.AIMove(gameID))

	case MessageTypeState:
		return s.stateReply(s.games.GetGameState(gameID))

	case MessageTypeMoves:
		var q movesQuery
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &q); err != nil {
				return errorMessage(err)
			}
		}
		moves, err := s.games.LegalMoves(gameID, q.From)
		if err != nil {
			return errorMessage(err)
		}
		return newMessage(MessageTypeMoves, moves)
	}
	return errorMessage(fmt.Errorf("unknown message type %q", msg.Type))
}

func (s *Server) stateReply(state service.GameState, err error) Message {
	if err != nil {
		return errorMessage(err)
	}
	return newMessage(MessageTypeState, state)
}
