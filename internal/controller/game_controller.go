package controller

import (
	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type promotionRequest struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

// moveResponse is the board after a move plus whether a promotion choice
// is still needed.
type moveResponse struct {
	Status model.ApplyStatus `json:"status"`
	State  model.StateView   `json:"state"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, state, err := gc.gameService.CreateGame()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": gameID,
		"state":  state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ProposeMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := gc.gameService.ProposeMoves(c.Params("gameId"), square)
	if err != nil {
		return respondError(c, err)
	}
	if moves == nil {
		moves = []model.Square{}
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "bad_payload",
		})
	}

	state, status, err := gc.gameService.MakeMove(c.Params("gameId"), req)
	if err != nil {
		log.WithError(err).WithField("game", c.Params("gameId")).Debug("move refused")
		return respondError(c, err)
	}
	return c.JSON(moveResponse{Status: status, State: state})
}

func (gc *GameController) CompletePromotion(c *fiber.Ctx) error {
	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "bad_payload",
		})
	}

	state, err := gc.gameService.CompletePromotion(c.Params("gameId"), req.Square, req.Piece)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
