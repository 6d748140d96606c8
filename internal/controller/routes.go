package controller

import (
	"errors"
	"strings"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
)

type Options struct {
	// AllowOrigins is a comma separated list of browser origins, or "*".
	AllowOrigins string
	LogRequests  bool
}

// NewApp builds the fiber application serving the board API.
func NewApp(gameService *service.GameService, opts Options) *fiber.App {
	allowOrigins := opts.AllowOrigins
	app := fiber.New(fiber.Config{
		AppName:               "chessrules",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.LogRequests {
		app.Use(middleware.RequestLogger())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.HeaderClientID,
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    middleware.HeaderClientID + ", " + fiber.HeaderXRequestID,
		AllowCredentials: allowOrigins != "*",
	}))

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/ws/game/:gameId",
		middleware.EnsureClientID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         splitOrigins(allowOrigins),
		}),
	)

	api := app.Group("/api", middleware.EnsureClientID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gameController.ProposeMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promotion", gameController.CompletePromotion)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)
	gameRoutes.Delete("/:gameId", gameController.DeleteGame)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else {
		log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  "http_error",
	})
}

func splitOrigins(allowOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(allowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
