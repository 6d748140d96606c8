package middleware

import (
	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const HeaderClientID = "X-Client-ID"

// EnsureClientID identifies the browser tab behind a request. The id comes
// from the X-Client-ID header or the clientId query; a missing id is minted
// and echoed back so the client can keep it.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		// copied: the id outlives the request on websocket connections
		clientID := utils.CopyString(c.Get(HeaderClientID))
		if clientID == "" {
			clientID = utils.CopyString(c.Query("clientId"))
		}
		if clientID == "" {
			clientID = uuid.New().String()
			log.WithField("client", clientID).Debug("issued client id")
		}

		c.Set(HeaderClientID, clientID)
		c.Locals("clientID", clientID)
		return c.Next()
	}
}
