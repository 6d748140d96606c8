package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnsureClientID(t *testing.T) {
	app := fiber.New()
	app.Get("/", EnsureClientID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("clientID").(string))
	})

	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"header", "/", "from-header", "from-header"},
		{"query", "/?clientId=from-query", "", "from-query"},
		{"header wins", "/?clientId=from-query", "from-header", "from-header"},
		{"minted", "/", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(HeaderClientID, tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			got := resp.Header.Get(HeaderClientID)
			if tt.want == "" {
				if len(got) != 36 {
					t.Fatalf("minted id = %q, want a uuid", got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("client id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWebSocketUpgradeRejectsPlainRequests(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/:gameId", EnsureClientID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ws/abc", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}
