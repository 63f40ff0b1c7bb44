package routes

import (
	"github.com/campigo/campigo/pkg/dataimporter"
	"github.com/gofiber/fiber/v2"
)

func SyncRouter(router fiber.Router) {
	router.Post("/", triggerSync)
}

func triggerSync(c *fiber.Ctx) error {
	// The run outlives the request; the trigger only reports whether one started
	if err := dataimporter.StartSync(); err != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "sync-already-in-progress",
		})
	}

	c.SendStatus(fiber.StatusAccepted)
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
