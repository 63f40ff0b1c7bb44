package routes

import (
	"net/url"

	"github.com/campigo/campigo/pkg/shuttle"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func StopsRouter(router fiber.Router) {
	router.Get("/", listStops)
	router.Get("/:name", getStop)
}

func listStops(c *fiber.Ctx) error {
	stopsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, shuttle.RegisteredStops)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry could not marshal stops",
		})
	}

	return c.JSON(stopsReduced)
}

func getStop(c *fiber.Ctx) error {
	// Stop names are Korean so the path segment arrives percent-encoded
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}

	stop := shuttle.GetStop(name)

	if stop == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching name",
		})
	}

	return c.JSON(stop)
}
