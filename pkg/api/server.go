package api

import (
	"github.com/campigo/campigo/pkg/api/routes"
	"github.com/campigo/campigo/pkg/directions"
	"github.com/campigo/campigo/pkg/routeplanner"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string) error {
	routeCache := &routeplanner.Cache{}
	routeCache.Setup()

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StopsRouter(group.Group("/stops"))
	routes.ArrivalsRouter(group.Group("/arrivals"), routeCache, directions.NewNaverProvider())
	routes.SyncRouter(group.Group("/sync"))

	return webApp.Listen(listen)
}
