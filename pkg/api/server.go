package api

import (
	"github.com/Young-000/alert-system-sub000/pkg/api/routes"
	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/drafts"
	"github.com/Young-000/alert-system-sub000/pkg/stopsearch"
	"github.com/gofiber/fiber/v2"
)

type Dependencies struct {
	Searcher stopsearch.Searcher
	Drafts   *drafts.Manager
	Routes   commuteroutes.Store
}

// NewApp builds the web app, accountAuth must set the account_userid local for every
// request it lets through
func NewApp(dependencies Dependencies, accountAuth fiber.Handler) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StopsRouter(group.Group("/stops"), dependencies.Searcher)

	account := group.Group("/account", accountAuth)
	routes.DraftsRouter(account.Group("/drafts"), dependencies.Drafts)
	routes.CommuteRoutesRouter(account.Group("/commute_routes"), dependencies.Routes)

	return webApp
}

func SetupServer(listen string, dependencies Dependencies, accountAuth fiber.Handler) error {
	return NewApp(dependencies, accountAuth).Listen(listen)
}
