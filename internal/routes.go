package internal

import (
	"net/http"
	"sid/internal/controllers"
	"sid/internal/providers"
	"sid/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/import/run", http.HandlerFunc(apiController.RunImport))
	routers.Post("/data/clear", http.HandlerFunc(apiController.ClearData))
	routers.Get("/data", http.HandlerFunc(apiController.GetData))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/logs", http.HandlerFunc(apiController.GetLogs))
	return routers
}
