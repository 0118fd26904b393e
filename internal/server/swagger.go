package server

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/raysh454/caselookup/internal/server/docs" // registers the swagger spec
)

//go:generate swag init -g swagger.go -d ./,../model -o docs --outputTypes go

// @title Case Lookup API
// @version 0.1
// @description Looks up court case status pages and returns parties, dates and order links as JSON.
// @contact.name caselookup maintainers
// @contact.url https://github.com/raysh454/caselookup
// @BasePath /

func swaggerHandler() http.HandlerFunc {
	return httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
}
