package http

import (
	"fmt"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// Docs monta Swagger UI en /docs sirviendo el documento OpenAPI de file.
func Docs(app *fiber.App, file, title string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("documento OpenAPI %q: %w", file, err)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: file,
		Path:     "docs",
		Title:    title,
	}))
	return nil
}
