package viewmodel

import "github.com/gofiber/fiber/v2"

type Layout struct {
	Page       string
	IsLoggedIn bool
	Username   string
	Msg        fiber.Map
}
