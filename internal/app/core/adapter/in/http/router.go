package http

import "github.com/gofiber/fiber/v2"

// RegisterRoutes 掛載所有路由到 /v1 底下
func RegisterRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/v1")

	api.Get("/branches", h.ListBranches)

	api.Post("/accounts", h.CreateAccount)
	api.Post("/accounts/:number/deposit", h.Deposit)
	api.Post("/accounts/:number/withdraw", h.Withdraw)
	api.Get("/accounts/:number/balance", h.GetBalance)
	api.Get("/accounts/:number/transactions", h.GetHistory)
}
