package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/a-nebula-dev/ProjectLaserBunny/controller"
	"github.com/a-nebula-dev/ProjectLaserBunny/middleware"
)

type Controllers struct {
	Products *controller.ProductController
	Category *controller.CategoryController
	Sections *controller.SectionController
	Checkout *controller.CheckoutController
	Webhook  *controller.WebhookController
	Orders   *controller.OrderController
	Auth     *controller.AuthController
}

func Register(app *fiber.App, ctrl Controllers, jwtSecret string) {
	api := app.Group("/api")
	admin := middleware.AdminRequired(jwtSecret)
	user := middleware.UserFromToken(jwtSecret)

	p := api.Group("/products")
	p.Get("/", ctrl.Products.List)
	p.Get("/search", ctrl.Products.SearchProducts)
	p.Get("/:id", ctrl.Products.Get)
	p.Post("/", admin, ctrl.Products.Create)
	p.Put("/:id", admin, ctrl.Products.Update)
	p.Delete("/:id", admin, ctrl.Products.Delete)

	categories := api.Group("/categories")
	categories.Get("/", ctrl.Category.List)
	categories.Get("/:id", ctrl.Category.Get)
	categories.Post("/", admin, ctrl.Category.Create)
	categories.Put("/:id", admin, ctrl.Category.Update)
	categories.Delete("/:id", admin, ctrl.Category.Delete)

	sections := api.Group("/sections")
	sections.Get("/", ctrl.Sections.List)
	sections.Get("/:id", ctrl.Sections.Get)
	sections.Post("/", admin, ctrl.Sections.Create)
	sections.Put("/:id", admin, ctrl.Sections.Update)
	sections.Delete("/:id", admin, ctrl.Sections.Delete)

	api.Post("/shipping/quote", ctrl.Checkout.Quote)
	api.Post("/checkout/intent", user, ctrl.Checkout.CreateIntent)
	api.Post("/stripe/webhook", ctrl.Webhook.HandleStripe)

	orders := api.Group("/orders", admin)
	orders.Get("/", ctrl.Orders.List)
	orders.Get("/:id", ctrl.Orders.Get)
	orders.Patch("/:id", ctrl.Orders.UpdateFulfillment)

	auth := api.Group("/auth")
	auth.Post("/admin", ctrl.Auth.AdminLogin)
	auth.Get("/admin", ctrl.Auth.AdminStatus)
}
