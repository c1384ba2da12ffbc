package echoServer

import (
	"bookcourier/app/echoServer/controller/auth"
	"bookcourier/app/echoServer/controller/book"
	"bookcourier/app/echoServer/controller/librarian"
	"bookcourier/app/echoServer/controller/order"
	"bookcourier/app/echoServer/controller/payment"
	usersctrl "bookcourier/app/echoServer/controller/user"
	"bookcourier/model"
	"bookcourier/service/identity"

	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Order     *order.Controller
	Payment   *payment.Controller
	Librarian *librarian.Controller
	Users     *usersctrl.Controller

	Verifier identity.Verifier
	Roles    RoleSource
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/latest", c.Book.Latest)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/libraries", c.Book.Libraries)

	// settlement entry points: webhook-style, no gate
	pub.POST("/payments/checkout-session", c.Payment.CreateCheckout)
	pub.PATCH("/payments/success", c.Payment.PaymentSuccess)
	pub.PATCH("/bookorders/:id", c.Order.Cancel)

	// Authenticated
	authed := e.Group("/v1", RequireAuth(c.Verifier))
	authed.GET("/bookorders", c.Order.Mine)
	authed.GET("/bookorders/:id", c.Order.Detail)
	authed.POST("/bookorders", c.Order.Place)
	authed.POST("/librarian", c.Librarian.Apply)

	// Librarian catalog management (admins qualify too)
	lib := e.Group("/v1", RequireAuth(c.Verifier),
		RequireRole(c.Roles, string(model.RoleLibrarian), string(model.RoleAdmin)))
	lib.POST("/books", c.Book.Create)
	lib.PATCH("/books/:id", c.Book.UpdatePricing)

	// Admin
	admin := e.Group("/v1", RequireAuth(c.Verifier),
		RequireRole(c.Roles, string(model.RoleAdmin)))
	admin.DELETE("/books/:id", c.Book.Delete)
	admin.GET("/librarian", c.Librarian.List)
	admin.PATCH("/librarian/:id", c.Librarian.Decide)
	admin.GET("/users", c.Users.List)
	admin.PATCH("/users/:id/role", c.Users.SetRole)
}
