// Package main BookCourier API.
//
// @title           BookCourier API
// @version         1.0
// @description     book-rental marketplace (catalog, orders, payments, roles).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"bookcourier/app/echoServer"
	authctrl "bookcourier/app/echoServer/controller/auth"
	bookctrl "bookcourier/app/echoServer/controller/book"
	librarianctrl "bookcourier/app/echoServer/controller/librarian"
	orderctrl "bookcourier/app/echoServer/controller/order"
	paymentctrl "bookcourier/app/echoServer/controller/payment"
	usersctrl "bookcourier/app/echoServer/controller/user"
	"bookcourier/app/echoServer/validation"
	"bookcourier/config"
	applicationrepo "bookcourier/repository/application"
	bookrepo "bookcourier/repository/book"
	orderrepo "bookcourier/repository/order"
	paymentrepo "bookcourier/repository/payment"
	striperepo "bookcourier/repository/stripe"
	userrepo "bookcourier/repository/user"
	authsvc "bookcourier/service/auth"
	catalogsvc "bookcourier/service/catalog"
	"bookcourier/service/identity"
	librariansvc "bookcourier/service/librarian"
	ordersvc "bookcourier/service/order"
	paymentsvc "bookcourier/service/payment"
	"bookcourier/util/database"
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	or := orderrepo.New(db)
	pr := paymentrepo.New(db)
	apr := applicationrepo.New(db)
	xr := striperepo.NewHTTP(cfg.StripeSecretKey)

	// services
	verifier := identity.NewJWT(cfg.JWTSecret)
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(br)
	osvc := ordersvc.New(or, ur)
	ps := paymentsvc.New(pr, xr, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	ls := librariansvc.New(apr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: osvc, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	librarianC := &librarianctrl.Controller{Svc: ls, V: v, Log: log}
	usersC := &usersctrl.Controller{Repo: ur, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Order:     orderC,
		Payment:   paymentC,
		Librarian: librarianC,
		Users:     usersC,

		Verifier: verifier,
		Roles:    ur,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
