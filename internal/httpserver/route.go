package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "shop-backend/pkg/middleware/auth"
)

type Deps struct {
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	CheckoutHandler *CheckoutHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewRequireAuth(d.JWTSecret)

	cart := e.Group("/cart", authMW.Middleware)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.DeleteAllFromCart)
	cart.DELETE("/items", d.CartHandler.DeleteOneFromCart)

	orders := e.Group("/orders", authMW.Middleware)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("/place", d.OrderHandler.PlaceOrder)

	e.POST("/checkout/:order_id", d.CheckoutHandler.CreateCheckoutSession, authMW.Middleware)

	// No auth: the provider signs the request instead.
	e.POST("/webhook", d.CheckoutHandler.HandleWebhook)
}
