package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valebmss/pos-local1/internal/adapter/http/middleware"
	"github.com/valebmss/pos-local1/internal/logging"
)

func NewRouter(ch *CartHandler, ck *CheckoutHandler, ph *CatalogHandler, sh *SalesHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", authz.Require("products.read"), ph.ListProducts)
		v1.GET("/sales", authz.Require("sales.read"), sh.ListByDate)

		carts := v1.Group("/carts", authz.Require("sales.write"))
		{
			carts.POST("", ch.CreateCart)
			carts.GET("/:id", ch.GetCart)
			carts.POST("/:id/lines", ch.AddLine)
			carts.PUT("/:id/lines/:productId", ch.SetQuantity)
			carts.DELETE("/:id/lines/:productId", ch.RemoveLine)
			carts.POST("/:id/checkout", ck.Checkout)
		}
	}

	return r
}
