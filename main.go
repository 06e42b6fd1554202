package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/config"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/store"
)

func main() {
	config.Load()

	if level, err := logrus.ParseLevel(config.AppEnv.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	st, err := store.Open(config.AppEnv.DataFile)
	if err != nil {
		logrus.WithError(err).Fatal("cannot open data file")
	}
	logrus.WithField("file", config.AppEnv.DataFile).Info("data store loaded")

	hub := notify.NewHub()
	pusher := notify.NewPusher(
		config.AppEnv.VapidPublic,
		config.AppEnv.VapidPrivate,
		config.AppEnv.VapidSubject,
		st,
	)
	if pusher.Enabled() {
		logrus.Info("Web Push: VAPID configured")
	} else {
		logrus.Warn("Web Push: VAPID_PUBLIC/PRIVATE not set — push disabled")
	}

	r := gin.Default()

	r.Static("/uploads", config.AppEnv.UploadDir)
	r.Static("/admin", "./admin")
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir("./public"))))

	api := r.Group("/api")
	{
		api.POST("/auth/login", handlers.Login(
			config.AppEnv.AdminPassword,
			config.AppEnv.AdminPasswordHash,
			config.AppEnv.JWTSecret,
			config.AppEnv.AccessTokenTTL,
		))

		api.GET("/config", handlers.GetConfig(st))
		api.GET("/products", handlers.GetProducts(st))
		api.GET("/products/:id", handlers.GetProduct(st))

		api.POST("/orders", handlers.CreateOrder(st, hub, pusher))
		api.GET("/orders/lookup", handlers.LookupOrder(st))
		api.GET("/orders/public/:id", handlers.PublicOrderStatus(st))
		api.DELETE("/orders/guest/:id", handlers.GuestCancelOrder(st))

		// EventSource clients authenticate through the token query param
		api.GET("/orders/stream", middleware.AdminAuth(config.AppEnv.JWTSecret), handlers.StreamOrders(hub))
	}

	admin := r.Group("/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/settings", handlers.GetSettings(st))
		admin.PUT("/settings", handlers.UpdateSettings(st))

		admin.GET("/admin/products", handlers.GetAllProducts(st))
		admin.POST("/products", handlers.CreateProduct(st))
		admin.PUT("/products/:id", handlers.UpdateProduct(st))
		admin.DELETE("/products/:id", handlers.DeleteProduct(st, config.AppEnv.UploadDir))

		admin.POST("/upload", handlers.UploadFile(config.AppEnv.UploadDir))

		admin.GET("/orders", handlers.ListOrders(st))
		admin.PUT("/orders/:id", handlers.UpdateOrder(st))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(st))

		admin.GET("/push/publicKey", handlers.PushPublicKey(pusher))
		admin.POST("/push/subscribe", handlers.PushSubscribe(pusher))
		admin.POST("/push/unsubscribe", handlers.PushUnsubscribe(pusher))
		admin.POST("/push/test", handlers.PushTest(pusher))

		admin.GET("/reports/daily", handlers.DailyReport(st))
		admin.GET("/reports/monthly", handlers.MonthlyReport(st))
		admin.GET("/reports/yearly", handlers.YearlyReport(st))
	}

	logrus.WithField("port", config.AppEnv.Port).Info("server starting")
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
