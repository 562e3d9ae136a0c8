package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HamidBoasidah/namaa-sub001/internal/config"
	dbpkg "github.com/HamidBoasidah/namaa-sub001/internal/db"
	"github.com/HamidBoasidah/namaa-sub001/internal/logger"
	"github.com/HamidBoasidah/namaa-sub001/internal/middleware"
	"github.com/HamidBoasidah/namaa-sub001/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sweeper := routes.RegisterRoutes(r, db, cfg, log)

	ctx := context.Background()
	sweeper.Start(ctx)
	defer sweeper.Stop()

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
