package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "angel-forum-backend/internal/adapter/http"
	appmw "angel-forum-backend/internal/adapter/middleware"
	"angel-forum-backend/internal/adapter/repository/mysql"
	"angel-forum-backend/internal/config"
	"angel-forum-backend/internal/infrastructure/cache"
	"angel-forum-backend/internal/infrastructure/db"
	commitmentUC "angel-forum-backend/internal/usecase/commitment"
	dealUC "angel-forum-backend/internal/usecase/deal"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	dealRepo := mysql.NewDealRepository(gdb)
	commitmentRepo := mysql.NewCommitmentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	deals := dealUC.NewUsecase(dealRepo, uow, cfg.MinCommitmentFloor)
	commitments := commitmentUC.NewUsecase(dealRepo, commitmentRepo, uow)

	h := httpadp.NewHandler()
	dealHandler := httpadp.NewDealHandler(deals)
	commitmentHandler := httpadp.NewCommitmentHandler(commitments)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	deals1 := e.Group("/deals", idemp)
	deals1.POST("", dealHandler.CreateDeal)
	deals1.GET("", dealHandler.ListDeals)
	deals1.GET("/:deal_id", dealHandler.GetDeal)
	deals1.PATCH("/:deal_id", dealHandler.UpdateDeal)
	deals1.PATCH("/:deal_id/status", dealHandler.UpdateDealStatus)
	deals1.DELETE("/:deal_id", dealHandler.DeleteDeal)
	deals1.POST("/:deal_id/commitments", commitmentHandler.AddCommitment)
	deals1.GET("/:deal_id/metrics", commitmentHandler.DealMetrics)
	deals1.POST("/:deal_id/metrics/refresh", commitmentHandler.RefreshDealMetrics)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
