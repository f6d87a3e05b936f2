package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guanrg/artstore/internal/handler"
	"github.com/guanrg/artstore/internal/infrastructure/commerce"
	"github.com/guanrg/artstore/internal/infrastructure/config"
	"github.com/guanrg/artstore/internal/infrastructure/logger"
	"github.com/guanrg/artstore/internal/infrastructure/openai"
	"github.com/guanrg/artstore/internal/infrastructure/yahoo"
	"github.com/guanrg/artstore/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := commerce.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	// 依存関係の組み立て（依存性注入）
	// スクレイパー・翻訳・永続化はすべてrepositoryのポート経由で注入します
	scraper := yahoo.NewAuctionScraper(cfg.Fetch.Timeout)
	translator := openai.NewTranslator(openai.Config{
		APIKey:  cfg.Translate.APIKey,
		Model:   cfg.Translate.Model,
		BaseURL: cfg.Translate.BaseURL,
		Timeout: cfg.Translate.Timeout,
	})
	products := commerce.NewProductStore(db)
	setup := commerce.NewSetupStore(db)

	uc := usecase.NewImportUsecase(
		scraper, products, setup, translator,
		cfg.Translate.SourceLang, cfg.Translate.TargetLang,
		log,
	)
	h := handler.NewImportHandler(uc, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", h.Health)
	router.POST("/admin/custom/yahoo-import", h.Import)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// シグナル待機（Ctrl+Cなど）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// グレースフルシャットダウン
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
