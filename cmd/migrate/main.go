package main

import (
	"errors"

	"github.com/google/uuid"
	"github.com/guanrg/artstore/internal/infrastructure/commerce"
	"github.com/guanrg/artstore/internal/infrastructure/config"
	"github.com/guanrg/artstore/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrateコマンドはスキーマを作成し、インポートの前提となる初期データ
// （デフォルト配送プロファイル・販売チャネル・在庫ロケーション）を投入します。
// 何度実行しても安全です
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

	if err := commerce.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}
	log.Info("schema migrated")

	if err := seedDefaults(db); err != nil {
		log.Fatal("failed to seed defaults", zap.Error(err))
	}
	log.Info("default store setup seeded")
}

func seedDefaults(db *gorm.DB) error {
	var profile commerce.ShippingProfileModel
	err := db.Where("type = ?", "default").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = commerce.ShippingProfileModel{
			ID:   "sp_" + uuid.NewString(),
			Name: "Default Shipping Profile",
			Type: "default",
		}
		err = db.Create(&profile).Error
	}
	if err != nil {
		return err
	}

	var channel commerce.SalesChannelModel
	err = db.Where("is_default = ?", true).First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		channel = commerce.SalesChannelModel{
			ID:        "sc_" + uuid.NewString(),
			Name:      "Default Sales Channel",
			IsDefault: true,
		}
		err = db.Create(&channel).Error
	}
	if err != nil {
		return err
	}

	var location commerce.StockLocationModel
	err = db.Where("is_default = ?", true).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		location = commerce.StockLocationModel{
			ID:        "sloc_" + uuid.NewString(),
			Name:      "Default Warehouse",
			IsDefault: true,
		}
		err = db.Create(&location).Error
	}
	return err
}
