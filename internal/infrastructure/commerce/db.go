package commerce

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open はドライバー名とDSNからgormの接続を開きます
// TranslateError を有効にして、一意制約違反を gorm.ErrDuplicatedKey として
// 受け取れるようにします（作成競合のフォールバックに必要です）
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// AutoMigrate はスキーマを作成・更新します
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&VariantModel{},
		&ShippingProfileModel{},
		&SalesChannelModel{},
		&StockLocationModel{},
		&SalesChannelLocationModel{},
	)
}
