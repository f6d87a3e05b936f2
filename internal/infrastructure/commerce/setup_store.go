package commerce

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetupStore は repository.StoreSetupRepository のgorm実装です
type SetupStore struct {
	db *gorm.DB
}

// NewSetupStore は新しいSetupStoreを作成します
func NewSetupStore(db *gorm.DB) *SetupStore {
	return &SetupStore{db: db}
}

// DefaultShippingProfileID は type="default" の配送プロファイルIDを返します
// 存在しない場合は空文字列です（エラーにはしません）
func (s *SetupStore) DefaultShippingProfileID(ctx context.Context) (string, error) {
	var profile ShippingProfileModel
	err := s.db.WithContext(ctx).Where("type = ?", "default").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query shipping profile: %w", err)
	}
	return profile.ID, nil
}

// DefaultSalesChannelID はデフォルト指定のチャネル、なければ最初のチャネルを返します
func (s *SetupStore) DefaultSalesChannelID(ctx context.Context) (string, error) {
	var channel SalesChannelModel
	err := s.db.WithContext(ctx).Order("is_default DESC, created_at ASC").First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query sales channel: %w", err)
	}
	return channel.ID, nil
}

// DefaultStockLocationID はデフォルト指定のロケーション、なければ最初のものを返します
func (s *SetupStore) DefaultStockLocationID(ctx context.Context) (string, error) {
	var location StockLocationModel
	err := s.db.WithContext(ctx).Order("is_default DESC, created_at ASC").First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query stock location: %w", err)
	}
	return location.ID, nil
}

// LinkSalesChannelToStockLocation は紐付けを作成します。既存なら何もしません
func (s *SetupStore) LinkSalesChannelToStockLocation(ctx context.Context, salesChannelID, stockLocationID string) error {
	link := SalesChannelLocationModel{
		SalesChannelID:  salesChannelID,
		StockLocationID: stockLocationID,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to link sales channel to stock location: %w", err)
	}
	return nil
}
