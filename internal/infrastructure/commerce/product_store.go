package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guanrg/artstore/internal/domain/model"
	"github.com/guanrg/artstore/internal/domain/repository"
	"gorm.io/gorm"
)

// ProductStore は repository.ProductRepository のgorm実装です
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore は新しいProductStoreを作成します
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// FindByExternalID は external_id で商品を検索します。見つからない場合は (nil, nil) です
func (s *ProductStore) FindByExternalID(ctx context.Context, externalID string) (*model.Product, error) {
	return s.findOne(ctx, "external_id = ?", externalID)
}

// FindByHandle は handle で商品を検索します。見つからない場合は (nil, nil) です
func (s *ProductStore) FindByHandle(ctx context.Context, handle string) (*model.Product, error) {
	return s.findOne(ctx, "handle = ?", handle)
}

func (s *ProductStore) findOne(ctx context.Context, query string, arg any) (*model.Product, error) {
	var record ProductModel
	err := s.db.WithContext(ctx).Preload("Variants").Where(query, arg).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return record.ToDomain(), nil
}

// Create は商品とバリアントを作成します
// IDが未設定なら採番します。external_id の一意制約違反は
// repository.ErrDuplicateExternalID として返します（同時インポート対策）
func (s *ProductStore) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = "prod_" + uuid.NewString()
	}
	for _, v := range product.Variants {
		if v.ID == "" {
			v.ID = "variant_" + uuid.NewString()
		}
	}

	record := productModelFromDomain(product)
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateExternalID
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update は既存の商品を更新します
// バリアントはIDを持つもののみ上書きし、新しいバリアントを作ることはしません
func (s *ProductStore) Update(ctx context.Context, product *model.Product) error {
	record := productModelFromDomain(product)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variants := record.Variants
		record.Variants = nil
		if err := tx.Model(&ProductModel{ID: record.ID}).Select(
			"title", "subtitle", "handle", "external_id", "description", "status",
			"shipping_profile_id", "sales_channel_ids", "images", "options", "metadata",
		).Updates(record).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		for i := range variants {
			if variants[i].ID == "" {
				continue
			}
			if err := tx.Model(&VariantModel{ID: variants[i].ID}).Select(
				"title", "sku", "manage_inventory", "allow_backorder", "options", "prices",
			).Updates(&variants[i]).Error; err != nil {
				return fmt.Errorf("failed to update variant: %w", err)
			}
		}
		return nil
	})
}
