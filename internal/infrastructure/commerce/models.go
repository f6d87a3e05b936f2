// Package commerce は商品レコードのgorm永続化を提供します。
// ドメインモデルと永続化モデルを分離し、相互変換はこのパッケージに閉じます。
package commerce

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/guanrg/artstore/internal/domain/model"
)

// JSONColumn はJSONシリアライズして保存する列の共通実装です
type JSONColumn[T any] struct {
	Data T
}

// Value はdriver.Valuerの実装です
func (c JSONColumn[T]) Value() (driver.Value, error) {
	encoded, err := json.Marshal(c.Data)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan はsql.Scannerの実装です
func (c *JSONColumn[T]) Scan(value any) error {
	if value == nil {
		var zero T
		c.Data = zero
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
	if len(raw) == 0 {
		var zero T
		c.Data = zero
		return nil
	}
	return json.Unmarshal(raw, &c.Data)
}

// ProductModel は商品の永続化モデルです
// external_id と handle の一意インデックスが照合の正しさを支えます
// （同時インポートの作成競合は一意制約違反として検出します）
type ProductModel struct {
	ID                string `gorm:"primaryKey"`
	Title             string `gorm:"not null"`
	Subtitle          string
	Handle            string `gorm:"uniqueIndex;not null"`
	ExternalID        string `gorm:"column:external_id;uniqueIndex;not null"`
	Description       string
	Status            string `gorm:"not null"`
	ShippingProfileID string
	SalesChannelIDs   JSONColumn[[]string]              `gorm:"type:text"`
	Images            JSONColumn[[]string]              `gorm:"type:text"`
	Options           JSONColumn[[]model.ProductOption] `gorm:"type:text"`
	Metadata          JSONColumn[map[string]any]        `gorm:"type:text"`
	Variants          []VariantModel                    `gorm:"foreignKey:ProductID"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName はテーブル名を指定します
func (ProductModel) TableName() string { return "products" }

// VariantModel はバリアントの永続化モデルです
type VariantModel struct {
	ID              string `gorm:"primaryKey"`
	ProductID       string `gorm:"index;not null"`
	Title           string `gorm:"not null"`
	SKU             string `gorm:"column:sku"`
	ManageInventory bool
	AllowBackorder  bool
	Options         JSONColumn[map[string]string] `gorm:"type:text"`
	Prices          JSONColumn[[]model.Price]     `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName はテーブル名を指定します
func (VariantModel) TableName() string { return "product_variants" }

// ShippingProfileModel は配送プロファイルの永続化モデルです
type ShippingProfileModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Type      string `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はテーブル名を指定します
func (ShippingProfileModel) TableName() string { return "shipping_profiles" }

// SalesChannelModel は販売チャネルの永続化モデルです
type SalesChannelModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はテーブル名を指定します
func (SalesChannelModel) TableName() string { return "sales_channels" }

// StockLocationModel は在庫ロケーションの永続化モデルです
type StockLocationModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はテーブル名を指定します
func (StockLocationModel) TableName() string { return "stock_locations" }

// SalesChannelLocationModel は販売チャネルと在庫ロケーションの紐付けです
type SalesChannelLocationModel struct {
	SalesChannelID  string `gorm:"primaryKey"`
	StockLocationID string `gorm:"primaryKey"`
	CreatedAt       time.Time
}

// TableName はテーブル名を指定します
func (SalesChannelLocationModel) TableName() string { return "sales_channel_locations" }

// ToDomain はProductModelをドメインモデルに変換します
func (m *ProductModel) ToDomain() *model.Product {
	product := &model.Product{
		ID:                m.ID,
		Title:             m.Title,
		Subtitle:          m.Subtitle,
		Handle:            m.Handle,
		ExternalID:        m.ExternalID,
		Description:       m.Description,
		Status:            model.ProductStatus(m.Status),
		ShippingProfileID: m.ShippingProfileID,
		SalesChannelIDs:   m.SalesChannelIDs.Data,
		Images:            m.Images.Data,
		Options:           m.Options.Data,
		Metadata:          m.Metadata.Data,
	}
	for i := range m.Variants {
		product.Variants = append(product.Variants, m.Variants[i].ToDomain())
	}
	return product
}

// ToDomain はVariantModelをドメインモデルに変換します
func (m *VariantModel) ToDomain() *model.Variant {
	return &model.Variant{
		ID:              m.ID,
		Title:           m.Title,
		SKU:             m.SKU,
		ManageInventory: m.ManageInventory,
		AllowBackorder:  m.AllowBackorder,
		Options:         m.Options.Data,
		Prices:          m.Prices.Data,
	}
}

// productModelFromDomain はドメインモデルを永続化モデルに変換します
func productModelFromDomain(p *model.Product) *ProductModel {
	m := &ProductModel{
		ID:                p.ID,
		Title:             p.Title,
		Subtitle:          p.Subtitle,
		Handle:            p.Handle,
		ExternalID:        p.ExternalID,
		Description:       p.Description,
		Status:            string(p.Status),
		ShippingProfileID: p.ShippingProfileID,
		SalesChannelIDs:   JSONColumn[[]string]{Data: p.SalesChannelIDs},
		Images:            JSONColumn[[]string]{Data: p.Images},
		Options:           JSONColumn[[]model.ProductOption]{Data: p.Options},
		Metadata:          JSONColumn[map[string]any]{Data: p.Metadata},
	}
	for _, v := range p.Variants {
		m.Variants = append(m.Variants, *variantModelFromDomain(p.ID, v))
	}
	return m
}

func variantModelFromDomain(productID string, v *model.Variant) *VariantModel {
	return &VariantModel{
		ID:              v.ID,
		ProductID:       productID,
		Title:           v.Title,
		SKU:             v.SKU,
		ManageInventory: v.ManageInventory,
		AllowBackorder:  v.AllowBackorder,
		Options:         JSONColumn[map[string]string]{Data: v.Options},
		Prices:          JSONColumn[[]model.Price]{Data: v.Prices},
	}
}
