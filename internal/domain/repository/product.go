package repository

import (
	"context"
	"errors"

	"github.com/guanrg/artstore/internal/domain/model"
)

// ErrDuplicateExternalID は external_id の一意制約違反を表します。
// 同一オークションの同時インポートが作成で競合した場合に返り、
// 呼び出し側は更新にフォールバックします。
var ErrDuplicateExternalID = errors.New("product with external id already exists")

// ProductRepository は商品レコードの永続化を抽象化します。
// 見つからない場合は (nil, nil) を返し、エラーとは区別します。
type ProductRepository interface {
	// FindByExternalID は external_id で商品を検索します
	FindByExternalID(ctx context.Context, externalID string) (*model.Product, error)

	// FindByHandle は handle で商品を検索します
	// external_id 導入前に作られたレコードの照合に使います
	FindByHandle(ctx context.Context, handle string) (*model.Product, error)

	// Create は新しい商品を作成します
	// external_id が衝突した場合は ErrDuplicateExternalID を返します
	Create(ctx context.Context, product *model.Product) error

	// Update は既存の商品を更新します
	Update(ctx context.Context, product *model.Product) error
}
