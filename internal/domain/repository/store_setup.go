package repository

import "context"

// StoreSetupRepository はストアの初期設定（配送プロファイル・販売チャネル・
// 在庫ロケーション）への参照を抽象化します。
type StoreSetupRepository interface {
	// DefaultShippingProfileID は type="default" の配送プロファイルIDを返します
	// 存在しない場合は空文字列を返します（インポートの前提条件チェックに使います）
	DefaultShippingProfileID(ctx context.Context) (string, error)

	// DefaultSalesChannelID はデフォルトの販売チャネルIDを返します
	// デフォルト指定がなければ最初のチャネルを返し、なければ空文字列です
	DefaultSalesChannelID(ctx context.Context) (string, error)

	// DefaultStockLocationID はデフォルトの在庫ロケーションIDを返します
	DefaultStockLocationID(ctx context.Context) (string, error)

	// LinkSalesChannelToStockLocation は販売チャネルと在庫ロケーションを紐付けます
	// すでに紐付いている場合は何もしません（冪等）
	LinkSalesChannelToStockLocation(ctx context.Context, salesChannelID, stockLocationID string) error
}
