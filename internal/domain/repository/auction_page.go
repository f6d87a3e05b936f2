package repository

import (
	"context"
	"net/url"

	"github.com/guanrg/artstore/internal/domain/model"
)

// AuctionPageRepository はオークションページの取得方法を抽象化します。
// 実装がスクレイピングなのか、キャッシュなのか、テスト用の固定データなのかは
// ドメイン層は知りません。腐敗防止層（Anti-Corruption Layer）のパターンです。
type AuctionPageRepository interface {
	// FetchByURL は検証済みのオークションURLからページを取得・解析します
	// 取得失敗は importer.UpstreamFetchError、ID抽出失敗は importer.ParseError になります
	FetchByURL(ctx context.Context, pageURL *url.URL) (*model.ParsedAuction, error)
}
