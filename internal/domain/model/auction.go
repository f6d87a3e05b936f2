package model

// ParsedAuction はヤフオクの商品ページから抽出した情報のドメインモデルです
// 外部サイト（ヤフオク）のHTML構造を知らない、純粋なデータ構造を定義します
// 1回のインポートリクエストの間だけ存在し、永続化はされません
type ParsedAuction struct {
	AuctionID   string
	Title       string
	Description string
	ImageURLs   []string // 重複排除済み・最大20件・発見順
	PriceJPY    int64    // 現在価格（単位：円）。取得できない場合は0
	SourceURL   string   // インポート元のURL（メタデータ記録用）
}

// HasPrice は価格が抽出できたかどうかを返します
func (p *ParsedAuction) HasPrice() bool {
	return p.PriceJPY > 0
}

// TranslationResult は翻訳アダプターが返す結果です
// タイトルと説明の両方が揃っている場合のみ有効とみなします
type TranslationResult struct {
	Title       string
	Description string
	Provider    string // 例: "openai"
	SourceLang  string // BCP-47 (例: "ja")
	TargetLang  string // BCP-47 (例: "zh-CN")
}

// TranslationRequest は翻訳アダプターへの入力です
type TranslationRequest struct {
	Title       string
	Description string
	SourceLang  string
	TargetLang  string
}
