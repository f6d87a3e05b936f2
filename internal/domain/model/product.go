package model

// ProductStatus は商品の公開状態を表します
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

// Product はコマース側の商品レコードのドメインモデルです
// ヤフオクのインポートでは ExternalID ("yahoo:<auctionID>") を
// 自然キーとして、同一オークションにつき最大1件を保ちます
type Product struct {
	ID                string
	Title             string
	Subtitle          string // 翻訳前の原文タイトルを保持します
	Handle            string // URLスラッグ。ExternalID導入前のレコードの照合にも使います
	ExternalID        string
	Description       string
	Status            ProductStatus
	ShippingProfileID string
	SalesChannelIDs   []string
	Images            []string
	Options           []ProductOption
	Variants          []*Variant
	Metadata          map[string]any // インポート来歴（元URL・原文・翻訳情報など）
}

// ProductOption は商品オプションです（例: Condition）
type ProductOption struct {
	Title  string
	Values []string
}

// Variant は商品バリアントです
// インポートされた商品は "Default" バリアントを1つだけ持ちます
type Variant struct {
	ID              string
	Title           string
	SKU             string
	ManageInventory bool
	AllowBackorder  bool
	Options         map[string]string
	Prices          []Price
}

// Price は通貨別の価格です。Amountは最小通貨単位（セント）です
type Price struct {
	CurrencyCode string
	Amount       int64
}

// ImportMode は照合の結果（新規作成か更新か）を表します
type ImportMode string

const (
	ImportModeCreated ImportMode = "created"
	ImportModeUpdated ImportMode = "updated"
)

// ImportResult はインポートユースケースの出力です
type ImportResult struct {
	Mode             ImportMode
	Product          *Product
	Parsed           *ParsedAuction
	Translated       *TranslationResult // 翻訳しなかった/失敗した場合はnil
	TranslationError string             // 翻訳失敗時のメッセージ。致命的エラーにはしません
}
