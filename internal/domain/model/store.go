package model

// ShippingProfile は配送プロファイルです
// type="default" のプロファイルが存在することがインポートの前提条件です
type ShippingProfile struct {
	ID   string
	Name string
	Type string
}

// SalesChannel は販売チャネルです
type SalesChannel struct {
	ID        string
	Name      string
	IsDefault bool
}

// StockLocation は在庫ロケーションです
type StockLocation struct {
	ID        string
	Name      string
	IsDefault bool
}
