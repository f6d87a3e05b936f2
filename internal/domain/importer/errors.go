// Package importer はインポートパイプライン全体で共有するエラー型を定義します。
// ハンドラー層はここの型を errors.As で判別してHTTPステータスに変換します。
package importer

import "fmt"

// ValidationError は入力不正を表します。ネットワークアクセス前に返ります。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamFetchError はオークションページの取得失敗を表します。
// StatusCode は上流のHTTPステータス、接続自体に失敗した場合は0です。
type UpstreamFetchError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("failed to fetch auction page (%d)", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch auction page: %v", e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// ParseError はURLやHTMLからオークションIDを特定できなかったことを表します。
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// TranslationError は翻訳の失敗を表します。
// リクエスト全体を失敗させず、レスポンスのフィールドとして記録されるだけです。
type TranslationError struct {
	Message string
	Err     error
}

func (e *TranslationError) Error() string { return e.Message }

func (e *TranslationError) Unwrap() error { return e.Err }

// ConfigurationError はストアの初期設定不足を表します
// （例: デフォルト配送プロファイル未作成）。
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ReconciliationError はコマース側の作成・更新処理での予期しない失敗を表します。
type ReconciliationError struct {
	Err error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("product reconciliation failed: %v", e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }
