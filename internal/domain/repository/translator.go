package repository

import (
	"context"

	"github.com/guanrg/artstore/internal/domain/model"
)

// Translator は外部の翻訳サービスを抽象化します。
// 翻訳はオプトインのインフラであり、必須の依存ではありません。
type Translator interface {
	// Translate はタイトルと説明を翻訳します
	// 認証情報が未設定の場合は (nil, nil) を返します（エラーではありません）
	// 失敗はエラーとして返しますが、呼び出し側で握りつぶして記録するだけにします
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
}
