// Package htmltext はスクレイピングと翻訳の両方で使うテキスト正規化を提供します。
package htmltext

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	entityReplacer    = strings.NewReplacer(
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// Decode はヤフオクのページ内で実際に使われる5種類のHTMLエンティティを
// デコードします。汎用のエンティティ処理は必要ありません
func Decode(input string) string {
	return entityReplacer.Replace(input)
}

// Normalize はHTML断片をプレーンテキストに正規化します
// タグ除去 → エンティティのデコード → 空白の圧縮 → トリムの順で処理し、
// 空入力には空文字列を返します。失敗することはありません
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(input, " ")
	text = Decode(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
