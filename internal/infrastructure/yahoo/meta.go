package yahoo

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/guanrg/artstore/internal/infrastructure/htmltext"
)

// metaPatternsFor は指定キーのmetaタグを拾う正規表現を属性順のバリエーション分
// 生成します。ヤフオクのマークアップは property/content の並び順が安定しないため、
// 4通り（property→content, content→property, name→content, content→name）を試します
func metaPatternsFor(key string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(key)
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+property=["']%s["'][^>]+content=["']([^"']+)["'][^>]*>`, quoted)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']%s["'][^>]*>`, quoted)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+name=["']%s["'][^>]+content=["']([^"']+)["'][^>]*>`, quoted)),
		regexp.MustCompile(fmt.Sprintf(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']%s["'][^>]*>`, quoted)),
	}
}

var (
	metaPatternMu    sync.Mutex
	metaPatternCache = map[string][]*regexp.Regexp{}
)

func cachedMetaPatterns(key string) []*regexp.Regexp {
	metaPatternMu.Lock()
	defer metaPatternMu.Unlock()
	if patterns, ok := metaPatternCache[key]; ok {
		return patterns
	}
	patterns := metaPatternsFor(key)
	metaPatternCache[key] = patterns
	return patterns
}

// MetaContent はHTMLから指定キーのmetaタグのcontentを抽出して正規化します
// 見つからない場合は空文字列を返します
func MetaContent(html, key string) string {
	for _, pattern := range cachedMetaPatterns(key) {
		match := pattern.FindStringSubmatch(html)
		if len(match) > 1 && match[1] != "" {
			return htmltext.Normalize(match[1])
		}
	}
	return ""
}
