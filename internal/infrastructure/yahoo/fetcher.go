package yahoo

import (
	"context"
	"io"
	"net/http"

	"github.com/guanrg/artstore/internal/domain/importer"
)

// browserUserAgent は一般的なブラウザに見せかけるUser-Agentです
// ヤフオクはデフォルトのGoクライアントのUAに対してbot向けページを返すことがあります
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// fetchHTML は指定されたURLからHTMLを取得して文字列で返します
// 取得系の失敗はすべて importer.UpstreamFetchError に変換します
func fetchHTML(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &importer.UpstreamFetchError{Err: err}
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	res, err := client.Do(req)
	if err != nil {
		return "", &importer.UpstreamFetchError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", &importer.UpstreamFetchError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &importer.UpstreamFetchError{Err: err}
	}

	return string(body), nil
}
