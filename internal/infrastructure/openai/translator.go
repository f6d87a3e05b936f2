// Package openai はチャット補完APIを使った翻訳アダプターを提供します。
// 翻訳はオプトインのインフラであり、APIキー未設定なら何もしません。
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/guanrg/artstore/internal/domain/importer"
	"github.com/guanrg/artstore/internal/domain/model"
	"github.com/guanrg/artstore/internal/domain/repository"
	"github.com/guanrg/artstore/internal/infrastructure/htmltext"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

// Config は翻訳アダプターの設定です
type Config struct {
	APIKey  string
	Model   string        // 空なら gpt-4o-mini
	BaseURL string        // テストで差し替えられるようにします。空なら本番API
	Timeout time.Duration // 0以下なら30秒
}

type translator struct {
	cfg    Config
	client *http.Client
}

// NewTranslator は repository.Translator の実装を作成します
func NewTranslator(cfg Config) repository.Translator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return newTranslator(cfg, &http.Client{Timeout: timeout})
}

func newTranslator(cfg Config, client *http.Client) repository.Translator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &translator{cfg: cfg, client: client}
}

// chatRequest / chatResponse はチャット補完APIのワイヤ形式です
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Translate はタイトルと説明をまとめて1回の呼び出しで翻訳します
// APIキーが未設定なら (nil, nil) を返します。型番・ブランド名は翻訳させません
func (t *translator) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	if t.cfg.APIKey == "" {
		return nil, nil
	}

	instruction := fmt.Sprintf(
		"Translate product content from %s to %s. Keep brand/model codes unchanged. "+
			`Return strict JSON only: {"title":"...","description":"..."}`,
		req.SourceLang, req.TargetLang,
	)

	userPayload, err := json.Marshal(map[string]string{
		"title":       req.Title,
		"description": req.Description,
	})
	if err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: cannot encode request", Err: err}
	}

	body := chatRequest{
		Model:       t.cfg.Model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: string(userPayload)},
		},
	}
	body.ResponseFormat.Type = "json_object"

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: cannot encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.BaseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: cannot build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)

	res, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: request error", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &importer.TranslationError{Message: fmt.Sprintf("translation failed (%d)", res.StatusCode)}
	}

	var decoded chatResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: invalid response body", Err: err}
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return nil, &importer.TranslationError{Message: "translation failed: empty model response"}
	}

	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &payload); err != nil {
		return nil, &importer.TranslationError{Message: "translation failed: invalid JSON payload", Err: err}
	}

	title := htmltext.Normalize(payload.Title)
	description := htmltext.Normalize(payload.Description)
	if title == "" || description == "" {
		return nil, &importer.TranslationError{Message: "translation failed: invalid JSON payload"}
	}

	return &model.TranslationResult{
		Title:       title,
		Description: description,
		Provider:    "openai",
		SourceLang:  req.SourceLang,
		TargetLang:  req.TargetLang,
	}, nil
}
