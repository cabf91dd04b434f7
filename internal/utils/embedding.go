package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmbedRequest Gemini Embedding API 请求结构
type EmbedRequest struct {
	Model   string       `json:"model"`
	Content EmbedContent `json:"content"`
}

type EmbedContent struct {
	Parts []EmbedPart `json:"parts"`
}

type EmbedPart struct {
	Text string `json:"text"`
}

// EmbedResponse Gemini Embedding API 响应结构
type EmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// EmbedText 调用 Embedding API 生成课程语义向量（768 维），用于相似课程检索
func EmbedText(apiKey, model, text string) ([]float32, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("未配置 EMBEDDING_API_KEY")
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:embedContent?key=%s", model, apiKey)

	reqBody := EmbedRequest{
		Model: "models/" + model,
		Content: EmbedContent{
			Parts: []EmbedPart{{Text: text}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("请求 Embedding API 失败: %w", err)
	}
	defer resp.Body.Close()

	var result EmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("Embedding API 错误: %s", result.Error.Message)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("Embedding API 返回空向量")
	}

	return result.Embedding.Values, nil
}
