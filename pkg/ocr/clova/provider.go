package clova

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-receipt-be/pkg/ocr"
)

// ClovaProvider calls the Naver CLOVA OCR general API.
type ClovaProvider struct {
	Endpoint string
	Secret   string
	Client   *http.Client
}

// Ensure ClovaProvider implements Provider
var _ ocr.Provider = &ClovaProvider{}

func NewClovaProvider(endpoint, secret string) *ClovaProvider {
	return &ClovaProvider{
		Endpoint: endpoint,
		Secret:   secret,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type clovaRequest struct {
	Version   string       `json:"version"`
	RequestID string       `json:"requestId"`
	Timestamp int64        `json:"timestamp"`
	Lang      string       `json:"lang"`
	Images    []clovaImage `json:"images"`
}

type clovaImage struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	Data   string `json:"data"`
}

type clovaResponse struct {
	Images []struct {
		Fields []struct {
			InferText string `json:"inferText"`
		} `json:"fields"`
	} `json:"images"`
}

// --- Interface Implementation ---

func (c *ClovaProvider) ExtractText(ctx context.Context, image []byte) (string, error) {
	reqPayload := clovaRequest{
		Version:   "V2",
		RequestID: uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
		Lang:      "ko",
		Images: []clovaImage{
			{
				Format: "jpeg",
				Name:   "receipt",
				Data:   base64.StdEncoding.EncodeToString(image),
			},
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-OCR-SECRET", c.Secret)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("clova request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("clova error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var clovaResp clovaResponse
	if err := json.Unmarshal(bodyBytes, &clovaResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(clovaResp.Images) == 0 {
		return "", fmt.Errorf("clova response contains no images")
	}

	var lines []string
	for _, field := range clovaResp.Images[0].Fields {
		text := strings.TrimSpace(field.InferText)
		if text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}
