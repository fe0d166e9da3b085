package acquire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultOCRBaseURL = "https://api.ocr.space"

// OCRClient extracts text from screenshots via the OCR.space API.
type OCRClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// OCR.space API response structures
type ocrResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage,omitempty"` // string or []string depending on error
}

// NewOCRClient creates a new OCR client
func NewOCRClient(apiKey, baseURL string, timeout time.Duration) (*OCRClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OCR.space API key is required")
	}

	if baseURL == "" {
		baseURL = defaultOCRBaseURL
	}

	return &OCRClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ExtractText uploads image bytes and returns the recognized text.
func (c *OCRClient) ExtractText(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("filename", "image.png")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	_ = writer.WriteField("language", "eng")
	_ = writer.WriteField("isOverlayRequired", "false")

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse/image", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp ocrResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR processing error: %s", string(apiResp.ErrorMessage))
	}

	if len(apiResp.ParsedResults) == 0 {
		return "", nil
	}

	return strings.TrimSpace(apiResp.ParsedResults[0].ParsedText), nil
}
