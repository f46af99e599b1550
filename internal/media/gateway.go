package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

var ErrUploadFailed = errors.New("media upload failed")

// UploadResult is the hosted media service's reference to a stored file.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Gateway uploads files to the hosted media service.
type Gateway interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error)
}

type gateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGateway(baseURL, apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("media API key is empty")
	}

	return &gateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *gateway) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("filename", filename),
	)

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/upload", pr)
	if err != nil {
		log.Error("failed creating upload request", zap.Error(err))
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("upload request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("media host rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Error("failed to decode upload response", zap.Error(err))
		return nil, err
	}

	log.Info("file uploaded", zap.String("public_id", result.PublicID))
	return &result, nil
}
