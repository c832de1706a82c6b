package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/thereayou/netsentinel/internal/metrics"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxResponseSize ограничивает тело ответа, detailed_anomaly_data бывает большим
	maxResponseSize = 64 << 20

	endpointUpload      = "upload"
	endpointPredictions = "get-predictions"
)

var (
	ErrUnavailable     = errors.New("prediction service unavailable")
	ErrInvalidResponse = errors.New("prediction service returned invalid JSON")
)

// StatusError возвращается на ответ с кодом вне 2xx
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction service %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker(),
	}
}

// Upload передаёт файл сервису как multipart поле "file", не буферизуя его целиком
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader) (json.RawMessage, error) {
	pr, pw := io.Pipe()
	// Закрытие читателя отпускает писателя, если запрос так и не был отправлен
	defer pr.Close()

	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpointUpload, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, endpointUpload)
}

// Predictions возвращает последнюю сводку предсказаний
func (c *Client) Predictions(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpointPredictions, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, endpointPredictions)
}

func (c *Client) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	start := time.Now()
	req.Header.Set("Accept", "application/json")

	body, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}
		if !json.Valid(body) {
			return nil, ErrInvalidResponse
		}
		return body, nil
	})
	metrics.PredictionRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		result := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "rejected"
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.PredictionRequestsTotal.WithLabelValues(endpoint, result).Inc()
		return nil, err
	}

	metrics.PredictionRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return json.RawMessage(body), nil
}
