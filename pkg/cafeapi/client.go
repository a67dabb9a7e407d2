package cafeapi

import (
	"CafeAnalyzer/internal/entity"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultBaseURL = "http://localhost:5000"

type ICafeAPI interface {
	Health(ctx context.Context) (*HealthStatus, error)
	Analyze(ctx context.Context, image []byte, filename string) (*entity.AnalysisResult, error)
	RenderReport(ctx context.Context, format entity.ReportFormat, payload interface{}) ([]byte, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	validator  *validator.Validate
	log        *logrus.Logger
	now        func() time.Time
}

type Option func(*client)

// WithTimeout bounds every request. Without it requests only end with their
// context.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

func WithValidator(v *validator.Validate) Option {
	return func(c *client) {
		c.validator = v
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *client) {
		c.log = log
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *client) {
		c.now = now
	}
}

func New(baseURL string, opts ...Option) ICafeAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = validator.New()
		_ = entity.RegisterValidations(c.validator)
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

func (c *client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, resp.StatusCode, "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(ErrServerError, resp.StatusCode, errorMessage(resp.StatusCode, body), nil)
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, newError(ErrMalformedResponse, resp.StatusCode, "", err)
	}
	return &status, nil
}

// Analyze uploads a JPEG frame as the multipart field "file" and decodes the
// detections. A missing timestamp defaults to now.
func (c *client) Analyze(ctx context.Context, image []byte, filename string) (*entity.AnalysisResult, error) {
	if filename == "" {
		filename = "frame.jpg"
	}

	var payload bytes.Buffer
	writer := multipart.NewWriter(&payload)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", &payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.WithFields(logrus.Fields{
		"url":        req.URL.String(),
		"frame_size": len(image),
	}).Debug("Sending frame for analysis")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(ErrServerError, resp.StatusCode, errorMessage(resp.StatusCode, body), nil)
	}

	return c.decodeAnalysis(body)
}

func (c *client) decodeAnalysis(body []byte) (*entity.AnalysisResult, error) {
	var raw analyzeBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newError(ErrMalformedResponse, http.StatusOK, "", err)
	}
	if err := c.validator.Struct(raw); err != nil {
		return nil, newError(ErrMalformedResponse, http.StatusOK, fmt.Sprintf("%s: %s", ErrMalformedResponse.Error(), err.Error()), err)
	}

	result := &entity.AnalysisResult{
		Timestamp: raw.Timestamp,
		Tables:    raw.Tables,
		People:    raw.People,
		ImageSize: raw.ImageSize,
	}
	if result.Timestamp == "" {
		result.Timestamp = entity.FormatTimestamp(c.now())
	}

	result.TablesFound = len(raw.Tables)
	if raw.TablesFound != nil {
		result.TablesFound = *raw.TablesFound
	}
	result.PeopleFound = len(raw.People)
	if raw.PeopleFound != nil {
		result.PeopleFound = *raw.PeopleFound
	}

	if raw.OccupancyRate != nil {
		result.OccupancyRate = *raw.OccupancyRate
	} else {
		result.OccupancyRate = result.ComputedOccupancy()
	}

	return result, nil
}

// RenderReport posts payload to /api/report/<format> and returns the file body.
func (c *client) RenderReport(ctx context.Context, format entity.ReportFormat, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/report/"+string(format), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, 0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ErrNetworkUnreachable, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
			msg := fmt.Sprintf("server returned HTML instead of %s, the report service failed", formatLabel(format))
			if title := htmlTitle(data); title != "" {
				msg += ": " + title
			}
			return nil, newError(ErrRenderingService, resp.StatusCode, msg, nil)
		}
		return nil, newError(ErrServerError, resp.StatusCode, errorMessage(resp.StatusCode, data), nil)
	}

	return data, nil
}

func errorMessage(status int, body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func formatLabel(format entity.ReportFormat) string {
	if format == entity.FormatExcel {
		return "Excel"
	}
	return "PDF"
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && errors.Is(apiErr.Kind, kind)
}
