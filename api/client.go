package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"goal-stock/models"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client talks to the analysis backend: GET /autocomplete for the ticker
// catalog and POST / for the analysis itself. Each call is a single request
// without retries; the caller's context is the only deadline.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchTickers implements search.Source.
func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/autocomplete", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("autocomplete returned status: %s", resp.Status)
	}

	var tickers []models.Ticker
	if err := json.NewDecoder(resp.Body).Decode(&tickers); err != nil {
		return nil, fmt.Errorf("failed to decode tickers: %w", err)
	}
	return tickers, nil
}

type analysisResponse struct {
	Error string `json:"error"`
	models.AnalysisResult
}

// Analyze submits the rows (and the attached spreadsheet, if any) and
// returns the summary. A backend {"error"} payload comes back as
// *AnalysisError; anything that never produced a readable payload wraps
// ErrNetwork.
func (c *Client) Analyze(ctx context.Context, ar models.AnalysisRequest) (*models.AnalysisResult, error) {
	body, contentType, err := encodeAnalysisForm(ar)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("analysis request failed")
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	var payload analysisResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("undecodable analysis response")
		return nil, fmt.Errorf("%w: status %s: %v", ErrNetwork, resp.Status, err)
	}
	if payload.Error != "" {
		return nil, &AnalysisError{Message: payload.Error}
	}

	log.Info().
		Int("realized", payload.RealizedCount).
		Int("unrealized", payload.UnrealizedCount).
		Msg("analysis completed")
	return &payload.AnalysisResult, nil
}

func encodeAnalysisForm(ar models.AnalysisRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("target_profit", ar.TargetProfit.String()); err != nil {
		return nil, "", err
	}
	for _, row := range ar.Rows {
		if err := w.WriteField("tickers", row.Ticker); err != nil {
			return nil, "", err
		}
		if err := w.WriteField("buy_dates", row.Date); err != nil {
			return nil, "", err
		}
	}
	if ar.File != nil {
		part, err := w.CreateFormFile("excel_file", ar.File.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(ar.File.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
