package benchmark

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent       = "climatiq-tools/carbon-adviser"
	contentEncoding = "gzip, deflate, br"
)

// Client fetches the published benchmark sheet (CSV export) over HTTP.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	SourceURL  string
}

// New creates a benchmark source client. token is optional and only needed
// for protected exports.
func New(ctx context.Context, logger *zap.Logger, sourceURL, token string) *Client {
	return &Client{
		ctx:       ctx,
		token:     token,
		SourceURL: sourceURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// FetchRecords downloads the sheet and parses it into records.
func (c *Client) FetchRecords() (*Records, error) {
	rows, err := c.fetchRows()
	if err != nil {
		return nil, err
	}

	records, err := ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parsing benchmark rows: %w", err)
	}

	c.logger.Debug("fetched benchmark dataset",
		zap.String("url", c.SourceURL),
		zap.Int("rows", len(rows)),
		zap.Int("records", records.Len()),
	)

	return records, nil
}

func (c *Client) fetchRows() ([]map[string]string, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.SourceURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	return readRows(body)
}

// readRows reads a CSV stream into header-keyed rows. The first row is the
// header; its cells become the keys for every following row.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	// Sheets exports pad short rows; do not treat that as an error.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var rows []map[string]string
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(cells) {
				row[key] = cells[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
}
