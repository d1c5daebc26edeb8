package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"logidash/infrastructure/config"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

const maxSheetBytes = 32 << 20

// Source names one tab of the spreadsheet.
type Source struct {
	Key   string
	Sheet string
}

// SourcesFromConfig lists the configured tabs in fetch order.
func SourcesFromConfig(cfg config.SheetsConfig) []Source {
	out := make([]Source, 0, len(config.TabOrder))
	for _, key := range config.TabOrder {
		out = append(out, Source{Key: key, Sheet: cfg.Tabs[key]})
	}
	return out
}

// TenantFromConfig converts the configured tenant for snapshot building.
func TenantFromConfig(cfg config.TenantConfig) dashboard.Tenant {
	return dashboard.Tenant{
		Name:         cfg.Name,
		CustomerCode: cfg.CustomerCode,
		ExpiryDays:   cfg.ExpiryDays,
	}
}

// Client downloads tabs through the gviz CSV export.
type Client struct {
	BaseURL       string
	SpreadsheetID string
	HTTP          *http.Client
	Now           func() time.Time
}

func NewClient(cfg config.SheetsConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		BaseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		SpreadsheetID: cfg.SpreadsheetID,
		HTTP:          &http.Client{Timeout: timeout},
		Now:           time.Now,
	}
}

// URL builds the CSV export URL for a tab. The t parameter defeats caches.
func (c *Client) URL(sheet string) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", sheet)
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s", c.BaseURL, url.PathEscape(c.SpreadsheetID), q.Encode())
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Fetch downloads and parses one tab.
func (c *Client) Fetch(ctx context.Context, src Source) ([]sheetrow.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(src.Sheet), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src.Sheet, err)
	}
	req.Header.Set("Accept", "text/csv")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Sheet, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxSheetBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Sheet, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if title := htmlTitle(body); title != "" {
			return nil, fmt.Errorf("fetch %s: HTTP %d: %s", src.Sheet, res.StatusCode, title)
		}
		return nil, fmt.Errorf("fetch %s: HTTP %d", src.Sheet, res.StatusCode)
	}

	if isHTML(res.Header.Get("Content-Type"), body) {
		title := htmlTitle(body)
		if title == "" {
			title = "unexpected html response"
		}
		return nil, fmt.Errorf("fetch %s: %s", src.Sheet, title)
	}

	rows, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Sheet, err)
	}
	return rows, nil
}

// FetchAll downloads every source concurrently. A failing source yields an
// empty table and an error in its status; the call itself never fails.
func (c *Client) FetchAll(ctx context.Context, sources []Source) (dashboard.Tables, []dashboard.SourceStatus) {
	tables := make(dashboard.Tables, len(sources))
	statuses := make([]dashboard.SourceStatus, len(sources))
	results := make([][]sheetrow.Row, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			started := time.Now()
			rows, err := c.Fetch(ctx, src)
			st := dashboard.SourceStatus{Key: src.Key, Sheet: src.Sheet, Duration: time.Since(started)}
			if err != nil {
				slog.Warn("sheet fetch failed", slog.String("sheet", src.Sheet), slog.Any("err", err))
				st.Err = err.Error()
				rows = nil
			}
			st.Rows = len(rows)
			statuses[i] = st
			results[i] = rows
		}(i, src)
	}
	wg.Wait()

	for i, src := range sources {
		tables[src.Key] = results[i]
	}
	return tables, statuses
}

// ParseCSV reads a CSV export into rows keyed by the trimmed header line.
// Only empty lines are skipped; a row of blank cells such as ",," is kept so
// row counts match the sheet.
func ParseCSV(r io.Reader) ([]sheetrow.Row, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []sheetrow.Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	headers := sheetrow.NormalizeHeaders(header)

	rows := make([]sheetrow.Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		rows = append(rows, sheetrow.New(headers, record))
	}
	return rows, nil
}

func isHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 64 {
		head = head[:64]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// htmlTitle extracts the <title> of a Google error or sign-in page.
func htmlTitle(body []byte) string {
	if !isHTML("", body) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
