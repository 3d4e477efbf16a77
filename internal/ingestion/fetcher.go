package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// reportPathFmt is the fixed report location under the exchange host.
// The single %s is the YYYYMMDD date token; 162000 is the publication time
// baked into every filename by the exchange.
const reportPathFmt = "/files/trades/result/upload/reports/oil_xls/oil_xls_%s162000.xls"

// ReportFetcher downloads one day's trading-results spreadsheet.
//
// A non-200 response is not an error: the exchange simply publishes no file
// on weekends and holidays, so absence is reported via the found flag and the
// caller skips that date.
type ReportFetcher struct {
	client      *resty.Client
	baseURL     string
	downloadDir string
}

// NewReportFetcher builds a fetcher for the given exchange host and local
// download directory.
func NewReportFetcher(baseURL, downloadDir string) *ReportFetcher {
	client := resty.New().
		SetTimeout(30 * time.Second)

	return &ReportFetcher{
		client:      client,
		baseURL:     baseURL,
		downloadDir: downloadDir,
	}
}

// DateToken renders a date as the YYYYMMDD token used in report filenames.
func DateToken(d time.Time) string {
	return d.Format("20060102")
}

// ReportURL returns the full source URL for a date's report.
func (f *ReportFetcher) ReportURL(d time.Time) string {
	return f.baseURL + fmt.Sprintf(reportPathFmt, DateToken(d))
}

// Fetch downloads the report for the given date.
//
// Returns:
//   - path:  local path of the saved file (valid only when found is true).
//   - found: false when the source answered with a non-200 status.
//   - err:   transport-level failure (timeout, DNS, ...) or a local I/O error;
//     the caller treats it as fatal for this date only.
func (f *ReportFetcher) Fetch(ctx context.Context, d time.Time) (path string, found bool, err error) {
	url := f.ReportURL(d)

	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", url, err)
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() != http.StatusOK {
		return "", false, nil
	}

	if err := os.MkdirAll(f.downloadDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create download dir %s: %w", f.downloadDir, err)
	}

	path = filepath.Join(f.downloadDir, fmt.Sprintf("oil_xls_%s162000.xls", DateToken(d)))
	out, err := os.Create(path)
	if err != nil {
		return "", false, fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(out, body); err != nil {
		_ = out.Close()
		return "", false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", false, fmt.Errorf("close %s: %w", path, err)
	}

	return path, true, nil
}
