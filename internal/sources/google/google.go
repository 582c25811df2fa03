package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"bankreport/internal/cache"
	"bankreport/internal/core"
	"bankreport/internal/sources"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet and credentials for the Sheets reader.
type Config struct {
	SpreadsheetID      string
	DepositsSheet      string
	WithdrawalsSheet   string
	ServiceAccountJSON string
	ServiceAccountFile string
	CacheTTL           time.Duration
}

type fetchFunc func(ctx context.Context, rng string) ([][]interface{}, error)

type Client struct {
	spreadsheetID string
	sheets        map[core.Table]string
	fetch         fetchFunc
	cache         *cache.LRUCache[[][]interface{}]
}

// Ensure interface conformance
var _ sources.TransactionReader = (*Client)(nil)

// New creates a Sheets reader authenticated with service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	spreadsheetID := cfg.SpreadsheetID
	fetch := func(ctx context.Context, rng string) ([][]interface{}, error) {
		resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rng).
			ValueRenderOption("UNFORMATTED_VALUE").
			Context(ctx).
			Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}
	return newClient(cfg, fetch), nil
}

func newClient(cfg Config, fetch fetchFunc) *Client {
	deposits := strings.TrimSpace(cfg.DepositsSheet)
	if deposits == "" {
		deposits = "Deposits"
	}
	withdrawals := strings.TrimSpace(cfg.WithdrawalsSheet)
	if withdrawals == "" {
		withdrawals = "Withdrawals"
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		sheets: map[core.Table]string{
			core.Deposits:    deposits,
			core.Withdrawals: withdrawals,
		},
		fetch: fetch,
		cache: cache.NewLRUCache[[][]interface{}](len(core.Tables()), ttl),
	}
}

// newSheetsService initializes a read-only Sheets Service using Service Account credentials.
// Falls back to GOOGLE_APPLICATION_CREDENTIALS when neither JSON nor file is configured.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(cfg.ServiceAccountJSON)
	serviceAccountFile := strings.TrimSpace(cfg.ServiceAccountFile)
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTable reads columns A:C of the table's sheet.
func (c *Client) ReadTable(ctx context.Context, table core.Table) ([]core.Transaction, error) {
	sheet, ok := c.sheets[table]
	if !ok {
		return nil, &core.InputNotFoundError{Table: table, Path: "sheets:" + c.spreadsheetID}
	}
	rng := fmt.Sprintf("%s!A:C", sheet)

	values, err := c.cache.GetOrLoad(rng, func() ([][]interface{}, error) {
		start := time.Now()
		v, err := c.fetch(ctx, rng)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "Fetched sheet values",
			"range", rng,
			"rows", len(v),
			"duration_ms", time.Since(start).Milliseconds())
		return v, nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, &core.InputNotFoundError{Table: table, Path: c.spreadsheetID + "/" + rng}
		}
		return nil, fmt.Errorf("sheets get %s: %w", rng, err)
	}

	rows, err := parseRows(sheet, values)
	if err != nil {
		// A corrected sheet must be fetched again on the next read.
		c.cache.Delete(rng)
		return nil, err
	}
	return rows, nil
}
