package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/clinicdesk/backend/pkg/config"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Client wraps the Google Sheets API for a single configured spreadsheet.
// It performs service-account JWT authentication and classifies API failures
// into the application error taxonomy: credential rejections are
// configuration errors, everything else reaching the network is external.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
}

// NewClient creates a new Sheets client from the credential triple.
func NewClient(ctx context.Context, cfg *config.SheetsConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{spreadsheetScope},
		TokenURL:   google.JWTTokenURL,
	}

	httpClient := conf.Client(ctx)
	httpClient.Timeout = 10 * time.Second

	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to initialize sheets service", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// SheetName returns the configured worksheet title
func (c *Client) SheetName() string {
	return c.sheetName
}

// SheetTitles lists the worksheet titles of the spreadsheet
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("load spreadsheet", err)
	}

	titles := make([]string, 0, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// AddSheet creates a new worksheet with the given title
func (c *Client) AddSheet(ctx context.Context, title string) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{
			{
				AddSheet: &gsheets.AddSheetRequest{
					Properties: &gsheets.SheetProperties{Title: title},
				},
			},
		},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return classify("add sheet", err)
	}
	return nil
}

// GetRange reads a range in A1 notation and returns the rows as strings
func (c *Client) GetRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, classify("read range", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdateRange overwrites a range in A1 notation with the given rows
func (c *Client) UpdateRange(ctx context.Context, rng string, values [][]string) error {
	vr := &gsheets.ValueRange{Values: toInterfaceRows(values)}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("update range", err)
	}
	return nil
}

// AppendRow appends a single row after the last row of the given table range
func (c *Client) AppendRow(ctx context.Context, rng string, row []string) error {
	vr := &gsheets.ValueRange{Values: toInterfaceRows([][]string{row})}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return classify("append row", err)
	}
	return nil
}

func toInterfaceRows(values [][]string) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	return rows
}

// classify maps a Sheets API failure to the application error taxonomy.
// 401/403 mean the service account or its key is wrong, which operators fix
// in configuration; any other failure is a connectivity problem.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewConfigurationError(
				fmt.Sprintf("sheets API rejected the service account credentials (%s: HTTP %d)", op, apiErr.Code))
		case http.StatusNotFound:
			return apperrors.NewConfigurationError(
				fmt.Sprintf("spreadsheet not found, check GOOGLE_SHEET_ID (%s)", op))
		}
	}
	return apperrors.NewExternalError(fmt.Sprintf("sheets API call failed (%s)", op), err)
}
