package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mbaye/vsphere-inventory/internal/config"
	"github.com/mbaye/vsphere-inventory/internal/domain/models"
)

const dateLayout = "2006-01-02 15:04:05"

// SheetExporter appends one row per virtual machine to a Google Sheet so
// operators get a browsable copy of each inventory run.
type SheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	exportRange   string
	logger        *zap.Logger
}

// NewSheetExporter builds a Google Sheets backed exporter instance.
func NewSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		exportRange:   cfg.ExportRange,
		logger:        logger,
	}, nil
}

// Name identifies this exporter in logs.
func (e *SheetExporter) Name() string {
	return "sheets"
}

// Export appends the snapshot's virtual machines to the configured range
// in a single batch.
func (e *SheetExporter) Export(ctx context.Context, snapshot models.InventorySnapshot) error {
	if e.exportRange == "" {
		return fmt.Errorf("export range must not be empty")
	}

	rows := make([][]interface{}, 0, len(snapshot.VirtualMachines))
	collected := snapshot.CollectedAt.Format(dateLayout)

	for _, vm := range snapshot.VirtualMachines {
		rows = append(rows, []interface{}{
			collected,
			snapshot.Source,
			vm.Name,
			vm.PowerState,
			vm.Guest,
			vm.GuestIP,
			vm.InstanceUUID,
			vm.Template,
		})
	}

	if len(rows) == 0 {
		e.logger.Debug("no virtual machines to export", zap.String("source", snapshot.Source))
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.exportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d rows into range %s: %w", len(rows), e.exportRange, err)
	}

	e.logger.Debug("snapshot exported to sheet",
		zap.String("range", e.exportRange),
		zap.Int("rows", len(rows)))
	return nil
}
