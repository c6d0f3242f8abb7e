package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
)

// exportBatchSize is the page size used when draining the expense list for a
// report. It matches the listing service's page-size cap.
const exportBatchSize = 200

var expenseExportHeader = []string{"date", "project_id", "vendor", "amount", "currency", "funding_source", "cost_center", "invoice_no", "notes"}

var varianceExportHeader = []string{"project_id", "planned", "allocated", "actual", "variance_amount", "variance_pct"}

// exportService renders expense and variance reports to CSV, XLSX and PDF.
// It reads through the same services as the JSON endpoints so exported
// figures cannot drift from the API's.
type exportService struct {
	BaseService
	expenseSvc   portssvc.ExpenseSvcFacade
	analyticsSvc portssvc.AnalyticsSvcFacade
}

// NewExportService creates a new ExportService.
func NewExportService(expenseSvc portssvc.ExpenseSvcFacade, analyticsSvc portssvc.AnalyticsSvcFacade) portssvc.ExportSvcFacade {
	return &exportService{
		expenseSvc:   expenseSvc,
		analyticsSvc: analyticsSvc,
	}
}

// Ensure exportService implements the portssvc.ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportExpenses renders the filtered expense list.
func (s *exportService) ExportExpenses(ctx context.Context, actor domain.Actor, filter portsrepo.ExpenseFilter, format dto.ExportFormat) (*dto.ExportResult, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	expenses, err := s.fetchAllExpenses(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = []string{
			e.ExpenseDate.Format("2006-01-02"),
			e.ProjectID,
			e.Vendor,
			e.Amount.String(),
			e.Currency,
			e.FundingSource,
			e.CostCenter,
			e.InvoiceNumber,
			e.Notes,
		}
	}

	s.LogInfo(ctx, "Expense export rendered",
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)))
	return render("expenses", expenseExportHeader, rows, format)
}

// ExportVariance renders the budget-vs-actual report.
func (s *exportService) ExportVariance(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter, format dto.ExportFormat) (*dto.ExportResult, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	variances, err := s.analyticsSvc.Variance(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(variances))
	for i, v := range variances {
		rows[i] = []string{
			v.ProjectID,
			v.Planned.String(),
			v.Allocated.String(),
			v.Actual.String(),
			v.VarianceAmount.String(),
			v.VariancePct.StringFixed(2),
		}
	}

	s.LogInfo(ctx, "Variance export rendered",
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)))
	return render("variance", varianceExportHeader, rows, format)
}

// fetchAllExpenses drains every page of the filtered listing.
func (s *exportService) fetchAllExpenses(ctx context.Context, actor domain.Actor, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	filter.Page = 1
	filter.PageSize = exportBatchSize

	var all []domain.Expense
	for {
		page, total, err := s.expenseSvc.ListExpenses(ctx, actor, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(all)) >= total || len(page) == 0 {
			return all, nil
		}
		filter.Page++
	}
}

// render serializes a header + rows table into the requested format.
func render(report string, header []string, rows [][]string, format dto.ExportFormat) (*dto.ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case dto.FormatCSV:
		data, err := renderCSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &dto.ExportResult{
			Data:        data,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s_%s.csv", report, stamp),
		}, nil
	case dto.FormatXLSX:
		data, err := renderXLSX(report, header, rows)
		if err != nil {
			return nil, err
		}
		return &dto.ExportResult{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("%s_%s.xlsx", report, stamp),
		}, nil
	case dto.FormatPDF:
		data, err := renderPDF(report, header, rows)
		if err != nil {
			return nil, err
		}
		return &dto.ExportResult{
			Data:        data,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s_%s.pdf", report, stamp),
		}, nil
	}
	return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, apperrors.NewAppError(500, "failed to write CSV header", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, apperrors.NewAppError(500, "failed to write CSV rows", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to flush CSV", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, apperrors.NewAppError(500, "failed to name worksheet", err)
	}

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, header); err != nil {
		return nil, apperrors.NewAppError(500, "failed to write XLSX header", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, apperrors.NewAppError(500, "failed to write XLSX row", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.NewAppError(500, "failed to serialize XLSX", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(title string, header []string, rows [][]string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	for _, h := range header {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for _, value := range row {
			pdf.CellFormat(colWidth, 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewAppError(500, "failed to serialize PDF", err)
	}
	return buf.Bytes(), nil
}
