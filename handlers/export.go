package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/services"
)

const (
	formatPDF   = "pdf"
	formatExcel = "excel"
)

// exporter renders export data into file bytes.
type exporter struct {
	format      string
	extension   string
	contentType string
	generate    func(*services.ExportData) ([]byte, error)
}

var (
	pdfExporter = exporter{
		format:      formatPDF,
		extension:   "pdf",
		contentType: "application/pdf",
		generate:    services.GenerateDocumentPDF,
	}
	excelExporter = exporter{
		format:      formatExcel,
		extension:   "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		generate:    services.GenerateDocumentExcel,
	}
)

// HandleDocumentExportPDF downloads the document as a PDF.
func HandleDocumentExportPDF(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return handleExport(app, s, pdfExporter)
}

// HandleDocumentExportExcel downloads the document as an Excel workbook.
func HandleDocumentExportExcel(app *pocketbase.PocketBase, s Settings) func(*core.RequestEvent) error {
	return handleExport(app, s, excelExporter)
}

// handleExport validates the document before rendering; a document that
// fails validation is answered with 422 and a toast, and no file is produced.
func handleExport(app *pocketbase.PocketBase, s Settings, x exporter) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := requestDocument(e, app)
		if err != nil {
			return respondError(e, "export "+x.format, err)
		}

		data, err := services.BuildExportData(doc, s.Company, s.Rates, time.Now())
		if err != nil {
			services.ObserveExport(x.format, err)
			return respondError(e, "export "+x.format, err)
		}

		body, err := x.generate(data)
		services.ObserveExport(x.format, err)
		if err != nil {
			slog.Error("export: generation failed", "format", x.format, "document", doc.ID, "error", err)
			return ErrorToast(e, http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s", strings.ToUpper(x.format)))
		}

		filename := fmt.Sprintf("%s.%s", sanitizeFilename(data.DocNumber), x.extension)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return e.Blob(http.StatusOK, x.contentType, body)
	}
}

// sanitizeFilename replaces characters that are unsafe in a download name.
func sanitizeFilename(s string) string {
	if s == "" {
		return "document"
	}
	return strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", `"`, "").Replace(s)
}
