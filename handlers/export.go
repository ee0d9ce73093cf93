package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"driftcalc/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// downloadWriter delivers an export as an attachment on the response.
type downloadWriter struct {
	e *core.RequestEvent
}

func (d downloadWriter) WriteFile(_ context.Context, name, contentType string, body []byte) error {
	d.e.Response.Header().Set("Content-Type", contentType)
	d.e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(name)))
	_, err := d.e.Response.Write(body)
	return err
}

// bufferClipboard holds fallback text until the handler writes the response.
type bufferClipboard struct {
	text string
}

func (b *bufferClipboard) WriteText(_ context.Context, text string) error {
	b.text = text
	return nil
}

type exportFunc func(*services.Exporter, context.Context, services.ExportData) (services.Delivery, error)

// handleExport runs one export against the current totals and delivers
// it as a download.
func handleExport(deps *Deps, run exportFunc) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return exportTo(e, deps, downloadWriter{e: e}, run)
	}
}

// exportTo runs the export with files as the destination. A fallback
// delivery answers with the copyable text and a warning toast.
func exportTo(e *core.RequestEvent, deps *Deps, files services.FileWriter, run exportFunc) error {
	log := GetLogger(e.Request, deps.Log)
	clip := &bufferClipboard{}
	x := &services.Exporter{
		Files:     files,
		Clipboard: clip,
		Log:       log,
	}

	data := services.BuildExportData(deps.Session.Totals())
	delivery, err := run(x, e.Request.Context(), data)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		return ErrorToast(e, http.StatusInternalServerError, "Exporten misslyckades")
	}
	if delivery.Fallback {
		e.Response.Header().Del("Content-Disposition")
		e.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
		SetToast(e, "warning", delivery.Notice)
		e.Response.Header().Set("X-Export-Fallback", "clipboard")
		return e.String(http.StatusOK, clip.text)
	}
	return nil
}

// HandleExportExcel downloads the estimate as kostnadskalkyl.xlsx.
func HandleExportExcel(deps *Deps) func(*core.RequestEvent) error {
	return handleExport(deps, (*services.Exporter).ExportWorkbook)
}

// HandleExportPDF downloads the estimate as a PDF summary.
func HandleExportPDF(deps *Deps) func(*core.RequestEvent) error {
	return handleExport(deps, (*services.Exporter).ExportPDF)
}

// HandleExportSummary downloads the plain-text summary.
func HandleExportSummary(deps *Deps) func(*core.RequestEvent) error {
	return handleExport(deps, (*services.Exporter).ExportSummary)
}

type shareResponse struct {
	services.SharePayload
	Clipboard string `json:"clipboard"`
}

// HandleShare returns the share payload for the browser's native share
// sheet, with the newline-joined text to copy when sharing is unavailable.
func HandleShare(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := services.BuildExportData(deps.Session.Totals())
		payload := services.NewSharePayload(data, deps.ShareURL)
		return e.JSON(http.StatusOK, shareResponse{
			SharePayload: payload,
			Clipboard:    payload.ClipboardText(),
		})
	}
}
