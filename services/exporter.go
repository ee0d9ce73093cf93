package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileWriter delivers a generated file, e.g. as a download or to disk.
type FileWriter interface {
	WriteFile(ctx context.Context, name, contentType string, body []byte) error
}

// Clipboard accepts text when no file or share target is available.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ShareTarget hands a payload to a native share mechanism. It returns
// ErrShareUnavailable when the host has none.
type ShareTarget interface {
	Share(ctx context.Context, p SharePayload) error
}

// SharePayload is what the share action publishes.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewSharePayload builds the payload for a grand total.
func NewSharePayload(data ExportData, url string) SharePayload {
	return SharePayload{
		Title: ShareTitle,
		Text:  GrandTotalLabel + ": " + FormatSEK(data.GrandTotal),
		URL:   url,
	}
}

// ClipboardText joins the payload fields with newlines.
func (p SharePayload) ClipboardText() string {
	return strings.Join([]string{p.Title, p.Text, p.URL}, "\n")
}

// Delivery tells the caller how an export reached the user.
type Delivery struct {
	Target   string `json:"target"`
	Fallback bool   `json:"fallback"`
	Notice   string `json:"notice,omitempty"`
}

// Exporter delivers exports through a primary target and falls back to the
// clipboard when that target is missing or refuses. Nil targets count as
// unavailable.
type Exporter struct {
	Files     FileWriter
	Sharer    ShareTarget
	Clipboard Clipboard
	Log       zerolog.Logger
}

// ExportWorkbook delivers the spreadsheet, or its table as tab-separated
// text on the clipboard.
func (x *Exporter) ExportWorkbook(ctx context.Context, data ExportData) (Delivery, error) {
	body, err := GenerateExcel(data)
	if err == nil {
		err = x.writeFile(ctx, WorkbookFileName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
	}
	if err == nil {
		return Delivery{Target: WorkbookFileName}, nil
	}
	return x.fallback(ctx, WorkbookFileName, GenerateTSV(data), err)
}

// ExportSummary delivers the text summary, or the same text on the clipboard.
func (x *Exporter) ExportSummary(ctx context.Context, data ExportData) (Delivery, error) {
	text := GenerateSummaryText(data)
	if err := x.writeFile(ctx, SummaryFileName, "text/plain; charset=utf-8", []byte(text)); err != nil {
		return x.fallback(ctx, SummaryFileName, text, err)
	}
	return Delivery{Target: SummaryFileName}, nil
}

// ExportPDF delivers the PDF summary, or the text summary on the clipboard.
func (x *Exporter) ExportPDF(ctx context.Context, data ExportData) (Delivery, error) {
	body, err := GeneratePDF(data)
	if err == nil {
		err = x.writeFile(ctx, PDFFileName, "application/pdf", body)
	}
	if err == nil {
		return Delivery{Target: PDFFileName}, nil
	}
	return x.fallback(ctx, PDFFileName, GenerateSummaryText(data), err)
}

// Share hands the payload to the share target, or copies its text form.
func (x *Exporter) Share(ctx context.Context, p SharePayload) (Delivery, error) {
	err := ErrShareUnavailable
	if x.Sharer != nil {
		err = x.Sharer.Share(ctx, p)
	}
	if err == nil {
		return Delivery{Target: "share"}, nil
	}
	return x.fallback(ctx, "share", p.ClipboardText(), err)
}

func (x *Exporter) writeFile(ctx context.Context, name, contentType string, body []byte) error {
	if x.Files == nil {
		return errors.New("no file target")
	}
	return x.Files.WriteFile(ctx, name, contentType, body)
}

func (x *Exporter) fallback(ctx context.Context, target, text string, cause error) (Delivery, error) {
	if x.Clipboard == nil {
		return Delivery{}, &ExportError{Target: target, Err: cause}
	}
	if err := x.Clipboard.WriteText(ctx, text); err != nil {
		return Delivery{}, &ExportError{Target: target, Err: errors.Join(cause, err)}
	}
	notice := "Kunde inte spara " + target + ", innehållet kopierades i stället"
	if errors.Is(cause, ErrShareUnavailable) {
		notice = "Delning är inte tillgänglig, texten kopierades i stället"
	} else {
		x.Log.Warn().Err(cause).Str("target", target).Msg("export fell back to clipboard")
	}
	return Delivery{Target: target, Fallback: true, Notice: notice}, nil
}

// DirWriter writes exports into a directory.
type DirWriter struct {
	Dir string
}

func (d DirWriter) WriteFile(_ context.Context, name, _ string, body []byte) error {
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriterClipboard stands in for a clipboard by writing text to W.
type WriterClipboard struct {
	W io.Writer
}

func (c WriterClipboard) WriteText(_ context.Context, text string) error {
	if _, err := io.WriteString(c.W, text); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		_, err := io.WriteString(c.W, "\n")
		return err
	}
	return nil
}
