package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pocketbase/pocketbase"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"driftcalc/collections"
	"driftcalc/config"
	"driftcalc/services"
)

// openSession ensures the state collection exists and restores the
// persisted session.
func openSession(app *pocketbase.PocketBase, cfg *config.Config, log zerolog.Logger) (*services.Session, error) {
	if err := collections.Setup(app, log); err != nil {
		return nil, err
	}
	return services.NewSession(services.DefaultCatalog(), services.NewRecordStateStore(app), cfg.StorageKey, log), nil
}

func newQuoteCmd(app *pocketbase.PocketBase, cfg *config.Config, log zerolog.Logger) *cobra.Command {
	var opts quoteOptions
	cmd := &cobra.Command{
		Use:   "quote [id=quantity ...]",
		Short: "Print a cost summary and write the spreadsheet and PDF exports",
		Example: "  driftcalc quote placement=3 mssql=2\n" +
			"  driftcalc quote --dir ./out --pdf=false tape-backup=500",
		RunE: func(cmd *cobra.Command, args []string) error {
			quantities, err := parseQuantityArgs(args)
			if err != nil {
				return err
			}
			session, err := openSession(app, cfg, log)
			if err != nil {
				return err
			}
			if opts.Dir == "" {
				opts.Dir = cfg.ExportDir
			}
			opts.ShareURL = cfg.ShareURL
			return runQuote(cmd.Context(), session, quantities, opts, cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "export directory (default from DRIFTCALC_EXPORT_DIR)")
	cmd.Flags().BoolVar(&opts.Workbook, "xlsx", true, "write "+services.WorkbookFileName)
	cmd.Flags().BoolVar(&opts.PDF, "pdf", true, "write "+services.PDFFileName)
	cmd.Flags().BoolVar(&opts.Share, "share", false, "print the share text")
	return cmd
}

func newCatalogCmd(app *pocketbase.PocketBase, cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the services with their effective prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := openSession(app, cfg, log)
			if err != nil {
				return err
			}
			return runCatalog(session, cmd.OutOrStdout())
		},
	}
}

type quoteOptions struct {
	Dir      string
	Workbook bool
	PDF      bool
	Share    bool
	ShareURL string
}

// parseQuantityArgs reads id=quantity pairs. Later pairs for the same id win.
func parseQuantityArgs(args []string) (map[string]int, error) {
	out := make(map[string]int, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("argument %q: want id=quantity", arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("argument %q: quantity must be a whole number", arg)
		}
		out[id] = n
	}
	return out, nil
}

func runQuote(ctx context.Context, session *services.Session, quantities map[string]int, opts quoteOptions, out io.Writer, log zerolog.Logger) error {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := session.SetQuantity(id, quantities[id]); err != nil {
			return err
		}
	}

	data := services.BuildExportData(session.Totals())
	if _, err := io.WriteString(out, services.GenerateSummaryText(data)); err != nil {
		return err
	}

	x := &services.Exporter{
		Files:     services.DirWriter{Dir: opts.Dir},
		Clipboard: services.WriterClipboard{W: out},
		Log:       log,
	}
	var runs []func(context.Context, services.ExportData) (services.Delivery, error)
	if opts.Workbook {
		runs = append(runs, x.ExportWorkbook)
	}
	if opts.PDF {
		runs = append(runs, x.ExportPDF)
	}
	if opts.Share {
		// A terminal has no share sheet; the payload lands on out.
		runs = append(runs, func(ctx context.Context, data services.ExportData) (services.Delivery, error) {
			return x.Share(ctx, services.NewSharePayload(data, opts.ShareURL))
		})
	}
	for _, run := range runs {
		d, err := run(ctx, data)
		if err != nil {
			return err
		}
		if d.Fallback {
			if d.Target != "share" {
				fmt.Fprintln(out, d.Notice)
			}
			continue
		}
		fmt.Fprintf(out, "Skrev %s\n", filepath.Join(opts.Dir, d.Target))
	}
	return nil
}

func runCatalog(session *services.Session, out io.Writer) error {
	view := session.View()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ct := range view.Totals.Categories {
		fmt.Fprintf(w, "%s\n", ct.Category.Label)
		for _, line := range view.Totals.Lines {
			if line.Item.Category != ct.Category.Key {
				continue
			}
			maxQty := ""
			if line.Item.HasMax() {
				maxQty = "max " + strconv.Itoa(*line.Item.MaxQuantity)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
				line.Item.ID, line.Item.Name, services.FormatUnitPrice(line.Price), line.Item.Unit, maxQty)
		}
	}
	return w.Flush()
}
