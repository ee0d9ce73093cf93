package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the cost summary (non-zero categories, services with a
// quantity and the grand total) as a one-column A4 document.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Sida {current} av {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(SummaryTitle, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	m.AddRows(row.New(4))

	addPDFTableHeader(m)
	for _, r := range data.Rows {
		if r.Quantity <= 0 {
			continue
		}
		addPDFTableRow(m, r)
	}

	m.AddRows(row.New(6))
	for _, c := range data.NonZeroCategories() {
		addPDFSummaryRow(m, c.Label, FormatSEK(c.Total), false)
	}
	addPDFSummaryRow(m, GrandTotalLabel, FormatSEK(data.GrandTotal), true)

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(VATNotice, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 110, Green: 110, Blue: 110},
				}),
			),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFTableHeader(m core.Maroto) {
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 30, Green: 64, Blue: 175}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerRight := headerText
	headerRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New("Kategori", headerText)).WithStyle(headerCell),
			col.New(4).Add(text.New("Tjänst", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Pris", headerRight)).WithStyle(headerCell),
			col.New(1).Add(text.New("Antal", headerRight)).WithStyle(headerCell),
			col.New(2).Add(text.New("Summa", headerRight)).WithStyle(headerCell),
		),
	)
}

func addPDFTableRow(m core.Maroto, r ExportRow) {
	left := props.Text{Size: 8, Align: align.Left}
	right := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New(r.Category, left)),
			col.New(4).Add(text.New(r.Service, left)),
			col.New(2).Add(text.New(FormatUnitPrice(r.Price), right)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), right)),
			col.New(2).Add(text.New(FormatSEK(r.Total), right)),
		),
	)
}

func addPDFSummaryRow(m core.Maroto, label, value string, grand bool) {
	size := 9.0
	if grand {
		size = 11
	}
	style := fontstyle.Normal
	if grand {
		style = fontstyle.Bold
	}
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 243, Green: 244, Blue: 246}}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(label, props.Text{Size: size, Style: style, Align: align.Left}),
			).WithStyle(cell),
			col.New(4).Add(
				text.New(value, props.Text{Size: size, Style: style, Align: align.Right}),
			).WithStyle(cell),
		),
	)
}
