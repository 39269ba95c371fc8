package infra

// pdf.go — money-flow report generation using go-pdf/fpdf.
// Produces an A4 statement per gerente: entry table (date, kind, category,
// amount, signed effect) followed by the outstanding liability line.
// The output file is saved to storagePath/fluxo_{gerente}_{dias}d.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GerarRelatorioPDF writes the money-flow statement for one gerente.
// Returns the absolute path to the generated file.
func GerarRelatorioPDF(gerente *model.Gerente, lancamentos []model.Lancamento, passivo decimal.Decimal, dias int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	slug := strings.ReplaceAll(strings.ToLower(gerente.Nome), " ", "_")
	fileName := fmt.Sprintf("fluxo_%s_%dd.pdf", slug, dias)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cabra da Peste — Fluxo Financeiro", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Gerente: %s  (%s)", gerente.Nome, gerente.Funcao), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Periodo: ultimos %d dias", dias), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Table header ─────────────────────────────────────────────────────────
	colData := contentW * 0.17
	colTipo := contentW * 0.25
	colCat := contentW * 0.22
	colValor := contentW * 0.18
	colEfeito := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colData, 6, "Data", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colTipo, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCat, 6, "Categoria", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colValor, 6, "Valor", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colEfeito, 6, "Efeito", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for i := range lancamentos {
		l := &lancamentos[i]
		pdf.CellFormat(colData, 5, l.CriadoEm.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colTipo, 5, string(l.Tipo), "", 0, "L", false, 0, "")
		pdf.CellFormat(colCat, 5, string(l.Categoria), "", 0, "L", false, 0, "")
		pdf.CellFormat(colValor, 5, "$"+l.Valor.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colEfeito, 5, "$"+l.Efeito().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Liability ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colData+colTipo+colCat, 7, "Passivo em aberto:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colValor+colEfeito, 7, "$"+passivo.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
