package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"aiowedding/internal/models"
)

// Generator renders operator-facing reports to disk.
type Generator interface {
	GeneratePlatformReport(summary models.PlatformSummary, generatedAt time.Time) (string, error)
}

type ReportGenerator struct {
	RootDir string
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ReportGenerator) GeneratePlatformReport(summary models.PlatformSummary, generatedAt time.Time) (string, error) {
	filename := fmt.Sprintf("platform_report_%s.pdf", generatedAt.Format("20060102_150405"))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 12, "All in One Wedding - Platform Report")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")))
	doc.Ln(12)

	rows := []struct {
		label string
		value int
	}{
		{"Registered couples", summary.Couples},
		{"Registered vendors", summary.Vendors},
		{"Active advertisements", summary.Advertisements},
		{"Couples joined (last 30 days)", summary.RecentCouples},
		{"Vendors joined (last 30 days)", summary.RecentVendors},
	}
	doc.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		doc.CellFormat(120, 10, row.label, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 10, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}

	if err := doc.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write report pdf: %w", err)
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	return filepath.Join(dir, filepath.Base(filename)), nil
}
