package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
	"github.com/diillson/bedrock-profiles-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// auditHeader são as colunas fixas do CSV de auditoria.
var auditHeader = []string{"Profile Name", "Profile ARN", "Tags"}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Audit sink ---

// GenerateSinkPath builds the CSV path used by one run. With a report name the same file is
// reused across runs, which then only appends rows.
func (r *ExportRepositoryImpl) GenerateSinkPath(prefix, dir, reportName string) (string, error) {
	if reportName != "" {
		dir, err := ensureDir(dir)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, strings.TrimSuffix(reportName, ".csv")+".csv"), nil
	}
	return r.generateFilename(prefix, dir, "csv")
}

// AppendAuditRecords appends the successful outcomes to sinkPath. On error the count is the
// number of rows handed to the CSV writer before the failure.
func (r *ExportRepositoryImpl) AppendAuditRecords(outcomes []entity.OperationOutcome, sinkPath string) (int, error) {
	records := make([]entity.AuditRecord, 0, len(outcomes))
	for _, o := range outcomes {
		if rec, ok := entity.NewAuditRecord(o); ok {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return 0, nil
	}

	// O cabeçalho só é escrito se o arquivo não existia ou está vazio
	needsHeader := true
	if fi, err := os.Stat(sinkPath); err == nil && fi.Size() > 0 {
		needsHeader = false
	}

	file, err := os.OpenFile(sinkPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("error opening audit CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if needsHeader {
		if err := writer.Write(auditHeader); err != nil {
			return 0, fmt.Errorf("error writing CSV header: %w", err)
		}
	}

	written := 0
	for _, rec := range records {
		if err := writer.Write(rec.Row()); err != nil {
			return written, fmt.Errorf("error writing CSV record: %w", err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, fmt.Errorf("error flushing audit CSV file: %w", err)
	}
	return written, nil
}

// --- Run report ---

type outcomeView struct {
	Name   string `json:"name"`
	Kind   string `json:"source_kind"`
	Source string `json:"source_ref"`
	Result string `json:"result"`
	Arn    string `json:"arn,omitempty"`
	Tags   string `json:"tags,omitempty"`
	Error  string `json:"error,omitempty"`
}

type summaryView struct {
	GeneratedAt string        `json:"generated_at"`
	Created     int           `json:"created"`
	Tagged      int           `json:"tagged"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Outcomes    []outcomeView `json:"outcomes"`
}

func (r *ExportRepositoryImpl) toView(summary entity.BatchSummary) summaryView {
	view := summaryView{
		GeneratedAt: r.now().UTC().Format(time.RFC3339),
		Created:     summary.Created,
		Tagged:      summary.Tagged,
		Skipped:     summary.Skipped,
		Failed:      summary.Failed,
		Outcomes:    make([]outcomeView, 0, len(summary.Outcomes)),
	}
	for _, o := range summary.Outcomes {
		view.Outcomes = append(view.Outcomes, outcomeView{
			Name:   o.Name(),
			Kind:   o.Request.SourceKind.String(),
			Source: o.Request.SourceRef,
			Result: string(o.Result),
			Arn:    o.Arn,
			Tags:   o.Request.Tags.Summary(),
			Error:  o.ErrorDetail(),
		})
	}
	return view
}

func (r *ExportRepositoryImpl) ExportSummaryToJSON(summary entity.BatchSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.toView(summary)); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToPDF(summary entity.BatchSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	view := r.toView(summary)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Inference Profile Run Report"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	counts := fmt.Sprintf("  Created: %d   Tagged: %d   Skipped: %d   Failed: %d",
		view.Created, view.Tagged, view.Skipped, view.Failed)
	pdf.CellFormat(0, 8, tr(counts), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	for _, o := range view.Outcomes {
		pdf.SetFont("Arial", "B", 11)
		if o.Result == string(entity.ResultFailed) {
			pdf.SetTextColor(192, 0, 0)
		} else {
			pdf.SetTextColor(0, 128, 0)
		}
		pdf.Cell(0, 7, tr(fmt.Sprintf("%s  [%s]", o.Name, o.Result)))
		pdf.Ln(6)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		lines := []string{fmt.Sprintf("Source (%s): %s", o.Kind, o.Source)}
		if o.Arn != "" {
			lines = append(lines, "ARN: "+o.Arn)
		}
		if o.Tags != "" {
			lines = append(lines, "Tags: "+o.Tags)
		}
		if o.Error != "" {
			lines = append(lines, "Error: "+o.Error)
		}
		pdf.MultiCell(190, 5, tr(strings.Join(lines, "\n")), "", "L", false)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY()+2, pdf.GetX()+190, pdf.GetY()+2)
		pdf.Ln(5)
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Generated by bedrock-profiles | %s", r.now().Format("2006-01-02"))), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	dir, err := ensureDir(dir)
	if err != nil {
		return "", err
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func ensureDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return dir, nil
}
