package excel

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

const (
	reportSheetName = "Integration"
	// ContentType is the media type of the generated workbooks
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var reportColumns = []string{"section", "id", "status", "message"}

// ReportService renders integration reports as Excel workbooks
type ReportService struct{}

// NewReportService creates a new report service instance
func NewReportService() *ReportService {
	return &ReportService{}
}

// WriteIntegrationResult writes one row per result record, campaign first,
// then nomenclatures and questionnaire models in report order
func (s *ReportService) WriteIntegrationResult(w io.Writer, result *models.IntegrationResult) error {
	if result == nil {
		return fmt.Errorf("no integration result to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	styles, err := newStatusStyles(f)
	if err != nil {
		return err
	}

	for i, col := range reportColumns {
		f.SetCellValue(reportSheetName, fmt.Sprintf("%s1", columnToLetter(i+1)), col)
	}
	if styles.header != 0 {
		f.SetCellStyle(reportSheetName, "A1", columnToLetter(len(reportColumns))+strconv.Itoa(1), styles.header)
	}

	for i, col := range reportColumns {
		width := 20.0
		switch col {
		case "id":
			width = 30.0
		case "status":
			width = 12.0
		case "message":
			width = 70.0
		}
		colLetter := columnToLetter(i + 1)
		f.SetColWidth(reportSheetName, colLetter, colLetter, width)
	}

	rowNum := 2
	writeRow := func(section string, unit models.IntegrationResultUnit) {
		f.SetCellValue(reportSheetName, fmt.Sprintf("A%d", rowNum), section)
		f.SetCellValue(reportSheetName, fmt.Sprintf("B%d", rowNum), unit.ID)
		f.SetCellValue(reportSheetName, fmt.Sprintf("C%d", rowNum), string(unit.Status))
		if unit.Message != nil {
			f.SetCellValue(reportSheetName, fmt.Sprintf("D%d", rowNum), *unit.Message)
		}
		if style := styles.forStatus(unit.Status); style != 0 {
			f.SetCellStyle(reportSheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", columnToLetter(len(reportColumns)), rowNum), style)
		}
		rowNum++
	}

	if result.Campaign != nil {
		writeRow("campaign", *result.Campaign)
	}
	for _, unit := range result.Nomenclatures {
		writeRow("nomenclatures", unit)
	}
	for _, unit := range result.QuestionnaireModels {
		writeRow("questionnaireModels", unit)
	}
	if rowNum == 2 {
		f.SetCellValue(reportSheetName, "A2", "nothing was integrated")
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

type statusStyles struct {
	header  int
	created int
	updated int
	failed  int
}

func (s statusStyles) forStatus(status models.IntegrationStatus) int {
	switch status {
	case models.IntegrationCreated:
		return s.created
	case models.IntegrationUpdated:
		return s.updated
	case models.IntegrationError:
		return s.failed
	}
	return 0
}

func newStatusStyles(f *excelize.File) (statusStyles, error) {
	fill := func(color string) *excelize.Style {
		return &excelize.Style{
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{color},
				Pattern: 1,
			},
		}
	}

	var styles statusStyles
	var err error
	if styles.created, err = f.NewStyle(fill("C6EFCE")); err != nil { // Green
		return styles, fmt.Errorf("failed to create style: %w", err)
	}
	if styles.updated, err = f.NewStyle(fill("B4C6E7")); err != nil { // Light blue
		return styles, fmt.Errorf("failed to create style: %w", err)
	}
	if styles.failed, err = f.NewStyle(fill("D9D9D9")); err != nil { // Gray
		return styles, fmt.Errorf("failed to create style: %w", err)
	}
	styles.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, fmt.Errorf("failed to create header style: %w", err)
	}
	return styles, nil
}

// Helper function to convert column number to Excel column letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
