package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/hiring-assistant/internal/models"
)

const (
	rankingSheet  = "Ranking"
	criteriaSheet = "Criteria"
)

var rankingHeaders = []string{"Rank", "Candidate", "Final Score", "AI Score", "Years Experience", "Skills", "Explanation"}

// ExportRanking renders ranked candidates as an xlsx workbook.
func ExportRanking(ranked []models.RankedCandidate, jobSkills []string, preferredYears float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(criteriaSheet); err != nil {
		return nil, fmt.Errorf("failed to create criteria sheet: %w", err)
	}

	if err := writeRankingSheet(f, ranked); err != nil {
		return nil, fmt.Errorf("failed to write ranking sheet: %w", err)
	}
	if err := writeCriteriaSheet(f, jobSkills, preferredYears, len(ranked)); err != nil {
		return nil, fmt.Errorf("failed to write criteria sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRankingSheet(f *excelize.File, ranked []models.RankedCandidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, header := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rankingSheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(rankingSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	for i, c := range ranked {
		row := i + 2
		values := []any{i + 1, c.CandidateID, c.FinalScore, c.AIScore, c.YearsExperience, strings.Join(c.ResumeSkills, ", "), c.Explanation}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(rankingSheet, cell, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(rankingSheet, "A", "A", 8)
	_ = f.SetColWidth(rankingSheet, "B", "E", 18)
	_ = f.SetColWidth(rankingSheet, "F", "F", 40)
	_ = f.SetColWidth(rankingSheet, "G", "G", 80)
	return nil
}

func writeCriteriaSheet(f *excelize.File, jobSkills []string, preferredYears float64, total int) error {
	rows := [][]any{
		{"Job Skills", strings.Join(jobSkills, ", ")},
		{"Preferred Years", preferredYears},
		{"Candidates Ranked", total},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(criteriaSheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(criteriaSheet, "A", "A", 20)
	_ = f.SetColWidth(criteriaSheet, "B", "B", 60)
	return nil
}
