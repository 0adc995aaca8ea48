package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

const (
	TasksSheet       = "Tasks"
	SheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetFileName    = "ai-implementation-tasks.xlsx"
)

var taskHeaders = []string{"Date", "Time", "Title", "Category", "ID"}

// TaskSheet writes the task list as a single-sheet workbook.
func TaskSheet(tasks []domain.ScheduledTask) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TasksSheet); err != nil {
		f.Close()
		return nil, err
	}
	for i, h := range taskHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(TasksSheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(TasksSheet, 1, 1, headerStyle)

	for i, t := range tasks {
		row := i + 2
		f.SetCellValue(TasksSheet, fmt.Sprintf("A%d", row), t.Date)
		f.SetCellValue(TasksSheet, fmt.Sprintf("B%d", row), t.Time)
		f.SetCellValue(TasksSheet, fmt.Sprintf("C%d", row), t.Title)
		f.SetCellValue(TasksSheet, fmt.Sprintf("D%d", row), t.Category)
		f.SetCellValue(TasksSheet, fmt.Sprintf("E%d", row), t.ID)
	}
	f.SetColWidth(TasksSheet, "A", "B", 12)
	f.SetColWidth(TasksSheet, "C", "C", 55)
	f.SetColWidth(TasksSheet, "D", "D", 26)
	f.SetColWidth(TasksSheet, "E", "E", 38)
	return f, nil
}

// TaskSheetBytes renders the workbook to xlsx bytes.
func TaskSheetBytes(tasks []domain.ScheduledTask) ([]byte, error) {
	f, err := TaskSheet(tasks)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
