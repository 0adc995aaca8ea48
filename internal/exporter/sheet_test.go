package exporter

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

func TestTaskSheetBytes(t *testing.T) {
	tasks := []domain.ScheduledTask{
		{ID: "t1", Title: "Kickoff", Date: "2024-01-10", Time: "09:00", Category: "General"},
		{ID: "t2", Title: "Review", Date: "2024-01-10", Time: "14:00", Category: "General"},
	}
	data, err := TaskSheetBytes(tasks)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(TasksSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][2] != "Title" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][1] != "14:00" || rows[2][2] != "Review" || rows[2][4] != "t2" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}
