package export

import (
	"fmt"
	"io"
	"time"

	"github.com/attendease/attendease-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	AttendanceSheetName = "Attendance Records"
	AttendanceFileName  = "attendance_records.xlsx"
	ContentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	notAvailable = "N/A"
)

var attendanceHeaders = []string{
	"Employee ID", "Employee Name", "Date", "Check-In", "Check-Out", "Total Hours", "Status", "Remarks",
}

// WriteAttendanceXLSX renders records as a single-sheet workbook.
func WriteAttendanceXLSX(w io.Writer, records []attendance.AttendanceResponse) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet instead of adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), AttendanceSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(AttendanceSheetName, "A1", &attendanceHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastColumn, _ := excelize.ColumnNumberToName(len(attendanceHeaders))
	if err := f.SetCellStyle(AttendanceSheetName, "A1", lastColumn+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.EmployeeID,
			r.EmployeeName,
			r.Date,
			DisplayTime(r.CheckInTime),
			DisplayTime(r.CheckOutTime),
			orNotAvailable(r.TotalHours),
			string(r.Status),
			orNotAvailable(r.Remarks),
		}
		if err := f.SetSheetRow(AttendanceSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(AttendanceSheetName, "A", lastColumn, 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// DisplayTime turns a stored HH:mm:ss into "3:04 PM". Missing values show
// as N/A; unparsable ones are passed through.
func DisplayTime(clock *string) string {
	if clock == nil || *clock == "" {
		return notAvailable
	}
	t, err := time.Parse(attendance.TimeLayout, *clock)
	if err != nil {
		return *clock
	}
	return t.Format("3:04 PM")
}

func orNotAvailable(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}
