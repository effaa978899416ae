// Package roster models the master attendance sheet: an ordered grid of
// cells addressed by (row, column), with row 1 holding header/date text,
// row 2 holding lecture labels and rows 3+ holding one student each.
package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet is the grid the merge engine works against. Implementations keep
// all file-format concerns (styles, number formats) to themselves so the
// engine stays decoupled from any spreadsheet library.
//
// Rows and columns are 1-based. Cell returns "" for coordinates outside
// the occupied area.
type Sheet interface {
	// Cell returns the trimmed text of a cell.
	Cell(row, col int) string
	// SetString writes text into a cell.
	SetString(row, col int, v string)
	// SetInt writes an attendance value (0 or 1) into a cell.
	SetInt(row, col int, v int)
	// SetDate writes a date into a cell.
	SetDate(row, col int, v time.Time)
	// MaxRow returns the highest occupied row index.
	MaxRow() int
	// MaxCol returns the highest occupied column index. Callers must not
	// treat this as the last meaningful column; formatting can inflate it.
	MaxCol() int
}

// ColumnFormatter is implemented by sheets that can apply lecture-column
// presentation (date format, width, attendance cell format).
type ColumnFormatter interface {
	FormatLectureColumn(col int)
}

// RowStyler is implemented by sheets that can copy row styling onto
// appended student rows.
type RowStyler interface {
	CopyRowStyle(srcRow, dstRow, maxCol int)
}

const lectureColWidth = 12

// ExcelSheet is the excelize-backed Sheet used for real workbooks.
// Write errors from the underlying library are sticky; check Err before
// serializing the workbook.
type ExcelSheet struct {
	file  *excelize.File
	name  string
	owned bool

	dateStyle int
	attStyle  int
	err       error
}

// OpenExcel loads a workbook from disk and wraps its active sheet.
func OpenExcel(path string) (*ExcelSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	s, err := WrapExcel(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// WrapExcel wraps the active sheet of an already-open workbook.
func WrapExcel(f *excelize.File) (*ExcelSheet, error) {
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	return &ExcelSheet{file: f, name: name}, nil
}

// File exposes the underlying workbook for serialization.
func (s *ExcelSheet) File() *excelize.File {
	return s.file
}

// SheetName returns the wrapped sheet's name.
func (s *ExcelSheet) SheetName() string {
	return s.name
}

// Err returns the first write error encountered, if any.
func (s *ExcelSheet) Err() error {
	return s.err
}

// Close releases the workbook if this sheet opened it.
func (s *ExcelSheet) Close() error {
	if s.owned {
		return s.file.Close()
	}
	return nil
}

func (s *ExcelSheet) setErr(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *ExcelSheet) cellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	s.setErr(err)
	return name
}

func (s *ExcelSheet) Cell(row, col int) string {
	v, err := s.file.GetCellValue(s.name, s.cellName(row, col))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func (s *ExcelSheet) SetString(row, col int, v string) {
	s.setErr(s.file.SetCellValue(s.name, s.cellName(row, col), v))
}

func (s *ExcelSheet) SetInt(row, col int, v int) {
	cell := s.cellName(row, col)
	s.setErr(s.file.SetCellValue(s.name, cell, v))
	s.setErr(s.file.SetCellStyle(s.name, cell, cell, s.attendanceStyle()))
}

func (s *ExcelSheet) SetDate(row, col int, v time.Time) {
	cell := s.cellName(row, col)
	s.setErr(s.file.SetCellValue(s.name, cell, v))
	s.setErr(s.file.SetCellStyle(s.name, cell, cell, s.lectureDateStyle()))
}

func (s *ExcelSheet) MaxRow() int {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return 0
	}
	return len(rows)
}

func (s *ExcelSheet) MaxCol() int {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return 0
	}
	max := 0
	for _, row := range rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// FormatLectureColumn applies the lecture-column presentation: column
// width and the integer attendance format for all existing student rows.
// Keeping attendance cells on the "0" format prevents Excel rendering
// them as dates or #####.
func (s *ExcelSheet) FormatLectureColumn(col int) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		s.setErr(err)
		return
	}
	s.setErr(s.file.SetColWidth(s.name, name, name, lectureColWidth))

	for r := 3; r <= s.MaxRow(); r++ {
		cell := s.cellName(r, col)
		s.setErr(s.file.SetCellStyle(s.name, cell, cell, s.attendanceStyle()))
	}
}

// CopyRowStyle copies cell styles from srcRow onto dstRow so appended
// students look like the rest of the roster.
func (s *ExcelSheet) CopyRowStyle(srcRow, dstRow, maxCol int) {
	for c := 1; c <= maxCol; c++ {
		src := s.cellName(srcRow, c)
		dst := s.cellName(dstRow, c)
		styleID, err := s.file.GetCellStyle(s.name, src)
		if err != nil {
			continue
		}
		s.setErr(s.file.SetCellStyle(s.name, dst, dst, styleID))
	}
}

func (s *ExcelSheet) lectureDateStyle() int {
	if s.dateStyle == 0 {
		format := "d-mmm" // e.g. 23-Jan
		id, err := s.file.NewStyle(&excelize.Style{
			CustomNumFmt: &format,
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
		if err != nil {
			s.setErr(err)
			return 0
		}
		s.dateStyle = id
	}
	return s.dateStyle
}

func (s *ExcelSheet) attendanceStyle() int {
	if s.attStyle == 0 {
		id, err := s.file.NewStyle(&excelize.Style{
			NumFmt:    1, // "0"
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
		if err != nil {
			s.setErr(err)
			return 0
		}
		s.attStyle = id
	}
	return s.attStyle
}

// MemorySheet is an in-memory Sheet for tests and dry runs. It carries no
// formatting; dates are stored as "2-Jan" text.
type MemorySheet struct {
	rows [][]string
}

// NewMemorySheet builds a sheet from literal rows.
func NewMemorySheet(rows [][]string) *MemorySheet {
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = append([]string(nil), r...)
	}
	return &MemorySheet{rows: grid}
}

func (s *MemorySheet) grow(row, col int) {
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	for len(s.rows[row-1]) < col {
		s.rows[row-1] = append(s.rows[row-1], "")
	}
}

func (s *MemorySheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

func (s *MemorySheet) SetString(row, col int, v string) {
	s.grow(row, col)
	s.rows[row-1][col-1] = v
}

func (s *MemorySheet) SetInt(row, col int, v int) {
	s.SetString(row, col, fmt.Sprintf("%d", v))
}

func (s *MemorySheet) SetDate(row, col int, v time.Time) {
	s.SetString(row, col, v.Format("2-Jan"))
}

func (s *MemorySheet) MaxRow() int {
	return len(s.rows)
}

func (s *MemorySheet) MaxCol() int {
	max := 0
	for _, r := range s.rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}
