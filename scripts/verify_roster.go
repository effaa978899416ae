//go:build ignore

// Quick sanity check for a merged roster workbook. Prints the header
// rows, per-lecture presence counts, and flags rows with a blank or
// malformed email. Run with: go run scripts/verify_roster.go <file.xlsx>
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	filename := "output/master_UPDATED.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== ROSTER CHECK: %s ===\n", filename)
	fmt.Printf("Sheet: %s, rows: %d\n\n", sheetName, len(rows))

	if len(rows) < 2 {
		log.Fatal("Workbook has no header rows")
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	// Header rows: dates on row 1, labels on row 2
	emailCol := -1
	var lectureCols []int
	for i := range rows[1] {
		label := strings.TrimSpace(cell(rows[1], i))
		if strings.EqualFold(strings.TrimSpace(cell(rows[0], i)), "email") {
			emailCol = i
		}
		if strings.HasPrefix(strings.ToLower(label), "lecture ") {
			lectureCols = append(lectureCols, i)
			fmt.Printf("Column %s: %q (date %q)\n",
				columnName(i), label, cell(rows[0], i))
		}
	}
	if emailCol < 0 {
		log.Fatal("No Email header found on row 1")
	}
	fmt.Printf("\nEmail column: %s, lecture columns: %d\n\n", columnName(emailCol), len(lectureCols))

	// Per-lecture tallies over the student rows
	for _, lc := range lectureCols {
		present, zero, other, blank := 0, 0, 0, 0
		for r := 2; r < len(rows); r++ {
			if strings.TrimSpace(cell(rows[r], emailCol)) == "" {
				continue
			}
			switch strings.TrimSpace(cell(rows[r], lc)) {
			case "1":
				present++
			case "0":
				zero++
			case "":
				blank++
			default:
				other++
			}
		}
		fmt.Printf("%-12s present=%d absent=%d blank=%d annotated=%d\n",
			cell(rows[1], lc), present, zero, blank, other)
	}

	// Flag suspicious student rows
	fmt.Println()
	bad := 0
	for r := 2; r < len(rows); r++ {
		email := strings.TrimSpace(cell(rows[r], emailCol))
		if email == "" {
			continue
		}
		if !strings.Contains(email, "@") {
			fmt.Printf("Row %d: malformed email %q\n", r+1, email)
			bad++
		}
		if email != strings.ToLower(email) {
			fmt.Printf("Row %d: email not lowercased: %q\n", r+1, email)
			bad++
		}
	}
	if bad == 0 {
		fmt.Println("All student emails look clean")
	}
}

func columnName(i int) string {
	name, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		return fmt.Sprintf("#%d", i+1)
	}
	return name
}
