package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet column headers as they appear in the source workbooks.
const (
	colCustomerID     = "customer id"
	colFirstName      = "first name"
	colLastName       = "last name"
	colPhoneNumber    = "phone number"
	colAge            = "age"
	colMonthlySalary  = "monthly salary"
	colApprovedLimit  = "approved limit"
	colCurrentDebt    = "current debt"
	colLoanID         = "loan id"
	colLoanAmount     = "loan amount"
	colTenure         = "tenure"
	colInterestRate   = "interest rate"
	colMonthlyPayment = "monthly payment"
	colEMIsOnTime     = "emis paid on time"
	colStartDate      = "date of approval"
	colEndDate        = "end date"
)

// sheetRow is one data row keyed by lower-cased header name.
type sheetRow map[string]string

// readSheet loads the first sheet of an xlsx workbook into header-keyed rows.
func readSheet(path string) ([]sheetRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]sheetRow, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(sheetRow, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(raw) {
				continue
			}
			row[header] = strings.TrimSpace(raw[i])
		}
		out = append(out, row)
	}
	return out, nil
}

func (r sheetRow) id(key string) int64 {
	// Spreadsheet numerics may surface as "301.0".
	f, err := strconv.ParseFloat(r[key], 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func (r sheetRow) text(key string) string {
	return r[key]
}

func (r sheetRow) integer(key string) int {
	return int(r.id(key))
}

func (r sheetRow) amount(key string) decimal.Decimal {
	d, err := decimal.NewFromString(r[key])
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01-02-06",
	"02-Jan-06",
}

func (r sheetRow) date(key string) time.Time {
	value := r[key]
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
