package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/xuri/excelize/v2"
)

const reportBasename = "analytics-report"

var dailyHeader = []string{"Date", "Conversations", "Accuracy", "AvgConfidence"}

func exportCSV(data *domain.AnalyticsData) (*domain.Report, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(dailyHeader); err != nil {
		return nil, err
	}
	for _, d := range data.DailyStats {
		row := []string{
			d.Date,
			strconv.Itoa(d.Conversations),
			strconv.FormatFloat(d.Accuracy, 'f', 2, 64),
			strconv.FormatFloat(d.AvgConfidence, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &domain.Report{
		Filename:    reportBasename + ".csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// Sheet names of the xlsx report
const (
	sheetDaily   = "Daily"
	sheetIntents = "Intents"
	sheetFailed  = "Failed Queries"
)

func exportXLSX(data *domain.AnalyticsData) (*domain.Report, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := map[string][][]any{
		sheetDaily:   {toAny(dailyHeader)},
		sheetIntents: {{"Intent", "Count", "AvgConfidence"}},
		sheetFailed:  {{"ID", "Query", "Timestamp", "Reason"}},
	}
	for _, d := range data.DailyStats {
		rows[sheetDaily] = append(rows[sheetDaily], []any{d.Date, d.Conversations, d.Accuracy, d.AvgConfidence})
	}
	for _, in := range data.TopIntents {
		rows[sheetIntents] = append(rows[sheetIntents], []any{in.Intent, in.Count, in.AvgConfidence})
	}
	for _, q := range data.FailedQueries {
		rows[sheetFailed] = append(rows[sheetFailed], []any{q.ID, q.Query, q.Timestamp.Format("2006-01-02 15:04:05"), q.Reason})
	}

	for i, sheet := range []string{sheetDaily, sheetIntents, sheetFailed} {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		for r, row := range rows[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &domain.Report{
		Filename:    reportBasename + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
