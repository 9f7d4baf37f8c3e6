package domain

import "time"

// DailyStats is one day of assistant activity
type DailyStats struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Conversations int     `json:"conversations"`
	Accuracy      float64 `json:"accuracy"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// TopIntent is a frequently detected customer intent
type TopIntent struct {
	Intent        string  `json:"intent"`
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// FailedQuery is a question the assistant could not answer
type FailedQuery struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

// AnalyticsData is the analytics snapshot
type AnalyticsData struct {
	DailyStats         []DailyStats  `json:"dailyStats"`
	TopIntents         []TopIntent   `json:"topIntents"`
	FailedQueries      []FailedQuery `json:"failedQueries"`
	OverallAccuracy    float64       `json:"overallAccuracy"`
	TotalConversations int           `json:"totalConversations"`
}

// Clone returns a deep copy
func (a AnalyticsData) Clone() AnalyticsData {
	a.DailyStats = append([]DailyStats(nil), a.DailyStats...)
	a.TopIntents = append([]TopIntent(nil), a.TopIntents...)
	a.FailedQueries = append([]FailedQuery(nil), a.FailedQueries...)
	return a
}

// AnalyticsRange limits daily stats to a date window (inclusive)
type AnalyticsRange struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// SearchedPhone is a model with its search count
type SearchedPhone struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// DashboardKPIs are the headline dashboard numbers
type DashboardKPIs struct {
	TotalProducts      int             `json:"totalProducts"`
	TotalConversations int             `json:"totalConversations"`
	AIAccuracy         float64         `json:"aiAccuracy"`
	TopSearchedPhones  []SearchedPhone `json:"topSearchedPhones"`
}

// Export formats
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// Report is an exported analytics file
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}
