package dto

import "time"

// CategoryCount is one bar of a category histogram.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// TrendPoint is one monthly bucket of a creation trend, keyed YYYY-MM.
type TrendPoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// ActionCount is one slice of the activity breakdown.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// AnalyticsResponse feeds the admin dashboard charts.
type AnalyticsResponse struct {
	TotalProjects        int64           `json:"total_projects"`
	TotalServices        int64           `json:"total_services"`
	ProjectsByCategory   []CategoryCount `json:"projects_by_category"`
	ServicesByCategory   []CategoryCount `json:"services_by_category"`
	TopProjectCategories []CategoryCount `json:"top_project_categories"`
	TopServiceCategories []CategoryCount `json:"top_service_categories"`
	ProjectTrend         []TrendPoint    `json:"project_trend"`
	ServiceTrend         []TrendPoint    `json:"service_trend"`
	ProjectGrowth        float64         `json:"project_growth"`
	ServiceGrowth        float64         `json:"service_growth"`
	ActivityBreakdown    []ActionCount   `json:"activity_breakdown"`
	GeneratedAt          time.Time       `json:"generated_at"`
	CacheHit             bool            `json:"cache_hit"`
}

// AnalyticsFilter narrows the analytics window.
type AnalyticsFilter struct {
	Category string
	Action   string
	From     *time.Time
	To       *time.Time
}
