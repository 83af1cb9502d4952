package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zagros-construction/zagros-api/internal/catalog"
	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/models"
	"github.com/zagros-construction/zagros-api/internal/repository"
)

const topCategoryLimit = 3

// AnalyticsService aggregates the read-side numbers behind the admin
// dashboard charts.
type AnalyticsService interface {
	GetSummary(ctx context.Context, filter dto.AnalyticsFilter) (dto.AnalyticsResponse, error)
	ExportCSV(ctx context.Context, filter dto.AnalyticsFilter) ([]byte, error)
}

type analyticsService struct {
	projects repository.ProjectRepository
	services repository.ServiceRepository
	activity repository.ActivityLogRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAnalyticsService constructs the analytics service. The cache client may
// be nil, which disables summary caching.
func NewAnalyticsService(
	projects repository.ProjectRepository,
	services repository.ServiceRepository,
	activity repository.ActivityLogRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsService{
		projects: projects,
		services: services,
		activity: activity,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
		now:      time.Now,
	}
}

func (s *analyticsService) GetSummary(ctx context.Context, filter dto.AnalyticsFilter) (dto.AnalyticsResponse, error) {
	const cacheKey = "analytics:summary"
	tracer := otel.Tracer("github.com/zagros-construction/zagros-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.aggregate")
	defer span.End()

	// Only the unfiltered summary is cached; filtered views are cheap
	// one-off reads.
	cacheable := s.cache != nil && filter == (dto.AnalyticsFilter{})

	if cacheable {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	recordFilter := repository.RecordFilter{
		Category: filter.Category,
		From:     filter.From,
		To:       filter.To,
	}

	projects, _, err := s.projects.List(ctx, recordFilter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_projects_failed")
		return dto.AnalyticsResponse{}, err
	}

	services, _, err := s.services.List(ctx, recordFilter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_services_failed")
		return dto.AnalyticsResponse{}, err
	}

	activity, _, err := s.activity.List(ctx, repository.ActivityLogFilter{
		Action: filter.Action,
		From:   filter.From,
		To:     filter.To,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_activity_failed")
		return dto.AnalyticsResponse{}, err
	}

	summary := s.buildSummary(projects, services, activity)
	span.SetAttributes(
		attribute.Int64("analytics.project_count", summary.TotalProjects),
		attribute.Int64("analytics.service_count", summary.TotalServices),
	)

	if cacheable {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *analyticsService) ExportCSV(ctx context.Context, filter dto.AnalyticsFilter) ([]byte, error) {
	summary, err := s.GetSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(summary.ProjectsByCategory)+len(summary.ServicesByCategory))
	for _, row := range summary.ProjectsByCategory {
		rows = append(rows, []string{"Project", row.Category, strconv.FormatInt(row.Count, 10)})
	}
	for _, row := range summary.ServicesByCategory {
		rows = append(rows, []string{"Service", row.Category, strconv.FormatInt(row.Count, 10)})
	}

	return writeCSV([]string{"Type", "Category", "Count"}, rows)
}

func (s *analyticsService) buildSummary(projects []models.Project, services []models.Service, activity []models.ActivityLog) dto.AnalyticsResponse {
	projectFields := make([]catalog.Fields, 0, len(projects))
	for _, p := range projects {
		projectFields = append(projectFields, catalog.Fields{Category: p.Category, CreatedAt: p.CreatedAt})
	}
	serviceFields := make([]catalog.Fields, 0, len(services))
	for _, sv := range services {
		serviceFields = append(serviceFields, catalog.Fields{Category: sv.Category, CreatedAt: sv.CreatedAt})
	}

	projectHistogram := categoryHistogram(projectFields)
	serviceHistogram := categoryHistogram(serviceFields)
	projectTrend := monthlyTrend(projectFields)
	serviceTrend := monthlyTrend(serviceFields)

	return dto.AnalyticsResponse{
		TotalProjects:        int64(len(projects)),
		TotalServices:        int64(len(services)),
		ProjectsByCategory:   projectHistogram,
		ServicesByCategory:   serviceHistogram,
		TopProjectCategories: topCategories(projectHistogram, topCategoryLimit),
		TopServiceCategories: topCategories(serviceHistogram, topCategoryLimit),
		ProjectTrend:         projectTrend,
		ServiceTrend:         serviceTrend,
		ProjectGrowth:        growthRate(projectTrend),
		ServiceGrowth:        growthRate(serviceTrend),
		ActivityBreakdown:    activityBreakdown(activity),
		GeneratedAt:          s.now(),
		CacheHit:             false,
	}
}

// categoryHistogram counts records per category, categories ordered by first
// occurrence. Records with an empty category are excluded from the histogram
// (but still counted in totals and trends).
func categoryHistogram(records []catalog.Fields) []dto.CategoryCount {
	counts := map[string]int64{}
	order := []string{}
	for _, record := range records {
		if record.Category == "" {
			continue
		}
		if _, seen := counts[record.Category]; !seen {
			order = append(order, record.Category)
		}
		counts[record.Category]++
	}

	histogram := make([]dto.CategoryCount, 0, len(order))
	for _, category := range order {
		histogram = append(histogram, dto.CategoryCount{Category: category, Count: counts[category]})
	}
	return histogram
}

// topCategories returns the n largest histogram entries, count descending,
// ties kept in first-occurrence order.
func topCategories(histogram []dto.CategoryCount, n int) []dto.CategoryCount {
	top := append([]dto.CategoryCount(nil), histogram...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// monthlyTrend buckets records by creation month (YYYY-MM), sorted ascending.
// Every record carries a creation timestamp, so the bucket counts sum to the
// record count.
func monthlyTrend(records []catalog.Fields) []dto.TrendPoint {
	counts := map[string]int64{}
	for _, record := range records {
		counts[record.CreatedAt.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]dto.TrendPoint, 0, len(months))
	for _, month := range months {
		trend = append(trend, dto.TrendPoint{Month: month, Count: counts[month]})
	}
	return trend
}

// growthRate is the month-over-month change between the last two buckets, in
// percent. Fewer than two buckets yields 0; a zero previous bucket yields 100
// when the last is nonzero and 0 otherwise.
func growthRate(trend []dto.TrendPoint) float64 {
	if len(trend) < 2 {
		return 0
	}
	last := trend[len(trend)-1].Count
	prev := trend[len(trend)-2].Count
	if prev == 0 {
		if last > 0 {
			return 100
		}
		return 0
	}
	return float64(last-prev) / float64(prev) * 100
}

// activityBreakdown counts audit entries per action kind, in fixed order.
func activityBreakdown(activity []models.ActivityLog) []dto.ActionCount {
	actions := []string{models.ActionAdd, models.ActionUpdate, models.ActionDelete, models.ActionBulkDelete}
	counts := map[string]int64{}
	for _, entry := range activity {
		counts[entry.Action]++
	}

	breakdown := make([]dto.ActionCount, 0, len(actions))
	for _, action := range actions {
		breakdown = append(breakdown, dto.ActionCount{Action: action, Count: counts[action]})
	}
	return breakdown
}
