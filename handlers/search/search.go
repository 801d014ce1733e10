package search

import (
	"context"
	"strconv"
	"time"

	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/services"
	"github.com/deptsearch/deptsearch-api/utils/cache"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/deptsearch/deptsearch-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxQueryRunes = 100
	defaultLimit  = 20
	maxLimit      = 100
)

// SearchHandler handles department search requests
type SearchHandler struct {
	search *services.SearchService
	db     database.Storage
	redis  *cache.RedisCache // optional
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService, db database.Storage, redis *cache.RedisCache) *SearchHandler {
	return &SearchHandler{
		search: search,
		db:     db,
		redis:  redis,
	}
}

// HandleSearch handles GET /api/v1/search?q=&page=&limit=
//
// The ranked result set is capped ahead of pagination, so page/limit slice
// at most the top results while estimated_total_count keeps the true
// match count.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	query := validation.SanitizeString(c.Query("q", ""))
	if len([]rune(query)) > maxQueryRunes {
		return response.BadRequest(c, "Query too long")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	start := time.Now()
	result := h.search.Search(query)
	duration := time.Since(start)

	h.logSearch(c, query, result, duration)

	total := int64(len(result.Departments))
	pagination := response.CalculatePagination(page, limit, total)

	offset := (page - 1) * limit
	pageSlice := []model.DepartmentRecord{}
	if offset < len(result.Departments) {
		end := offset + limit
		if end > len(result.Departments) {
			end = len(result.Departments)
		}
		pageSlice = result.Departments[offset:end]
	}

	return response.Paginated(c, fiber.Map{
		"estimated_total_count": result.EstimatedTotalCount,
		"departments":           pageSlice,
	}, pagination)
}

// logSearch records the search asynchronously; logging failure never
// affects the response.
func (h *SearchHandler) logSearch(c *fiber.Ctx, query string, result *model.SearchResponse, duration time.Duration) {
	requestID, _ := c.Locals("requestid").(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	entry := model.SearchLog{
		RequestID:      requestID,
		Query:          query,
		ProfessionMode: string(services.DetectProfessionMode(query)),
		MatchCount:     result.EstimatedTotalCount,
		ReturnedCount:  len(result.Departments),
		DurationMS:     duration.Milliseconds(),
	}

	go func() {
		_ = h.db.AddSearchLog(entry)

		if h.redis != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			key := dailyCounterKey(time.Now())
			if n, err := h.redis.Increment(ctx, key); err == nil && n == 1 {
				// First search of the day sets the key's lifetime.
				_ = h.redis.Expire(ctx, key, 48*time.Hour)
			}
		}
	}()
}

// dailyCounterKey names the per-day search counter in Redis.
func dailyCounterKey(t time.Time) string {
	return "search:count:" + t.UTC().Format("2006-01-02")
}
