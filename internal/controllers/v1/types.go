package v1

import (
	"github.com/budgetwise/backend/internal/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// defaultLimit is the number of resources returned by list endpoints by default.
const defaultLimit = 100

type URIID struct {
	ID uuid.UUID `uri:"id"` // The ID of the resource
}

type URIMonth struct {
	Month string `uri:"month"` // The month in YYYY-MM format
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"0"`  // The offset for the first record returned
	Limit  int   `json:"limit" example:"100"` // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// limit returns the limit that was requested or the default limit
// if the limit query parameter is not set.
func limit(setFields []string, requested int) int {
	if slices.Contains(setFields, "Limit") {
		return requested
	}
	return defaultLimit
}

// paginate runs the query with offset and limit and counts all matching rows.
// Associations are only preloaded for the returned rows.
func paginate[T any](q *gorm.DB, offset uint, limit int, preloads ...string) ([]T, Pagination, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	var model T
	if err := q.Model(&model).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	items := make([]T, 0)
	for _, association := range preloads {
		q = q.Preload(association)
	}

	if err := q.Offset(int(offset)).Limit(limit).Find(&items).Error; err != nil {
		return nil, Pagination{}, err
	}

	return items, Pagination{
		Count:  len(items),
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}, nil
}

// paginateSlice applies offset and limit to resources that are already loaded.
// A negative limit returns all resources after the offset.
func paginateSlice[T any](items []T, offset uint, limit int) ([]T, Pagination) {
	total := len(items)

	start := int(offset)
	if start > total {
		start = total
	}

	end := total
	if limit >= 0 && start+limit < total {
		end = start + limit
	}

	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	return page, Pagination{
		Count:  len(page),
		Offset: offset,
		Limit:  limit,
		Total:  int64(total),
	}
}
