package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultSize is the default number of items per page
const DefaultSize = 20

// MaxSize is the maximum number of items per page
const MaxSize = 100

// Params represents normalized pagination parameters
type Params struct {
	Page   int `json:"page"`
	Size   int `json:"size"`
	Offset int `json:"-"`
}

// Meta is the pagination block returned alongside list data
type Meta struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

// Normalize clamps raw page/size values into valid ranges and derives the
// offset. Page floors at 1, size is clamped to [1, MaxSize] with DefaultSize
// for missing/zero input.
func Normalize(page, size int) *Params {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return &Params{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// GetParams extracts pagination parameters from the request query
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))
	return Normalize(page, size)
}

// GetMeta calculates pagination metadata. TotalPages floors at 1 so an empty
// result set still reports a single page.
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int(total) / params.Size
	if int(total)%params.Size > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return &Meta{
		Page:       params.Page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
