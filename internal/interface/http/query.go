package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

// parseFilter reads keyword, category and completed. Absent or empty values leave the
// corresponding filter nil.
func parseFilter(c *gin.Context) (entity.TodoCardFilter, map[string]string) {
	var (
		f    entity.TodoCardFilter
		errs = map[string]string{}
	)
	if kw := c.Query("keyword"); kw != "" {
		f.Keyword = &kw
	}
	if raw := c.Query("category"); raw != "" {
		cat, err := entity.ParseCategory(raw)
		if err != nil {
			errs["category"] = "must be one of: " + categoryList()
		} else {
			f.Category = &cat
		}
	}
	if raw := c.Query("completed"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs["completed"] = "must be true or false"
		} else {
			f.Completed = &b
		}
	}
	return f, errs
}

// parsePage reads zero-based page and size; size defaults to def and is capped at max.
func parsePage(c *gin.Context, def, max int, errs map[string]string) entity.PageRequest {
	req := entity.PageRequest{Page: 0, Size: parseSize(c, def, max, errs)}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs["page"] = "must be greater than or equal to 0"
		} else {
			req.Page = n
		}
	}
	return req
}

// parseSize reads a positive size query value, defaulting to def and capped at max.
func parseSize(c *gin.Context, def, max int, errs map[string]string) int {
	size := def
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errs["size"] = "must be greater than 0"
		} else {
			size = n
		}
	}
	if max > 0 && size > max {
		size = max
	}
	return size
}

func categoryList() string {
	names := make([]string, 0, len(entity.Categories))
	for _, c := range entity.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
