package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Paginate runs the query with page/limit taken from the request and fills
// dest with one page of results.
func Paginate(c *fiber.Ctx, tx *gorm.DB, dest interface{}) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	return tx.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
}
