package controllers

import (
	"strconv"
	"time"

	"go-restaurant-operations/helpers"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

var validate = validator.New()

func respondError(c *gin.Context, appErr *helpers.AppError) {
	c.JSON(helpers.HTTPStatus(appErr), gin.H{"error": appErr.Message, "kind": appErr.Kind})
}

// clampLimit parses a result-size limit query value and bounds it to
// [1, max], falling back to def when absent or unparsable.
func clampLimit(raw string, def int64, max int64) int64 {
	if raw == "" {
		return def
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// monthStart returns the first instant of t's calendar month in UTC, the
// window the monthlyOrders quota counts against.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// storageError separates transient infrastructure failures, which a client
// may retry with backoff, from everything else.
func storageError(err error) *helpers.AppError {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return helpers.NewAppError(helpers.ErrStorageUnavailable, "storage unreachable, retry shortly")
	}
	return helpers.NewAppError(helpers.ErrInternal, "unexpected storage failure")
}
