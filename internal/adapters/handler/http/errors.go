package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/export"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
	"github.com/bossygit/vibes-arc-sub000/internal/core/workers"
)

var errInvalidID = errors.New("invalid id")

var badRequestErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrInvalidHabitType,
	domain.ErrInvalidTotalDays,
	domain.ErrInvalidStartDay,
	domain.ErrDayOutOfRange,
	domain.ErrInvalidIdentityRef,
	domain.ErrIdentityNameEmpty,
	domain.ErrIdentityNameTooLong,
	domain.ErrIdentityDescTooLong,
	domain.ErrInvalidColor,
	domain.ErrEmptyBackup,
	export.ErrInvalidFormat,
	export.ErrUnknownTable,
	workers.ErrUnknownExportKind,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound), errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIdentityExists):
		return http.StatusConflict
	case errors.Is(err, workers.ErrQueueFull):
		return http.StatusServiceUnavailable
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err to a status. Unknown errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("[HTTP] request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID.Error()})
		return 0, false
	}
	return id, true
}
