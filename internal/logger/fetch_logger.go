// Package logger provides fetch event logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// FetchLogger provides dedicated logging for odds retrieval events.
type FetchLogger struct {
	*logrus.Entry
}

// NewFetchLogger creates a new fetch logger.
func NewFetchLogger(baseLogger *logrus.Logger) *FetchLogger {
	return &FetchLogger{
		Entry: baseLogger.WithField("component", "fetch"),
	}
}

// LogBatchStart logs the beginning of a multi-sport fetch batch.
func (fl *FetchLogger) LogBatchStart(batchID string, sports []string, betTypes []string) {
	fl.WithFields(logrus.Fields{
		"batch_id":  batchID,
		"sports":    sports,
		"bet_types": betTypes,
	}).Info("Fetch batch started")
}

// LogBatchComplete logs a finished batch with per-sport counts.
func (fl *FetchLogger) LogBatchComplete(batchID string, games int, duration time.Duration, requestCount int) {
	fl.WithFields(logrus.Fields{
		"batch_id":      batchID,
		"games":         games,
		"duration_ms":   duration.Milliseconds(),
		"request_count": requestCount,
	}).Info("Fetch batch complete")
}

// LogSportFailure logs a per-sport fetch failure within a batch.
func (fl *FetchLogger) LogSportFailure(batchID, sport string, err error) {
	fl.WithFields(logrus.Fields{
		"batch_id": batchID,
		"sport":    sport,
	}).WithError(err).Error("Sport fetch failed")
}

// LogCacheResult logs a cache lookup outcome for a fetch key.
func (fl *FetchLogger) LogCacheResult(cacheKey string, hit bool) {
	fl.WithFields(logrus.Fields{
		"cache_key": cacheKey,
		"cache_hit": hit,
	}).Debug("Cache lookup")
}

// LogQuotaRemaining logs the provider's reported remaining request quota.
func (fl *FetchLogger) LogQuotaRemaining(remaining string) {
	fl.WithField("requests_remaining", remaining).Info("Provider quota update")
}
