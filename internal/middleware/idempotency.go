package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// How long the in-progress marker may live before the handler must have
// finished; guards against a crashed request locking the key forever.
const provisionalLockTTL = 60 * time.Second

// idempEntry is the stored outcome of one idempotent request.
type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// bodyRecorder captures the response body so it can be replayed for
// duplicate submissions.
type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency creates a Gin middleware that makes mutating endpoints safe to
// retry. Clients send an Idempotency-Key header; the first request with a
// given key acquires a provisional lock and runs the handler, every later
// request with the same key replays the recorded response for ttl. Requests
// without the header pass through unguarded.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		if key == "" {
			c.Next()
			return
		}
		storeKey := "idemp:" + c.Request.Method + ":" + c.FullPath() + ":" + key

		logger := GetLoggerFromCtx(c.Request.Context())
		ctx := c.Request.Context()

		entry := idempEntry{InProgress: true, CreatedAt: time.Now().UTC()}
		raw, _ := json.Marshal(entry)
		acquired, err := rdb.SetNX(ctx, storeKey, raw, provisionalLockTTL).Result()
		if err != nil {
			logger.Error("Idempotency store unavailable", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Idempotency store unavailable"})
			return
		}

		if !acquired {
			cur, err := rdb.Get(ctx, storeKey).Bytes()
			if err != nil {
				logger.Error("Failed to load idempotency entry", slog.String("key", storeKey), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Idempotency store unavailable"})
				return
			}
			var stored idempEntry
			if err := json.Unmarshal(cur, &stored); err == nil && !stored.InProgress && stored.Code != 0 {
				logger.Info("Replaying idempotent response", slog.String("key", key), slog.Int("code", stored.Code))
				c.Data(stored.Code, "application/json", stored.Body)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Request with this Idempotency-Key is already in progress"})
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		final := idempEntry{
			InProgress: false,
			Code:       c.Writer.Status(),
			Body:       rec.buf.Bytes(),
			CreatedAt:  time.Now().UTC(),
		}
		raw, _ = json.Marshal(final)
		if err := rdb.Set(ctx, storeKey, raw, ttl).Err(); err != nil {
			logger.Error("Failed to store idempotent response", slog.String("key", storeKey), slog.String("error", err.Error()))
		}
	}
}
