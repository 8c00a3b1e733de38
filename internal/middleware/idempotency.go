package middleware

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/response"
)

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyLockTTL = 30 * time.Second
	idempotencyRespTTL = 24 * time.Hour
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a mutating
// request with the same Idempotency-Key. A Redis lock covers the window
// where the first attempt is still running. Requests without the header
// pass through untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if key == "" || c.Request.Method == "GET" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "idem:resp:" + c.GetString(CtxUserUUID) + ":" + key
		lockKey := "idem:lock:" + c.GetString(CtxUserUUID) + ":" + key

		if raw, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(raw, &cached) == nil {
				c.Data(cached.Status, "application/json", cached.Body)
				c.Abort()
				return
			}
		}

		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			// Redis being down must not block writes.
			logger.Warn("lock unavailable, passing through", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.Error(c, 409, apperror.CodeConflict,
				"a request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status < 500 {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: recorder.buf.Bytes()})
			if err := rdb.Set(ctx, cacheKey, payload, idempotencyRespTTL).Err(); err != nil {
				logger.Warn("failed to cache response", zap.Error(err))
			}
		}

		rdb.Del(ctx, lockKey)
	}
}
