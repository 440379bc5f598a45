package middleware

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyPending = "pending"
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key from the same user. Requests without the header, and all
// requests when client is nil, pass straight through.
func Idempotency(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if client == nil || key == "" {
			return c.Next()
		}
		if len(key) > 255 {
			return BadRequest("Idempotency-Key is too long")
		}

		userID, err := GetUserID(c)
		if err != nil {
			return err
		}
		cacheKey := "idempotency:" + userID.String() + ":" + c.Method() + ":" + c.Path() + ":" + key
		ctx := c.Context()

		acquired, err := client.SetNX(ctx, cacheKey, idempotencyPending, ttl).Result()
		if err != nil {
			log.WithError(err).Warn("idempotency store unavailable, processing request without it")
			return c.Next()
		}

		if !acquired {
			cached, err := client.Get(ctx, cacheKey).Result()
			if errors.Is(err, redis.Nil) {
				return Conflict("Request with this Idempotency-Key expired mid-flight, retry")
			}
			if err != nil {
				log.WithError(err).Warn("idempotency store unavailable, processing request without it")
				return c.Next()
			}
			if cached == idempotencyPending {
				return Conflict("Request with this Idempotency-Key is still in progress")
			}

			var resp storedResponse
			if err := json.Unmarshal([]byte(cached), &resp); err != nil {
				return err
			}
			c.Set(HeaderReplayed, "true")
			c.Set(fiber.HeaderContentType, resp.ContentType)
			return c.Status(resp.Status).Send(resp.Body)
		}

		if err := c.Next(); err != nil {
			_ = client.Del(ctx, cacheKey).Err()
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			_ = client.Del(ctx, cacheKey).Err()
			return nil
		}

		data, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		})
		if err == nil {
			err = client.Set(ctx, cacheKey, data, ttl).Err()
		}
		if err != nil {
			log.WithError(err).Warn("failed to store idempotent response")
		}
		return nil
	}
}
