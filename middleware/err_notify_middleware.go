package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotifyPayload struct {
	Code    int    `json:"code"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	SpaceID string `json:"space_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Error   string `json:"error"`
}

// ErrNotify отправляет сведения об ответах 5xx на addr, пустой addr отключает отправку
func ErrNotify(addr string) fiber.Handler {
	client := &http.Client{Timeout: 5 * time.Second}
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Message string `json:"message"`
		}
		body := c.Response().Body()
		if unmErr := json.Unmarshal(body, &data); unmErr != nil || data.Message == "" {
			data.Message = string(body)
		}
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		payload, mErr := json.Marshal(errNotifyPayload{
			Code:    statusCode,
			Method:  c.Method(),
			Path:    path,
			SpaceID: GetUserSpace(c),
			UserID:  GetUserID(c),
			Error:   data.Message,
		})
		if mErr != nil {
			log.WithError(mErr).Warn("error marshalling error notification")
			return err
		}
		go func() {
			resp, reqErr := client.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("error sending error notification")
				return
			}
			resp.Body.Close()
		}()
		return err
	}
}
