package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TrackIDHeader = "X-Track-ID"
	trackIDKey    = "x_track_id"
)

// TrackID reuses the caller's X-Track-ID or mints a new uuid, and echoes it
// on the response.
func TrackID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trackID := c.Get(TrackIDHeader)
		if trackID == "" {
			trackID = uuid.NewString()
		}

		c.Locals(trackIDKey, trackID)
		c.Set(TrackIDHeader, trackID)

		return c.Next()
	}
}

func GetTrackID(c *fiber.Ctx) string {
	trackID, _ := c.Locals(trackIDKey).(string)
	return trackID
}
