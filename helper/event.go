package helper

import (
	"fmt"
	"time"

	"event_ticketing/database"

	"github.com/gosimple/slug"
)

// IsOrganizer reports whether userId organizes eventId.
func IsOrganizer(eventId, userId uint) bool {
	var count int64
	database.DB.Table("event_organizers").
		Where("event_id = ? AND user_id = ?", eventId, userId).
		Count(&count)
	return count > 0
}

// EventSlug builds a unique slug from the event name; the suffix keeps two
// events with the same name apart.
func EventSlug(eventName string) string {
	return fmt.Sprintf("%s-%d", slug.Make(eventName), time.Now().UnixMilli()%100000)
}
