package owners

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

// Owner is the practitioner whose schedule and calendar are queried for bookings
type Owner struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Firstname      string             `json:"firstname" validate:"required"`
	Lastname       string             `json:"lastname" validate:"required"`
	Email          string             `json:"email" validate:"required,email"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt" validate:"isdefault"`
	LastModifiedAt time.Time          `json:"lastModifiedAt" bson:"lastModifiedAt" validate:"isdefault"`

	GoogleCalendarConnection GoogleCalendarConnection `json:"-" bson:"googleCalendarConnection,omitempty"`
}

// GoogleCalendarConnection holds the OAuth token and the calendars whose busy
// times block bookings
type GoogleCalendarConnection struct {
	Token               oauth2.Token         `json:"-" bson:"token,omitempty"`
	StateToken          string               `json:"stateToken,omitempty" bson:"stateToken,omitempty"`
	CalendarsOfInterest []GoogleCalendarSync `json:"calendarsOfInterest,omitempty" bson:"calendarsOfInterest,omitempty"`
}

// GoogleCalendarSync is a single calendar whose events count as busy
type GoogleCalendarSync struct {
	CalendarID string `json:"calendarId" bson:"calendarId"`
}

// IsConnected tells whether the owner has completed the Google Calendar OAuth flow
func (c *GoogleCalendarConnection) IsConnected() bool {
	return c.Token.AccessToken != ""
}
