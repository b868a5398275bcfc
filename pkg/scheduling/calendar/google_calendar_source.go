package calendar

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sanrasta/psychology/internal/google"
	"github.com/sanrasta/psychology/pkg/communication"
	"github.com/sanrasta/psychology/pkg/date"
	"github.com/sanrasta/psychology/pkg/logger"
	"github.com/sanrasta/psychology/pkg/owners"
	"golang.org/x/oauth2"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleCalendarSource reads busy intervals from the owner's Google calendars
type GoogleCalendarSource struct {
	Config  *oauth2.Config
	Logger  logger.Interface
	Service *gcalendar.Service
	owner   *owners.Owner
}

// NewGoogleCalendarSource constructs a GoogleCalendarSource for a single owner
func NewGoogleCalendarSource(ctx context.Context, owner *owners.Owner, logger logger.Interface) (*GoogleCalendarSource, error) {
	newSource := GoogleCalendarSource{}

	config, err := google.ReadGoogleConfig()
	if err != nil {
		return nil, err
	}

	newSource.Config = config

	if !owner.GoogleCalendarConnection.IsConnected() {
		return nil, communication.ErrCalendarAuthInvalid
	}

	if owner.GoogleCalendarConnection.Token.Expiry.Before(time.Now()) {
		source := newSource.Config.TokenSource(ctx, &owner.GoogleCalendarConnection.Token)
		newToken, err := source.Token()
		if err != nil {
			return nil, err
		}
		owner.GoogleCalendarConnection.Token = *newToken
	}

	client := newSource.Config.Client(ctx, &owner.GoogleCalendarConnection.Token)

	srv, err := gcalendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	newSource.Service = srv
	newSource.Logger = logger
	newSource.owner = owner

	return &newSource, nil
}

func checkForInvalidTokenError(err error) error {
	if e, ok := err.(*googleapi.Error); ok {
		if e.Code == 401 {
			return communication.ErrCalendarAuthInvalid
		}
	}

	return err
}

// FetchBusy queries the free/busy state of all calendars of interest in one
// request and returns the busy intervals, merged and in UTC
func (c *GoogleCalendarSource) FetchBusy(_ context.Context, window date.Timespan) ([]date.Timespan, error) {
	calList := c.owner.GoogleCalendarConnection.CalendarsOfInterest

	var items []*gcalendar.FreeBusyRequestItem
	for _, cal := range calList {
		items = append(items, &gcalendar.FreeBusyRequestItem{Id: cal.CalendarID})
	}

	response, err := c.Service.Freebusy.Query(&gcalendar.FreeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   items}).Do()
	if err != nil {
		if authErr := checkForInvalidTokenError(err); authErr == communication.ErrCalendarAuthInvalid {
			return nil, authErr
		}

		return nil, errors.Wrap(communication.ErrBusySourceUnavailable, err.Error())
	}

	var busy []date.Timespan
	for _, v := range response.Calendars {
		for _, period := range v.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				return nil, errors.Wrap(communication.ErrBusySourceUnavailable, err.Error())
			}

			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				return nil, errors.Wrap(communication.ErrBusySourceUnavailable, err.Error())
			}

			busy = append(busy, date.Timespan{Start: start.UTC(), End: end.UTC()})
		}
	}

	return date.MergeTimespans(busy), nil
}
