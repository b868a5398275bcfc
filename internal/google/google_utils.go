package google

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
)

// ReadGoogleConfig reads and parses the json file where google credentials are stored
func ReadGoogleConfig() (*oauth2.Config, error) {
	b, err := ioutil.ReadFile("./keys/credentials.json")
	if err != nil {
		return nil, err
	}

	// Busy lookups only need read access to the owner's calendars
	config, err := google.ConfigFromJSON(b, gcalendar.CalendarReadonlyScope)
	if err != nil {
		return nil, err
	}

	apiBaseURL := "http://localhost"
	envBaseURL, ok := os.LookupEnv("BASE_URL")
	if ok {
		apiBaseURL = envBaseURL
	}

	config.RedirectURL = fmt.Sprintf("%s/v1/calendar/google/callback", apiBaseURL)

	return config, nil
}

// GetGoogleToken gets a Google OAuth Token with an auth code
func GetGoogleToken(context context.Context, authCode string) (*oauth2.Token, error) {
	config, err := ReadGoogleConfig()
	if err != nil {
		return nil, err
	}

	tok, err := config.Exchange(context, authCode, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// GetGoogleAuthURL returns the URL where the owner can grant read access to their calendars
func GetGoogleAuthURL() (string, string, error) {
	config, err := ReadGoogleConfig()
	if err != nil {
		return "", "", err
	}

	stateToken := uuid.New().String()

	url := config.AuthCodeURL(stateToken, oauth2.AccessTypeOffline)

	return url, stateToken, nil
}
