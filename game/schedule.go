package game

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Wire types for the team schedule endpoint. Only the fields the
// scorecard needs are mapped.

type scheduleResponse struct {
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Events []event `json:"events"`
}

type event struct {
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Venue struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	Status struct {
		DisplayClock string `json:"displayClock"`
		Period       int    `json:"period"`
		Type         struct {
			State string `json:"state"`
		} `json:"type"`
	} `json:"status"`
	Competitors []competitor `json:"competitors"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		Abbreviation     string `json:"abbreviation"`
		DisplayName      string `json:"displayName"`
		ShortDisplayName string `json:"shortDisplayName"`
	} `json:"team"`
	Score flexScore `json:"score"`
}

// flexScore absorbs the schedule API's three score encodings: a bare
// string, a bare number, or an object with value/displayValue.
type flexScore struct {
	value string
}

func (s *flexScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.value = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.value = str
	case '{':
		var obj struct {
			Value        *float64 `json:"value"`
			DisplayValue string   `json:"displayValue"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.DisplayValue != "" {
			s.value = obj.DisplayValue
		} else if obj.Value != nil {
			s.value = strconv.Itoa(int(*obj.Value))
		}
	default:
		var num float64
		if err := json.Unmarshal(data, &num); err != nil {
			return err
		}
		s.value = strconv.Itoa(int(num))
	}
	return nil
}

// Display returns the score as shown on the card, defaulting to "0".
func (s flexScore) Display() string {
	if s.value == "" {
		return "0"
	}
	return s.value
}

// Points returns the numeric score for win/loss comparison.
func (s flexScore) Points() int {
	n, err := strconv.Atoi(s.value)
	if err != nil {
		return 0
	}
	return n
}

func (e event) state() string {
	if len(e.Competitions) == 0 {
		return ""
	}
	return e.Competitions[0].Status.Type.State
}

func (e event) kickoff() time.Time {
	t, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		// The schedule API sometimes omits seconds.
		t, err = time.Parse("2006-01-02T15:04Z07:00", e.Date)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// findRelevantGame picks the event to feature: any live game first,
// then the next upcoming kickoff, then the most recently completed.
func findRelevantGame(events []event, now time.Time) (event, bool) {
	for _, e := range events {
		if e.state() == stateLive {
			return e, true
		}
	}
	for _, e := range events {
		if e.state() == stateUpcoming && e.kickoff().After(now) {
			return e, true
		}
	}
	var last event
	found := false
	for _, e := range events {
		if e.state() == stateFinal {
			last = e
			found = true
		}
	}
	return last, found
}
