// Package calendar holds the read-only external calendar feed shown next to
// the hourly schedule. Events arrive already fetched; they are never
// persisted or merged into a plan.
package calendar

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/dayplan/internal/datekey"
)

type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ColorHex string    `json:"color_hex,omitempty"`
}

// StartHour is the local hour the event begins, for lining events up with
// hourly slots.
func (e Event) StartHour() int {
	return e.Start.Hour()
}

func (e Event) EndHour() int {
	return e.End.Hour()
}

// DecodeFeed parses an externally fetched event list.
func DecodeFeed(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar feed: %w", err)
	}
	return events, nil
}

// EventsOn filters the feed to events starting on the given day, ordered by
// start time.
func EventsOn(events []Event, date datekey.Key) []Event {
	var day []Event
	for _, e := range events {
		if datekey.FromTime(e.Start) == date {
			day = append(day, e)
		}
	}
	sort.Slice(day, func(i, j int) bool { return day[i].Start.Before(day[j].Start) })
	return day
}
