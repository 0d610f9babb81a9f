package calendar

import (
	"testing"
	"time"

	"github.com/julianstephens/dayplan/internal/datekey"
)

func TestDecodeFeed(t *testing.T) {
	data := []byte(`[
		{"id":"1","title":"Standup","start":"2025-03-09T09:00:00Z","end":"2025-03-09T09:15:00Z","color_hex":"#ff0000"},
		{"id":"2","title":"Lunch","start":"2025-03-09T12:00:00Z","end":"2025-03-09T13:00:00Z"}
	]`)
	events, err := DecodeFeed(data)
	if err != nil {
		t.Fatalf("DecodeFeed failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Title != "Standup" || events[0].ColorHex != "#ff0000" {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[0].StartHour() != 9 || events[1].EndHour() != 13 {
		t.Errorf("hours = %d/%d", events[0].StartHour(), events[1].EndHour())
	}

	if _, err := DecodeFeed([]byte("{broken")); err == nil {
		t.Error("DecodeFeed accepted garbage")
	}
}

func TestEventsOnFiltersAndSorts(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
	}
	events := []Event{
		{ID: "late", Title: "Dinner", Start: at(9, 19), End: at(9, 20)},
		{ID: "other-day", Title: "Flight", Start: at(10, 8), End: at(10, 11)},
		{ID: "early", Title: "Standup", Start: at(9, 9), End: at(9, 10)},
	}

	day := EventsOn(events, datekey.Key{Year: 2025, Month: time.March, Day: 9})
	if len(day) != 2 {
		t.Fatalf("events on day = %d, want 2", len(day))
	}
	if day[0].ID != "early" || day[1].ID != "late" {
		t.Errorf("order = %s, %s", day[0].ID, day[1].ID)
	}

	if got := EventsOn(events, datekey.Key{Year: 2025, Month: time.March, Day: 11}); len(got) != 0 {
		t.Errorf("empty day produced %d events", len(got))
	}
}
