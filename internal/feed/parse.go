package feed

import (
	"bytes"
	"errors"

	ical "github.com/arran4/golang-ical"
)

// Parse decodes a calendar-feed body into raw events. Only the VEVENT subset
// the dashboard needs is read: SUMMARY, DTSTART, DTEND, LOCATION and
// DESCRIPTION. Components that are malformed or missing required fields are
// skipped rather than failing the whole feed. Identical input always yields
// the identical event list, in document order.
func Parse(body []byte) ([]RawEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty feed body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]RawEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(ve)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (RawEvent, bool) {
	var out RawEvent

	summary := ve.GetProperty(ical.ComponentPropertySummary)
	if summary == nil || summary.Value == "" {
		return out, false
	}
	out.Title = summary.Value

	start, err := ve.GetStartAt()
	if err != nil {
		return out, false
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, false
	}
	out.Start = start
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}

	return out, true
}
