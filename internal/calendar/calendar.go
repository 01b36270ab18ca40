// Package calendar renders meetings as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/emersion/go-ical"

	"social-scheduler-api/internal/model"
)

const (
	prodID    = "-//social-scheduler//meetings//EN"
	uidDomain = "social-scheduler"
)

var eventStatus = map[model.MeetingStatus]string{
	model.MeetingNew:      "TENTATIVE",
	model.MeetingApproved: "CONFIRMED",
	model.MeetingCanceled: "CANCELLED",
}

// UID is the stable event id of a meeting.
func UID(m *model.Meeting) string {
	return m.ID.String() + "@" + uidDomain
}

// Event converts one meeting. Meetings carry only a start, so the end is
// start + duration.
func Event(m *model.Meeting, duration time.Duration, stamp time.Time) *ical.Event {
	e := ical.NewEvent()
	e.Props.SetText(ical.PropUID, UID(m))
	e.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	e.Props.SetDateTime(ical.PropDateTimeStart, m.StartTime.UTC())
	e.Props.SetDateTime(ical.PropDateTimeEnd, m.StartTime.Add(duration).UTC())
	e.Props.SetText(ical.PropSummary, m.Title)
	if m.Location != "" {
		e.Props.SetText(ical.PropLocation, m.Location)
	}
	if m.LocationURL != nil {
		if u, err := url.Parse(*m.LocationURL); err == nil && u.Scheme != "" {
			e.Props.SetURI(ical.PropURL, u)
		}
	}
	if m.Type.Title != "" {
		e.Props.SetText(ical.PropCategories, m.Type.Title)
	}
	if st, ok := eventStatus[m.Status]; ok {
		e.Props.SetText(ical.PropStatus, st)
	}
	if !m.UpdatedAt.IsZero() {
		e.Props.SetDateTime(ical.PropLastModified, m.UpdatedAt.UTC())
	}
	return e
}

// Write encodes ms as a VCALENDAR to w. An empty feed is still a valid
// calendar with no events.
func Write(w io.Writer, ms []model.Meeting, duration time.Duration, now time.Time) error {
	if len(ms) == 0 {
		// the encoder rejects calendars without components
		_, err := fmt.Fprintf(w, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", prodID)
		return err
	}
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	for i := range ms {
		cal.Children = append(cal.Children, Event(&ms[i], duration, now).Component)
	}
	return ical.NewEncoder(w).Encode(cal)
}
