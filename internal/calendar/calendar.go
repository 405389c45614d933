// Package calendar renders calendar commitments as iCalendar documents for
// delivery alongside confirmation notifications.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tablematch/tablematch-server/internal/domain"
)

const productID = "-//TableMatch//TableMatch Server//EN"

// DefaultDuration is assumed for the dinner when rendering the calendar
// entry; reservations carry only a start time.
const DefaultDuration = 2 * time.Hour

// Renderer builds iCalendar documents for commitments.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces an iCalendar document with a single VEVENT for the
// commitment. The commitment ID becomes the event UID so re-deliveries
// update rather than duplicate the entry in the recipient's calendar.
func (r *Renderer) Render(res *domain.Reservation, commitment *domain.CalendarCommitment) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, commitment.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, commitment.CreatedAt.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, res.StartsAt.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, res.StartsAt.Add(DefaultDuration).UTC())
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("Dinner at %s", res.RestaurantName))
	if res.RestaurantAddress != "" {
		event.Props.SetText(ical.PropLocation, res.RestaurantAddress)
	}
	event.Props.SetText(ical.PropDescription,
		fmt.Sprintf("Confirmed dinner for %d at %s.", res.PartySize, res.RestaurantName))
	event.Props.SetText(ical.PropStatus, "CONFIRMED")

	cal.Children = append(cal.Children, event.Component)

	var buf strings.Builder
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}
