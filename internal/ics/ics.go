// Package ics renders liturgical years as iCalendar documents.
//
// Every observance and season opening becomes an all-day VEVENT with a
// stable UID, so subscribed calendar apps update events in place when a
// feed is regenerated.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/asachs01/lectio-api/internal/calendar"
)

// productID identifies this generator in the PRODID property.
const productID = "-//lectio//Liturgical Calendar//EN"

// uidDomain scopes event UIDs.
const uidDomain = "lectio-api"

// Options controls calendar rendering.
type Options struct {
	// CalendarName sets X-WR-CALNAME. Defaults to
	// "Liturgical Calendar <advent year>".
	CalendarName string

	// Subscription renders a feed for calendar subscriptions:
	// METHOD:PUBLISH plus a suggested refresh interval.
	Subscription bool
}

// icsWriter accumulates the first write error so the line-by-line
// generation code stays flat.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) printf(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format, args...)
}

func (iw *icsWriter) println(line string) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintln(iw.w, line)
}

// WriteYear writes one liturgical year as an iCalendar document.
func WriteYear(w io.Writer, info *calendar.LiturgicalYearInfo, opts Options) error {
	name := opts.CalendarName
	if name == "" {
		name = fmt.Sprintf("Liturgical Calendar %d", info.AdventYear)
	}

	iw := &icsWriter{w: w}
	stamp := time.Now().UTC().Format("20060102T150405Z")

	iw.println("BEGIN:VCALENDAR")
	iw.println("VERSION:2.0")
	iw.printf("PRODID:%s\n", productID)
	if opts.Subscription {
		iw.println("METHOD:PUBLISH")
	}
	iw.printf("X-WR-CALNAME:%s\n", name)
	iw.println("CALSCALE:GREGORIAN")
	if opts.Subscription {
		// Suggest refresh once a day; the underlying year never changes
		iw.println("X-PUBLISHED-TTL:P1D")
	}

	for _, s := range info.Seasons {
		summary := fmt.Sprintf("%s begins", s.Name)
		description := fmt.Sprintf("%s season (%s)", s.Kind, s.Color)
		writeEvent(iw, s.Start, stamp, summary, description, "season")
	}

	for _, d := range info.SpecialDays {
		description := fmt.Sprintf("%s (%s)", d.Type, d.Color)
		writeEvent(iw, d.Date, stamp, d.Name, description, string(d.Type))
	}

	iw.println("END:VCALENDAR")

	return iw.err
}

// writeEvent emits one all-day VEVENT. The UID is derived from the date
// and summary only, so regenerating the feed yields identical UIDs.
func writeEvent(iw *icsWriter, date time.Time, stamp, summary, description, category string) {
	iw.println("BEGIN:VEVENT")
	iw.printf("UID:%s-%s@%s\n", date.Format("20060102"), slugify(summary), uidDomain)
	iw.printf("DTSTAMP:%s\n", stamp)
	iw.printf("DTSTART;VALUE=DATE:%s\n", date.Format("20060102"))
	iw.printf("DTEND;VALUE=DATE:%s\n", date.AddDate(0, 0, 1).Format("20060102"))
	iw.printf("SUMMARY:%s\n", summary)
	iw.printf("DESCRIPTION:%s\n", description)
	iw.printf("CATEGORIES:%s\n", category)
	iw.println("END:VEVENT")
}

// slugify lowers a summary into a UID-safe token.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
