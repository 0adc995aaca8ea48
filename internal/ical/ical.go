// Package ical writes scheduled tasks as an iCalendar (RFC 5545) document.
package ical

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

const (
	DefaultProductID = "-//AI Implementation Tasks//EN"
	DefaultFileBase  = "ai-implementation-tasks"
	DefaultDuration  = time.Hour
	ContentType      = "text/calendar; charset=utf-8"

	utcLayout = "20060102T150405Z"
	lineLimit = 75
)

// Options control how a document is encoded. The zero value is usable.
type Options struct {
	ProductID string
	Duration  time.Duration
	// Location interprets task dates and times; nil means time.Local.
	Location *time.Location
	// UIDDomain is appended to task ids to form globally unique UIDs.
	UIDDomain string
	// Stamp is the DTSTAMP of every event; zero means time.Now.
	Stamp time.Time
}

// File is an encoded document ready for download.
type File struct {
	Name        string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Extension returns the file extension used for a calendar application.
func Extension(kind domain.CalendarKind) string {
	if kind == domain.CalendarApple {
		return ".ics"
	}
	return ".ical"
}

// FileName returns the download name for a calendar kind.
func FileName(base string, kind domain.CalendarKind) string {
	if base == "" {
		base = DefaultFileBase
	}
	return base + Extension(kind)
}

// Export validates the request and encodes tasks for kind.
func Export(tasks []domain.ScheduledTask, kind domain.CalendarKind, fileBase string, opts Options) (File, error) {
	if !kind.Valid() {
		if kind == "" {
			return File{}, domain.Required("calendar_kind")
		}
		return File{}, &domain.ValidationError{Field: "calendar_kind", Message: fmt.Sprintf("unknown calendar %q", kind)}
	}
	data, err := Encode(tasks, opts)
	if err != nil {
		return File{}, err
	}
	return File{Name: FileName(fileBase, kind), ContentType: ContentType, Data: data}, nil
}

// Encode renders one VEVENT per task inside a single VCALENDAR.
func Encode(tasks []domain.ScheduledTask, opts Options) ([]byte, error) {
	if len(tasks) == 0 {
		return nil, &domain.ValidationError{Field: "tasks", Message: "nothing to export"}
	}
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.UIDDomain == "" {
		opts.UIDDomain = "overwhelmed-tools"
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}
	stamp := opts.Stamp.UTC().Format(utcLayout)

	var buf bytes.Buffer
	w := func(line string) { writeLine(&buf, line) }
	w("BEGIN:VCALENDAR")
	w("VERSION:2.0")
	w("PRODID:" + opts.ProductID)
	w("CALSCALE:GREGORIAN")
	w("METHOD:PUBLISH")
	for _, t := range tasks {
		start, err := Start(t, opts.Location)
		if err != nil {
			return nil, err
		}
		end := start.Add(opts.Duration)
		w("BEGIN:VEVENT")
		w("UID:" + escapeText(t.ID) + "@" + opts.UIDDomain)
		w("DTSTAMP:" + stamp)
		w("SUMMARY:" + escapeText(t.Title))
		w("DTSTART:" + start.UTC().Format(utcLayout))
		w("DTEND:" + end.UTC().Format(utcLayout))
		w("DESCRIPTION:" + escapeText("Category: "+t.Category))
		w("END:VEVENT")
	}
	w("END:VCALENDAR")
	return buf.Bytes(), nil
}

// Start resolves a task's date and time in loc.
func Start(t domain.ScheduledTask, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, t.Date+" "+t.Time, loc)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "tasks", Message: fmt.Sprintf("task %s has invalid date/time %q %q", t.ID, t.Date, t.Time)}
	}
	return start, nil
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// writeLine folds content lines longer than 75 octets without splitting
// a UTF-8 sequence, then terminates with CRLF.
func writeLine(buf *bytes.Buffer, line string) {
	limit := lineLimit
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines carry a leading space
		limit = lineLimit - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
