package ical

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

var stamp = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func kickoff() domain.ScheduledTask {
	return domain.ScheduledTask{ID: "t1", Title: "Kickoff", Date: "2024-01-10", Time: "09:00", Category: "General"}
}

func TestEncodeSingleTask(t *testing.T) {
	data, err := Encode([]domain.ScheduledTask{kickoff()}, Options{Location: time.UTC, Stamp: stamp, UIDDomain: "example.test"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + DefaultProductID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:t1@example.test",
		"DTSTAMP:20240101T120000Z",
		"SUMMARY:Kickoff",
		"DTSTART:20240110T090000Z",
		"DTEND:20240110T100000Z",
		"DESCRIPTION:Category: General",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"
	if string(data) != want {
		t.Fatalf("unexpected document:\n%q\nwant\n%q", data, want)
	}
}

func TestEncodeEventPerTaskInOrder(t *testing.T) {
	second := kickoff()
	second.ID = "t2"
	second.Title = "Review"
	second.Time = "14:00"
	data, err := Encode([]domain.ScheduledTask{kickoff(), second}, Options{Location: time.UTC, Stamp: stamp})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	body := string(data)
	if strings.Count(body, "BEGIN:VEVENT") != 2 {
		t.Fatalf("expected 2 events:\n%s", body)
	}
	if strings.Index(body, "SUMMARY:Kickoff") > strings.Index(body, "SUMMARY:Review") {
		t.Fatalf("events out of order")
	}
	if !strings.Contains(body, "DTSTART:20240110T140000Z\r\n") {
		t.Fatalf("missing afternoon start:\n%s", body)
	}
}

func TestEncodeConvertsLocalTimeToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	data, err := Encode([]domain.ScheduledTask{kickoff()}, Options{Location: loc, Stamp: stamp, Duration: 30 * time.Minute})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "DTSTART:20240110T070000Z\r\n") || !strings.Contains(body, "DTEND:20240110T073000Z\r\n") {
		t.Fatalf("unexpected times:\n%s", body)
	}
}

func TestEncodeEscapesAndFolds(t *testing.T) {
	task := kickoff()
	task.Title = "Plan; review, and ship\nnow " + strings.Repeat("x", 80)
	data, err := Encode([]domain.ScheduledTask{task}, Options{Location: time.UTC, Stamp: stamp})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `SUMMARY:Plan\; review\, and ship\nnow `) {
		t.Fatalf("summary not escaped:\n%s", body)
	}
	for _, line := range strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n") {
		if len(line) > 75 {
			t.Fatalf("line longer than 75 octets: %q", line)
		}
	}
	unfolded := strings.ReplaceAll(body, "\r\n ", "")
	if !strings.Contains(unfolded, strings.Repeat("x", 80)) {
		t.Fatalf("folded text lost content")
	}
}

func TestFoldKeepsRunesWhole(t *testing.T) {
	task := kickoff()
	task.Title = strings.Repeat("é", 60)
	data, err := Encode([]domain.ScheduledTask{task}, Options{Location: time.UTC, Stamp: stamp})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, line := range strings.Split(string(data), "\r\n") {
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "SUMMARY") {
			continue
		}
		if !utf8.ValidString(line) {
			t.Fatalf("split rune in %q", line)
		}
	}
	unfolded := strings.ReplaceAll(string(data), "\r\n ", "")
	if !strings.Contains(unfolded, "SUMMARY:"+strings.Repeat("é", 60)+"\r\n") {
		t.Fatalf("unfolded summary mismatch")
	}
}

func TestEncodeErrors(t *testing.T) {
	var ve *domain.ValidationError
	if _, err := Encode(nil, Options{}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for empty list, got %v", err)
	}
	bad := kickoff()
	bad.Date = "10/01/2024"
	if _, err := Encode([]domain.ScheduledTask{bad}, Options{}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestExportFileNames(t *testing.T) {
	cases := map[domain.CalendarKind]string{
		domain.CalendarApple:   "ai-implementation-tasks.ics",
		domain.CalendarGoogle:  "ai-implementation-tasks.ical",
		domain.CalendarOutlook: "ai-implementation-tasks.ical",
	}
	for kind, want := range cases {
		f, err := Export([]domain.ScheduledTask{kickoff()}, kind, "", Options{Location: time.UTC, Stamp: stamp})
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if f.Name != want || f.ContentType != ContentType || len(f.Data) == 0 {
			t.Fatalf("%s: unexpected file %+v", kind, f)
		}
	}
	if _, err := Export([]domain.ScheduledTask{kickoff()}, "", "", Options{}); err == nil {
		t.Fatalf("expected missing kind to fail")
	}
	if _, err := Export([]domain.ScheduledTask{kickoff()}, "Lotus Notes", "", Options{}); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}
