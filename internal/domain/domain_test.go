package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDayRange(t *testing.T) {
	cases := map[string]DayRange{
		"1-3":   {Start: 1, End: 3},
		"12-15": {Start: 12, End: 15},
		"5":     {Start: 5, End: 5},
	}
	for in, want := range cases {
		got, err := ParseDayRange(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got != want {
			t.Fatalf("%s: got %+v want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"", "a-b", "0-2", "5-3", "1-2-3"} {
		if _, err := ParseDayRange(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDayRangeJSON(t *testing.T) {
	ph := Phase{Title: "x", Days: DayRange{Start: 4, End: 7}, Tasks: []string{"a"}}
	b, err := json.Marshal(ph)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"title":"x","days":"4-7","tasks":["a"]}` {
		t.Fatalf("unexpected json %s", b)
	}
	var back Phase
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Days != ph.Days {
		t.Fatalf("days lost: %+v", back.Days)
	}
}

func TestValidationError(t *testing.T) {
	err := error(Required("title"))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("expected ValidationError for title, got %v", err)
	}
	if err.Error() != "validation: title: is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEnumsValid(t *testing.T) {
	if !IndustrySaaS.Valid() || Industry("Mining").Valid() {
		t.Fatalf("industry validity wrong")
	}
	if !SizeEnterprise.Valid() || BusinessSize("").Valid() {
		t.Fatalf("size validity wrong")
	}
	if !GoalScaleBusinessProcesses.Valid() || Goal("scale").Valid() {
		t.Fatalf("goal validity wrong")
	}
	if !CalendarOutlook.Valid() || CalendarKind("Lotus Notes").Valid() {
		t.Fatalf("calendar validity wrong")
	}
}
