package domain

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC)
	for _, in := range []string{"2023-06-01T12:30:00.000000Z", "2023-06-01T12:30:00Z", "2023-06-01T13:30:00+01:00"} {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("parse %s: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %s: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseTimestamp("1st June"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestTimestampYAMLAndJSON(t *testing.T) {
	var fw Framework
	src := "slug: g-cloud-12\nstatus: open\napplications_close_at_utc: \"2020-07-01T12:00:00.000000Z\"\n"
	if err := yaml.Unmarshal([]byte(src), &fw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fw.ApplicationsCloseAtUTC == nil || fw.ApplicationsCloseAtUTC.Month() != time.July {
		t.Fatalf("unexpected close date %v", fw.ApplicationsCloseAtUTC)
	}
	b, err := json.Marshal(fw.ApplicationsCloseAtUTC)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2020-07-01T12:00:00.000000Z"` {
		t.Fatalf("unexpected json %s", b)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil || !back.Equal(fw.ApplicationsCloseAtUTC.Time) {
		t.Fatalf("round trip: %v %v", back, err)
	}

	var missing Framework
	if err := yaml.Unmarshal([]byte("slug: dos-5\nstatus: coming\n"), &missing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if missing.ApplicationsCloseAtUTC != nil {
		t.Fatalf("expected nil close date")
	}
}

func TestLotUnits(t *testing.T) {
	unit, plural := Lot{}.Units()
	if unit != "service" || plural != "services" {
		t.Fatalf("defaults: %s %s", unit, plural)
	}
	unit, plural = Lot{Unit: "lab"}.Units()
	if unit != "lab" || plural != "labs" {
		t.Fatalf("derived plural: %s %s", unit, plural)
	}
	unit, plural = Lot{Unit: "specialist", UnitPlural: "specialist roles"}.Units()
	if unit != "specialist" || plural != "specialist roles" {
		t.Fatalf("explicit plural: %s %s", unit, plural)
	}
}

func TestFrameworkStatusValid(t *testing.T) {
	if !FrameworkStandstill.Valid() || FrameworkStatus("closed").Valid() {
		t.Fatalf("unexpected validity")
	}
}
