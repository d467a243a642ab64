package models

import (
	"encoding/json"
	"testing"
)

func TestSignalDateObjectForm(t *testing.T) {
	var d SignalDate
	if err := json.Unmarshal([]byte(`{"blueDotDate": "2024-11-08"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Day != "2024-11-08" {
		t.Fatalf("expected day key, got %q", d.Day)
	}
}

func TestSignalDateEpochForm(t *testing.T) {
	var d SignalDate
	if err := json.Unmarshal([]byte(`1730678400000`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Day != "2024-11-04" {
		t.Fatalf("expected 2024-11-04, got %q", d.Day)
	}
}

func TestSignalDateUnknownShape(t *testing.T) {
	for _, raw := range []string{`"hello"`, `{"blueDotDate": "08.11.2024"}`, `-5`, `{}`} {
		var d SignalDate
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if d.Day != "" {
			t.Fatalf("expected empty day for %s, got %q", raw, d.Day)
		}
	}
}

func TestDaySetSkipsUnparsed(t *testing.T) {
	b := &BlueDotData{Dates: []SignalDate{{Day: "2024-11-08"}, {Day: ""}, {Day: "2024-11-08"}}}
	set := b.DaySet()
	if len(set) != 1 {
		t.Fatalf("expected 1 day, got %d", len(set))
	}
	if _, ok := set["2024-11-08"]; !ok {
		t.Fatal("missing day key")
	}
}

func TestDaySetNilReceiver(t *testing.T) {
	var b *BlueDotData
	if b.DaySet() != nil {
		t.Fatal("expected nil set")
	}
}
