package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMidnight(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.midnight() != d2.midnight() {
		t.Errorf("same day gives two different times")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2024, time.January, 32)
	if want := New(2024, time.February, 1); got != want {
		t.Errorf("New(2024, 1, 32) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-01", want: "2024-01-01"},
		{in: "2024-1-2", want: "2024-01-02"},
		{in: "2024-12-31", want: "2024-12-31"},
		{in: "01/02/2024", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date is not IsZero()")
	}
	if Today().IsZero() {
		t.Error("Today() is IsZero()")
	}
}

func TestBeforeAfter(t *testing.T) {
	a, b := MustParse("2024-01-01"), MustParse("2024-01-02")
	if !a.Before(b) || a.After(b) {
		t.Errorf("%v should be before %v", a, b)
	}
	if a.Add(1) != b {
		t.Errorf("%v.Add(1) = %v, want %v", a, a.Add(1), b)
	}
}

func TestJSON(t *testing.T) {
	d := MustParse("2024-3-7")
	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `"2024-03-07"`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var back Date
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &back); err == nil {
		t.Error("Unmarshal() of an invalid date should fail")
	}

	if _, err := json.Marshal(Date{}); err == nil {
		t.Error("Marshal() of the zero date should fail")
	}
}
