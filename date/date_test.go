package date

import (
	"encoding/json"
	"testing"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2024-01-01", want: "2024-01-01"},
		{input: "2024-3-1", want: "2024-03-01"},
		{input: "2024-12-31", want: "2024-12-31"},
		{input: "", wantErr: true},
		{input: "2024-13-01", wantErr: true},
		{input: "2024-02-30", wantErr: true},
		{input: "01/02/2024", wantErr: true},
		{input: "2024-01-01T10:00:00Z", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestStringOrder(t *testing.T) {
	// the standard format must sort like the calendar.
	days := []Date{New(2023, 12, 31), New(2024, 1, 1), New(2024, 1, 10), New(2024, 10, 1)}
	for i := 1; i < len(days); i++ {
		prev, cur := days[i-1], days[i]
		if !prev.Before(cur) {
			t.Fatalf("%v should be before %v", prev, cur)
		}
		if !(prev.String() < cur.String()) {
			t.Errorf("%q should sort before %q", prev, cur)
		}
	}
}

func TestNormalization(t *testing.T) {
	if got := New(2024, 2, 30).String(); got != "2024-03-01" {
		t.Errorf("New(2024, 2, 30) = %q, want 2024-03-01", got)
	}
	if got := New(2024, 1, 1).Add(-1).String(); got != "2023-12-31" {
		t.Errorf("Add(-1) = %q, want 2023-12-31", got)
	}
}

func TestUnix(t *testing.T) {
	d := New(2024, 5, 17)
	if got := FromUnix(d.Unix() + 3600); got != d {
		t.Errorf("FromUnix() = %v, want %v", got, d)
	}
}

func TestJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-7-4"`), &d); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(b) != `"2024-07-04"` {
		t.Errorf("Marshal() = %s, want %q", b, "2024-07-04")
	}
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err == nil {
		t.Error("Unmarshal() expected an error for an invalid date")
	}

	var empty struct {
		From Date `json:"from"`
	}
	if err := json.Unmarshal([]byte(`{"from":""}`), &empty); err != nil || !empty.From.IsZero() {
		t.Errorf("Unmarshal(\"\") = %v, %v, want the zero date", empty.From, err)
	}
	if b, _ := json.Marshal(Date{}); string(b) != `""` {
		t.Errorf("Marshal(Date{}) = %s, want %q", b, "")
	}
}
