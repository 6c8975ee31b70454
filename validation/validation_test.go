package validation

import (
	"testing"
	"time"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("title", "ok", v)
	if v["name"] != "required" {
		t.Fatalf("expected required violation, got %v", v)
	}
	if _, ok := v["title"]; ok {
		t.Fatalf("unexpected violation for title")
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@example.com", true},
		{"", true}, // left to Required
		{"not-an-email", false},
		{"Ana <ana@example.com>", false},
	}
	for _, tt := range tests {
		v := Violations{}
		Email("email", tt.in, v)
		if v.Empty() != tt.want {
			t.Errorf("Email(%q) valid=%v, want %v", tt.in, v.Empty(), tt.want)
		}
	}
}

func TestNonNegativeFloat(t *testing.T) {
	v := Violations{}
	if f, ok := NonNegativeFloat("salary", "500", v); !ok || f != 500 {
		t.Fatalf("expected 500, got %v %v", f, ok)
	}
	if f, ok := NonNegativeFloat("salary", "12,5", v); !ok || f != 12.5 {
		t.Fatalf("expected comma decimal to parse, got %v %v", f, ok)
	}
	if _, ok := NonNegativeFloat("salary", "", v); ok {
		t.Fatalf("empty input should not be ok")
	}
	if !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}

	NonNegativeFloat("salary", "abc", v)
	if v["salary"] != "invalid_number" {
		t.Fatalf("expected invalid_number, got %v", v)
	}
	v = Violations{}
	NonNegativeFloat("salary", "-1", v)
	if v["salary"] != "must_not_be_negative" {
		t.Fatalf("expected must_not_be_negative, got %v", v)
	}
}

func TestRangeFloat(t *testing.T) {
	v := Violations{}
	RangeFloat("rate", 10, 0, 100, v)
	if !v.Empty() {
		t.Fatalf("expected no violation, got %v", v)
	}
	RangeFloat("rate", 101, 0, 100, v)
	if v["rate"] != "out_of_range" {
		t.Fatalf("expected out_of_range, got %v", v)
	}
}

func TestDate(t *testing.T) {
	v := Violations{}
	d, ok := Date("start_date", "2024-03-15", v)
	if !ok || !d.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v %v", d, ok)
	}
	Date("end_date", "15/03/2024", v)
	if v["end_date"] != "invalid_date" {
		t.Fatalf("expected invalid_date, got %v", v)
	}
}

func TestOneOfAndMerge(t *testing.T) {
	v := Violations{}
	OneOf("status", "archived", []string{"pending", "accepted"}, v)
	OneOf("other", "", []string{"x"}, v)
	if v["status"] != "invalid_choice" || len(v) != 1 {
		t.Fatalf("unexpected violations %v", v)
	}

	v.Merge(Violations{"status": "required", "email": "invalid_email"})
	if v["status"] != "invalid_choice" || v["email"] != "invalid_email" {
		t.Fatalf("merge should keep existing and add new: %v", v)
	}
}

func TestMaxLen(t *testing.T) {
	v := Violations{}
	MaxLen("name", "ñandú", 5, v)
	if !v.Empty() {
		t.Fatalf("5 runes should fit: %v", v)
	}
	MaxLen("name", "abcdef", 5, v)
	if v["name"] != "too_long" {
		t.Fatalf("expected too_long, got %v", v)
	}
}
