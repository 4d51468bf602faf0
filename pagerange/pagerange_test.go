package pagerange

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSingleToken(t *testing.T) {
	got, err := Parse("1-3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if want := []Range{{1, 3}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseBareNumber(t *testing.T) {
	got, err := Parse("5")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if want := []Range{{5, 5}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParsePreservesInvertedPairOrder(t *testing.T) {
	got, err := Parse("3-1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if want := []Range{{3, 1}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("inverted pair must stay as given before normalization: got %v want %v", got, want)
	}
}

func TestParseMixedSeparators(t *testing.T) {
	got, err := Parse("1-3, 5; 7-9\n2")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := []Range{{1, 3}, {5, 5}, {7, 9}, {2, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []Range
	}{
		{"7", []Range{{7, 7}}},
		{"2 - 9", []Range{{2, 9}}},
		{"10-2", []Range{{10, 2}}},
		{" 4 ,  6 ", []Range{{4, 4}, {6, 6}}},
		{"1-1;1-1", []Range{{1, 1}, {1, 1}}},
		{"003-04", []Range{{3, 4}}},
		{"1,\n,2", []Range{{1, 1}, {2, 2}}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	for _, in := range []string{"abc", "1-3-5", "-2", "3-", "1.5", "2 3", "1–3"} {
		_, err := Parse(in)
		var syn *SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("Parse(%q) = %v, want *SyntaxError", in, err)
		}
	}
}

func TestParseReportsOffendingToken(t *testing.T) {
	_, err := Parse("1-3, oops, 7")
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
	if syn.Token != "oops" {
		t.Fatalf("offending token %q, want %q", syn.Token, "oops")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n", ",;,"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrNoRanges) {
			t.Fatalf("Parse(%q) = %v, want ErrNoRanges", in, err)
		}
	}
}

func TestParseAtomicOnFailure(t *testing.T) {
	ranges, err := Parse("1-2, bogus")
	if err == nil {
		t.Fatal("expected an error")
	}
	if ranges != nil {
		t.Fatalf("no ranges may be returned on failure, got %v", ranges)
	}
}

func TestNormalizeClampsThenSwaps(t *testing.T) {
	got := Normalize(Range{From: 10, To: 2}, 5)
	if want := (Range{From: 2, To: 5}); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNormalizeCases(t *testing.T) {
	cases := []struct {
		in        Range
		pageCount int
		want      Range
	}{
		{Range{1, 3}, 5, Range{1, 3}},
		{Range{0, 3}, 5, Range{1, 3}},
		{Range{3, 99}, 5, Range{3, 5}},
		{Range{9, 2}, 5, Range{2, 5}},
		{Range{-4, -1}, 5, Range{1, 1}},
		{Range{7, 7}, 5, Range{5, 5}},
		{Range{5, 1}, 5, Range{1, 5}},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in, tc.pageCount); got != tc.want {
			t.Fatalf("Normalize(%v, %d) = %v, want %v", tc.in, tc.pageCount, got, tc.want)
		}
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	in := []Range{{8, 9}, {1, 2}, {5, 3}}
	got := NormalizeAll(in, 6)
	want := []Range{{6, 6}, {1, 2}, {3, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if in[2] != (Range{5, 3}) {
		t.Fatal("input slice must not be mutated")
	}
}

func TestValidateAcceptsInBounds(t *testing.T) {
	if err := Validate([]Range{{1, 1}, {2, 5}, {5, 5}}, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsOutOfBounds(t *testing.T) {
	cases := []struct {
		ranges    []Range
		pageCount int
	}{
		{[]Range{{0, 2}}, 5},
		{[]Range{{1, 6}}, 5},
		{[]Range{{4, 2}}, 5},
		{[]Range{{1, 2}, {3, 9}}, 5},
	}
	for _, tc := range cases {
		err := Validate(tc.ranges, tc.pageCount)
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("Validate(%v, %d) = %v, want *OutOfBoundsError", tc.ranges, tc.pageCount, err)
		}
		if oob.PageCount != tc.pageCount {
			t.Fatalf("error page count %d, want %d", oob.PageCount, tc.pageCount)
		}
	}
}

func TestSinglePreservesOrder(t *testing.T) {
	if got := Single(9, 2); got != (Range{9, 2}) {
		t.Fatalf("got %v want {9 2}", got)
	}
}

func TestRangePages(t *testing.T) {
	if got := (Range{2, 5}).Pages(); got != 4 {
		t.Fatalf("got %d pages, want 4", got)
	}
	if got := (Range{3, 3}).Pages(); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}
