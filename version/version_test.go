package version

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		s                   string
		major, minor, patch int
		valid               bool
	}{
		{"0.0.0", 0, 0, 0, true},
		{"1.02.3", 1, 2, 3, true},
		{"", 0, 0, 0, false},
		{"0", 0, 0, 0, false},
		{"0.0", 0, 0, 0, false},
		{"0.0.0.0", 0, 0, 0, false},
		{"0.-1.0", 0, 0, 0, false},
		{"1.x.0", 0, 0, 0, false},
		{"12.0.40", 12, 0, 40, true},
	}

	for i := range tests {
		major, minor, patch, err := Parse(tests[i].s)
		if err != nil {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse('%s') returned %v, which does not wrap "+
					"ErrInvalid.", tests[i].s, err)
			}
			if tests[i].valid {
				t.Errorf("Expected Parse('%s') to give an error, but it "+
					"doesn't.", tests[i].s)
			}
		} else {
			if !tests[i].valid {
				t.Errorf("Expected Parse('%s') to be valid, but it gave an "+
					"error.", tests[i].s)
			}
			if major != tests[i].major || minor != tests[i].minor ||
				patch != tests[i].patch {
				t.Errorf("Parse('%s') parsed to (%d, %d, %d).",
					tests[i].s, major, minor, patch)
			}
		}
	}
}

func TestLater(t *testing.T) {
	tests := []struct {
		s1, s2       string
		later, valid bool
	}{
		{"0.0.0", "0.0", false, false},
		{"0.0.0", "0.0.0", false, true},
		{"0.0.1", "0.0.0", true, true},
		{"0.1.0", "0.0.0", true, true},
		{"1.0.0", "0.0.0", true, true},
		{"0.0.0", "0.0.1", false, true},
		{"0.0.0", "0.1.0", false, true},
		{"0.0.0", "1.0.0", false, true},
		{"2.13.7", "2.12.19", true, true},
		{"2.12.19", "2.13.7", false, true},
	}

	for i := range tests {
		later, err := Later(tests[i].s1, tests[i].s2)
		if err == nil && !tests[i].valid {
			t.Errorf("Expected Later('%s', %s) to return an error, but it "+
				"didn't.", tests[i].s1, tests[i].s2)
		} else if err != nil && tests[i].valid {
			t.Errorf("Did not expect Later('%s', '%s') to return an error, "+
				"but it did.", tests[i].s1, tests[i].s2)
		} else if later != tests[i].later {
			t.Errorf("Later('%s', '%s') returned %v", tests[i].s1,
				tests[i].s2, tests[i].later)
		}
	}
}

func TestReadable(t *testing.T) {
	major, minor, patch, err := Parse(SourceVersion)
	if err != nil {
		t.Fatalf("SourceVersion '%s' is invalid: %v", SourceVersion, err)
	}

	tests := []struct {
		written  string
		readable bool
		valid    bool
	}{
		{SourceVersion, true, true},
		{fmt.Sprintf("%d.0.0", major), true, true},
		{fmt.Sprintf("%d.%d.%d", major, minor, patch+1), false, true},
		{fmt.Sprintf("%d.%d.%d", major+1, 0, 0), false, true},
		{"0.0", false, false},
	}
	if major > 0 {
		tests = append(tests, struct {
			written  string
			readable bool
			valid    bool
		}{fmt.Sprintf("%d.9.9", major-1), false, true})
	}

	for i := range tests {
		ok, err := Readable(tests[i].written)
		if (err == nil) != tests[i].valid {
			t.Errorf("%d) Readable('%s') returned error %v.", i,
				tests[i].written, err)
		} else if ok != tests[i].readable {
			t.Errorf("%d) Readable('%s') = %v, expected %v.", i,
				tests[i].written, ok, tests[i].readable)
		}
	}
}
