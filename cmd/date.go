package cmd

import (
	"fmt"
	"regexp"
	"time"
)

// ParsedDate is a date plus the precision it was written with, which decides
// how long an implicit range runs.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("expected one or two date arguments")
	}
	return
}

// getImplicitDateRange turns a single datestring into the range it covers: a
// year string covers the whole year, a month the whole month, and so on.
func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	end = endParsed.Date

	return
}

var dateFormats = []struct {
	pattern *regexp.Regexp
	layout  string
	assign  func(*ParsedDate)
}{
	{regexp.MustCompile(`^\d{4}$`), "2006", func(d *ParsedDate) { d.Year = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(d *ParsedDate) { d.Month = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(d *ParsedDate) { d.Day = true }},
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	for _, format := range dateFormats {
		if !format.pattern.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(format.layout, ds)
		if err != nil {
			err = fmt.Errorf("parsing datestring %q: %w", ds, err)
			return
		}
		format.assign(&date)
		return
	}

	err = fmt.Errorf("invalid format: %q", ds)
	return
}
