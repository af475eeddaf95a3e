package data

import (
	"fmt"
	"time"
)

// DateTime is a calendar timestamp decoded from the card's packed
// FAT date and time fields. Decoding performs no range validation;
// whatever the device emitted is preserved. Use Time to materialize
// a validated time.Time.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// DecodeDateTime unpacks the two 16-bit FAT date/time fields:
//
//	date: bits 15..9 year-1980, 8..5 month, 4..0 day
//	time: bits 15..11 hour, 10..5 minute, 4..0 second/2
func DecodeDateTime(date, tim uint16) DateTime {
	return DateTime{
		Year:   int((date>>9)&0x7F) + 1980,
		Month:  int((date >> 5) & 0xF),
		Day:    int(date & 0x1F),
		Hour:   int((tim >> 11) & 0x1F),
		Minute: int((tim >> 5) & 0x3F),
		Second: int(tim&0x1F) * 2,
	}
}

// Time converts the decoded fields into a time.Time in the local zone.
// Unlike time.Date, out-of-range fields are an error rather than being
// normalized; the device is free to emit nonsense and callers must see it.
func (dt DateTime) Time() (time.Time, error) {
	if dt.Month < 1 || dt.Month > 12 {
		return time.Time{}, fmt.Errorf("flashair: month %d out of range", dt.Month)
	}
	if dt.Day < 1 || dt.Day > daysIn(dt.Year, dt.Month) {
		return time.Time{}, fmt.Errorf("flashair: day %d out of range for %d-%02d", dt.Day, dt.Year, dt.Month)
	}
	if dt.Hour > 23 {
		return time.Time{}, fmt.Errorf("flashair: hour %d out of range", dt.Hour)
	}
	if dt.Minute > 59 {
		return time.Time{}, fmt.Errorf("flashair: minute %d out of range", dt.Minute)
	}
	if dt.Second > 59 {
		return time.Time{}, fmt.Errorf("flashair: second %d out of range", dt.Second)
	}

	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.Local), nil
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

func daysIn(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 31
	}
}
