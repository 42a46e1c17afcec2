package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// ParseDate interpreta "2006-01-02" no fuso do salão.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location())
}

// ParseDateTime interpreta data e hora ("2006-01-02", "15:04") no fuso do salão.
func ParseDateTime(date, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, Location())
}
