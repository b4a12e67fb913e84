package domain

import "time"

// LeaveEntry records sick leave hours taken by a vendor.
type LeaveEntry struct {
	ID        string
	VendorID  string
	Date      time.Time
	Hours     float64
	Note      string
	CreatedAt time.Time
}

// MonthsEmployed counts whole months between hire date and now.
func MonthsEmployed(hireDate, now time.Time) int {
	if now.Before(hireDate) {
		return 0
	}
	months := (now.Year()-hireDate.Year())*12 + int(now.Month()) - int(hireDate.Month())
	if now.Day() < hireDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
