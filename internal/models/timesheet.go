// internal/models/timesheet.go
package models

import "time"

type EntryStatus string

const (
	StatusCheckedIn  EntryStatus = "Checked In"
	StatusCheckedOut EntryStatus = "Checked Out"
)

// Timesheet is one attendance session. A row is created open at check-in
// and mutated exactly once, at check-out. At most one open row may exist
// per employee.
type Timesheet struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	EmployeeID  uint        `gorm:"index;not null;uniqueIndex:udx_timesheets_open_session,where:check_out IS NULL" json:"employee_id"`
	CheckIn     time.Time   `gorm:"index;not null" json:"check_in"`
	CheckOut    *time.Time  `json:"check_out,omitempty"`
	Mood        *string     `gorm:"size:50" json:"mood,omitempty"`
	EntryStatus EntryStatus `gorm:"type:varchar(20);not null" json:"entry_status"`
}

// TotalHours returns the elapsed session length in hours, or nil while
// the session is still open.
func (t *Timesheet) TotalHours() *float64 {
	if t.CheckOut == nil {
		return nil
	}
	h := t.CheckOut.Sub(t.CheckIn).Hours()
	return &h
}
