package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StudentAttendance is one entry of a day's attendance sheet.
type StudentAttendance struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Present     bool   `json:"present"`
}

// StudentList is the ordered attendance sheet, stored as a JSONB column so a
// day's marks replace atomically (last write wins, no per-entry merging).
type StudentList []StudentAttendance

// Value implements driver.Valuer.
func (l StudentList) Value() (driver.Value, error) {
	if l == nil {
		l = StudentList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StudentList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StudentList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported student list source %T", src)
	}
}

// AttendanceRecord holds the single attendance row for a calendar day.
// Date is truncated to midnight UTC and unique per day.
type AttendanceRecord struct {
	ID        string      `db:"id" json:"id"`
	Date      time.Time   `db:"date" json:"date"`
	Students  StudentList `db:"students" json:"students"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}
