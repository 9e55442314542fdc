package campus

import (
	"math"
	"sort"
	"time"

	"github.com/edusuite/campus-console/core"
)

// Derived display state. Every function here is pure: raw records in,
// display aggregates out. Nothing is cached between evaluations.

// FeeStatus is the tri-state payment status shown on fee screens.
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePartial FeeStatus = "Partial"
	FeePending FeeStatus = "Pending"
)

type FeeBreakdown struct {
	Total   float64
	Pending float64
	Status  FeeStatus
}

// DeriveFee computes the fee triple from its components:
// total is the sum of the four components, pending is clamped at zero,
// and status is Paid iff nothing is pending on a non-zero total,
// Partial iff something was paid and something is pending.
func DeriveFee(tuition, development, university, other, paid float64) FeeBreakdown {
	total := tuition + development + university + other
	pending := total - paid

	status := FeePending
	if pending <= 0 && total > 0 {
		status = FeePaid
	} else if paid > 0 && pending > 0 {
		status = FeePartial
	}

	if pending < 0 {
		pending = 0
	}
	return FeeBreakdown{Total: total, Pending: pending, Status: status}
}

// Breakdown re-derives the display triple from a stored fee record,
// ignoring whatever the server already computed.
func (f Fee) Breakdown() FeeBreakdown {
	return DeriveFee(f.TuitionFee, f.DevelopmentFee, f.UniversityFee, f.OtherFee, f.AmountPaid)
}

// AttendanceBand colors the percentage on attendance screens.
type AttendanceBand string

const (
	BandGood     AttendanceBand = "good"     // >= 75%
	BandWarning  AttendanceBand = "warning"  // >= 50%
	BandCritical AttendanceBand = "critical" // below
)

type AttendanceSummary struct {
	Total      int
	Present    int
	Absent     int
	Percentage float64 // rounded to 1 decimal
	Band       AttendanceBand
}

// SummarizeAttendance aggregates raw attendance records for display.
func SummarizeAttendance(records []AttendanceRecord) AttendanceSummary {
	s := AttendanceSummary{Total: len(records)}
	for _, r := range records {
		if r.Present {
			s.Present++
		}
	}
	s.Absent = s.Total - s.Present
	if s.Total > 0 {
		s.Percentage = math.Round(float64(s.Present)/float64(s.Total)*1000) / 10
	}
	switch {
	case s.Percentage >= 75:
		s.Band = BandGood
	case s.Percentage >= 50:
		s.Band = BandWarning
	default:
		s.Band = BandCritical
	}
	return s
}

// GradePercentage returns marks as a percentage of max.
// ok is false when max is zero and the percentage is undefined.
func GradePercentage(marks, max float64) (pct float64, ok bool) {
	if max <= 0 {
		return 0, false
	}
	return marks / max * 100, true
}

// HasSubmitted reports whether subs contains a submission for assignmentID.
func HasSubmitted(subs []Submission, assignmentID int) bool {
	for _, s := range subs {
		if s.AssignmentID == assignmentID {
			return true
		}
	}
	return false
}

// Weekdays is the fixed teaching-week grid.
var Weekdays = [5]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// GroupWeekly buckets timetable slots into the Mon-Fri grid by the weekday
// of each slot's date, sorted by start time within each day. Slots with
// unparseable dates or falling on a weekend are left out. The sort is
// stable so repeated grouping of the same input yields identical output.
func GroupWeekly(slots []TimetableSlot) map[string][]TimetableSlot {
	grouped := make(map[string][]TimetableSlot, len(Weekdays))
	for _, day := range Weekdays {
		grouped[day] = nil
	}
	for _, slot := range slots {
		d, err := time.ParseInLocation(core.DateLayout, slot.Date, time.Local)
		if err != nil {
			continue
		}
		day := d.Weekday().String()
		if _, ok := grouped[day]; !ok {
			continue
		}
		grouped[day] = append(grouped[day], slot)
	}
	for day := range grouped {
		bucket := grouped[day]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].StartTime < bucket[j].StartTime })
	}
	return grouped
}

// NotificationWindow is the rolling display cutoff for notifications.
const NotificationWindow = 72 * time.Hour

// FreshNotifications keeps notifications created within the trailing
// 72 hours of now. This is a display filter re-evaluated on every load,
// not a deletion.
func FreshNotifications(notes []Notification, now time.Time) []Notification {
	cutoff := now.Add(-NotificationWindow)
	fresh := make([]Notification, 0, len(notes))
	for _, n := range notes {
		if n.CreatedAt.After(cutoff) {
			fresh = append(fresh, n)
		}
	}
	return fresh
}

// UnreadCount counts notifications not yet marked read.
func UnreadCount(notes []Notification) int {
	var count int
	for _, n := range notes {
		if !n.ReadStatus {
			count++
		}
	}
	return count
}
