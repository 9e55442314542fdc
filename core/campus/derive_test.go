package campus

import (
	"testing"
	"time"
)

func TestDeriveFee(t *testing.T) {
	tests := []struct {
		name        string
		tuition     float64
		development float64
		university  float64
		other       float64
		paid        float64
		wantTotal   float64
		wantPending float64
		wantStatus  FeeStatus
	}{
		{name: "fully paid", tuition: 1000, development: 200, university: 150, other: 50, paid: 1400, wantTotal: 1400, wantPending: 0, wantStatus: FeePaid},
		{name: "partially paid", tuition: 1000, development: 200, university: 150, other: 50, paid: 1000, wantTotal: 1400, wantPending: 400, wantStatus: FeePartial},
		{name: "nothing paid", tuition: 1000, development: 200, university: 150, other: 50, paid: 0, wantTotal: 1400, wantPending: 1400, wantStatus: FeePending},
		{name: "overpaid clamps pending", tuition: 1000, development: 0, university: 0, other: 0, paid: 1200, wantTotal: 1000, wantPending: 0, wantStatus: FeePaid},
		{name: "zero total stays pending", wantStatus: FeePending},
		{name: "zero total with payment stays pending", paid: 100, wantStatus: FeePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DeriveFee(tt.tuition, tt.development, tt.university, tt.other, tt.paid)
			if b.Total != tt.wantTotal {
				t.Errorf("DeriveFee() Total = %v, want %v", b.Total, tt.wantTotal)
			}
			if b.Pending != tt.wantPending {
				t.Errorf("DeriveFee() Pending = %v, want %v", b.Pending, tt.wantPending)
			}
			if b.Status != tt.wantStatus {
				t.Errorf("DeriveFee() Status = %v, want %v", b.Status, tt.wantStatus)
			}
		})
	}
}

func TestFeeBreakdownIgnoresStoredDerived(t *testing.T) {
	fee := Fee{
		TuitionFee: 500,
		AmountPaid: 500,
		// stale server-side values, must not leak into display
		TotalAmount:   9999,
		PendingAmount: 9999,
		Status:        "Pending",
	}
	b := fee.Breakdown()
	if b.Total != 500 || b.Pending != 0 || b.Status != FeePaid {
		t.Errorf("Breakdown() = %+v, want total 500, pending 0, status Paid", b)
	}
}

func TestSummarizeAttendance(t *testing.T) {
	rec := func(present bool) AttendanceRecord { return AttendanceRecord{Present: present} }

	tests := []struct {
		name     string
		records  []AttendanceRecord
		wantPct  float64
		wantBand AttendanceBand
	}{
		{name: "empty", wantPct: 0, wantBand: BandCritical},
		{name: "8 of 10 present", records: []AttendanceRecord{
			rec(true), rec(true), rec(true), rec(true), rec(true), rec(true), rec(true), rec(true), rec(false), rec(false),
		}, wantPct: 80, wantBand: BandGood},
		{name: "exactly 75 is good", records: []AttendanceRecord{rec(true), rec(true), rec(true), rec(false)}, wantPct: 75, wantBand: BandGood},
		{name: "exactly 50 is warning", records: []AttendanceRecord{rec(true), rec(false)}, wantPct: 50, wantBand: BandWarning},
		{name: "below 50 is critical", records: []AttendanceRecord{rec(true), rec(false), rec(false)}, wantPct: 33.3, wantBand: BandCritical},
		{name: "one decimal rounding", records: []AttendanceRecord{rec(true), rec(true), rec(false)}, wantPct: 66.7, wantBand: BandWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SummarizeAttendance(tt.records)
			if s.Percentage != tt.wantPct {
				t.Errorf("SummarizeAttendance() Percentage = %v, want %v", s.Percentage, tt.wantPct)
			}
			if s.Band != tt.wantBand {
				t.Errorf("SummarizeAttendance() Band = %v, want %v", s.Band, tt.wantBand)
			}
			if s.Absent != s.Total-s.Present {
				t.Errorf("SummarizeAttendance() Absent = %v, want %v", s.Absent, s.Total-s.Present)
			}
		})
	}
}

func TestGradePercentage(t *testing.T) {
	if pct, ok := GradePercentage(45, 50); !ok || pct != 90 {
		t.Errorf("GradePercentage(45, 50) = %v, %v; want 90, true", pct, ok)
	}
	if _, ok := GradePercentage(45, 0); ok {
		t.Error("GradePercentage() with zero max should not be ok")
	}
	if _, ok := GradePercentage(45, -10); ok {
		t.Error("GradePercentage() with negative max should not be ok")
	}
}

func TestHasSubmitted(t *testing.T) {
	subs := []Submission{{AssignmentID: 1}, {AssignmentID: 3}}
	if !HasSubmitted(subs, 3) {
		t.Error("HasSubmitted() = false, want true")
	}
	if HasSubmitted(subs, 2) {
		t.Error("HasSubmitted() = true, want false")
	}
	if HasSubmitted(nil, 1) {
		t.Error("HasSubmitted(nil) = true, want false")
	}
}

func TestGroupWeekly(t *testing.T) {
	slots := []TimetableSlot{
		{ID: 1, Date: "2026-08-24", StartTime: "10:00"}, // Monday
		{ID: 2, Date: "2026-08-24", StartTime: "08:00"}, // Monday, earlier
		{ID: 3, Date: "2026-08-26", StartTime: "09:00"}, // Wednesday
		{ID: 4, Date: "2026-08-29", StartTime: "09:00"}, // Saturday, dropped
		{ID: 5, Date: "not-a-date", StartTime: "09:00"}, // dropped
	}

	grouped := GroupWeekly(slots)

	for _, day := range Weekdays {
		if _, ok := grouped[day]; !ok {
			t.Errorf("GroupWeekly() missing bucket %q", day)
		}
	}

	mon := grouped["Monday"]
	if len(mon) != 2 {
		t.Fatalf("GroupWeekly() Monday has %d slots, want 2", len(mon))
	}
	if mon[0].ID != 2 || mon[1].ID != 1 {
		t.Errorf("GroupWeekly() Monday order = [%d %d], want [2 1]", mon[0].ID, mon[1].ID)
	}
	if len(grouped["Wednesday"]) != 1 {
		t.Errorf("GroupWeekly() Wednesday has %d slots, want 1", len(grouped["Wednesday"]))
	}
	if len(grouped["Saturday"]) != 0 {
		t.Error("GroupWeekly() must drop weekend slots")
	}

	// regrouping the same input yields the same order
	again := GroupWeekly(slots)
	for i, slot := range again["Monday"] {
		if slot.ID != mon[i].ID {
			t.Error("GroupWeekly() is not stable across evaluations")
		}
	}
}

func TestFreshNotifications(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	notes := []Notification{
		{ID: 1, CreatedAt: now.Add(-71 * time.Hour)},
		{ID: 2, CreatedAt: now.Add(-73 * time.Hour)},
		{ID: 3, CreatedAt: now.Add(-NotificationWindow)}, // exactly on the boundary, dropped
		{ID: 4, CreatedAt: now},
	}

	fresh := FreshNotifications(notes, now)
	if len(fresh) != 2 {
		t.Fatalf("FreshNotifications() kept %d, want 2", len(fresh))
	}
	if fresh[0].ID != 1 || fresh[1].ID != 4 {
		t.Errorf("FreshNotifications() kept = [%d %d], want [1 4]", fresh[0].ID, fresh[1].ID)
	}
}

func TestUnreadCount(t *testing.T) {
	notes := []Notification{{ReadStatus: true}, {}, {}}
	if got := UnreadCount(notes); got != 2 {
		t.Errorf("UnreadCount() = %d, want 2", got)
	}
	if got := UnreadCount(nil); got != 0 {
		t.Errorf("UnreadCount(nil) = %d, want 0", got)
	}
}
