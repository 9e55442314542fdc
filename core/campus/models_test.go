package campus

import (
	"os"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edusuite/campus-console/core"
)

func TestMain(m *testing.M) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	os.Exit(m.Run())
}

func fieldErrs(t *testing.T, err error) map[string]bool {
	t.Helper()
	fields := make(map[string]bool)
	switch origErr := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range origErr {
			fields[fe.Field()] = true
		}
	case *core.ValidationError:
		for _, fe := range origErr.Fields {
			fields[fe.Field] = true
		}
	default:
		t.Fatalf("unexpected error type %T: %v", err, err)
	}
	return fields
}

func TestNewStudentValidate(t *testing.T) {
	tests := []struct {
		name      string
		payload   NewStudent
		wantField string
	}{
		{name: "valid", payload: NewStudent{Name: "Jane Poe", USN: "1ab20cs001", Department: "CSE", Semester: 3}},
		{name: "cleans and lowers usn", payload: NewStudent{Name: "Jane", USN: "  1AB20CS001 ", Department: "CSE", Semester: 3}},
		{name: "missing name", payload: NewStudent{USN: "1ab20cs001", Department: "CSE", Semester: 3}, wantField: "name"},
		{name: "usn with symbols", payload: NewStudent{Name: "Jane", USN: "1ab-20!", Department: "CSE", Semester: 3}, wantField: "usn"},
		{name: "bad email", payload: NewStudent{Name: "Jane", USN: "1ab20cs001", Email: "nope", Department: "CSE", Semester: 3}, wantField: "email"},
		{name: "semester out of range", payload: NewStudent{Name: "Jane", USN: "1ab20cs001", Department: "CSE", Semester: 9}, wantField: "semester"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !fieldErrs(t, err)[tt.wantField] {
				t.Errorf("Validate() error missing field %q: %v", tt.wantField, err)
			}
		})
	}
}

func TestNewAttendanceValidate(t *testing.T) {
	today := time.Now().Format(core.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(core.DateLayout)

	tests := []struct {
		name      string
		payload   NewAttendance
		wantField string
	}{
		{name: "today is accepted", payload: NewAttendance{StudentID: 1, ClassID: 1, Date: today, Present: true}},
		{name: "yesterday is rejected", payload: NewAttendance{StudentID: 1, ClassID: 1, Date: yesterday}, wantField: "date"},
		{name: "garbage date is rejected", payload: NewAttendance{StudentID: 1, ClassID: 1, Date: "29/08/2026"}, wantField: "date"},
		{name: "missing student", payload: NewAttendance{ClassID: 1, Date: today}, wantField: "studentId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !fieldErrs(t, err)[tt.wantField] {
				t.Errorf("Validate() error missing field %q: %v", tt.wantField, err)
			}
		})
	}
}

func TestNewFeeValidate(t *testing.T) {
	payload := NewFee{StudentID: 1, TuitionFee: 1000, DevelopmentFee: 200, UniversityFee: 150, OtherFee: 50, AmountPaid: 1000}
	if err := payload.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if payload.TotalAmount != 1400 || payload.PendingAmount != 400 || payload.Status != string(FeePartial) {
		t.Errorf("Validate() derived = %v/%v/%v, want 1400/400/Partial", payload.TotalAmount, payload.PendingAmount, payload.Status)
	}

	negative := NewFee{StudentID: 1, TuitionFee: -10}
	err := negative.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for negative component")
	}
	if !fieldErrs(t, err)["tuitionFee"] {
		t.Errorf("Validate() error missing field tuitionFee: %v", err)
	}
}

func TestNewGradeValidate(t *testing.T) {
	valid := NewGrade{StudentID: 1, Subject: "Maths", MarksObtained: 42, MaxMarks: 50}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	over := NewGrade{StudentID: 1, Subject: "Maths", MarksObtained: 51, MaxMarks: 50}
	err := over.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for marks over max")
	}
	if !fieldErrs(t, err)["marksObtained"] {
		t.Errorf("Validate() error missing field marksObtained: %v", err)
	}

	zeroMax := NewGrade{StudentID: 1, Subject: "Maths", MaxMarks: 0}
	if err := zeroMax.Validate(); err == nil {
		t.Error("Validate() expected error for zero max marks")
	}
}

func TestNewNotificationValidate(t *testing.T) {
	valid := NewNotification{Title: "Exam", Message: "Hall B", Type: "Alert"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	badType := NewNotification{Title: "Exam", Message: "Hall B", Type: "Shout"}
	err := badType.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for unknown type")
	}
	if !fieldErrs(t, err)["type"] {
		t.Errorf("Validate() error missing field type: %v", err)
	}
}

func TestNewTimetableSlotValidate(t *testing.T) {
	tests := []struct {
		name      string
		payload   NewTimetableSlot
		wantField string
	}{
		{name: "valid", payload: NewTimetableSlot{ClassID: 1, FacultyID: 1, Subject: "OS", Date: "2026-08-24", StartTime: "09:00", EndTime: "10:00"}},
		{name: "unpadded start", payload: NewTimetableSlot{ClassID: 1, FacultyID: 1, Subject: "OS", Date: "2026-08-24", StartTime: "9:00", EndTime: "10:00"}, wantField: "startTime"},
		{name: "out of range hour", payload: NewTimetableSlot{ClassID: 1, FacultyID: 1, Subject: "OS", Date: "2026-08-24", StartTime: "24:00", EndTime: "10:00"}, wantField: "startTime"},
		{name: "end equals start", payload: NewTimetableSlot{ClassID: 1, FacultyID: 1, Subject: "OS", Date: "2026-08-24", StartTime: "09:00", EndTime: "09:00"}, wantField: "endTime"},
		{name: "end before start", payload: NewTimetableSlot{ClassID: 1, FacultyID: 1, Subject: "OS", Date: "2026-08-24", StartTime: "10:00", EndTime: "09:00"}, wantField: "endTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !fieldErrs(t, err)[tt.wantField] {
				t.Errorf("Validate() error missing field %q: %v", tt.wantField, err)
			}
		})
	}
}

func TestNewExamValidate(t *testing.T) {
	valid := NewExam{ClassID: 2, Subject: "Operating Systems", ExamDate: "2026-09-10", ExamType: "UNIT TEST"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	badType := NewExam{ClassID: 2, Subject: "Operating Systems", ExamDate: "2026-09-10", ExamType: "POP QUIZ"}
	err := badType.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for unknown exam type")
	}
	if !fieldErrs(t, err)["examType"] {
		t.Errorf("Validate() error missing field examType: %v", err)
	}

	missing := NewExam{ExamType: "FINAL"}
	err = missing.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for missing fields")
	}
	flds := fieldErrs(t, err)
	for _, f := range []string{"classId", "subject", "examDate"} {
		if !flds[f] {
			t.Errorf("Validate() error missing field %s: %v", f, err)
		}
	}
}

func TestNewSkillValidate(t *testing.T) {
	valid := NewSkill{StudentID: 1, Name: "Go", Level: "Advanced"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	badLevel := NewSkill{StudentID: 1, Name: "Go", Level: "Guru"}
	err := badLevel.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for unknown level")
	}
	if !fieldErrs(t, err)["level"] {
		t.Errorf("Validate() error missing field level: %v", err)
	}
}
