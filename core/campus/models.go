package campus

import (
	"time"

	"github.com/edusuite/campus-console/core"
)

// Records as served by the campus REST API. The backend is authoritative;
// the console only holds transient copies of these.

type Student struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	USN        string `json:"usn"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
	ClassID    int    `json:"classId"`
	UserID     int    `json:"userId"`
}

type Faculty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	UserID      int    `json:"userId"`
}

type Parent struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StudentID int    `json:"studentId"`
}

type Class struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Section           string `json:"section"`
	Department        string `json:"department"`
	AssignedFacultyID int    `json:"assignedFacultyId"`
	RoomNumber        string `json:"roomNumber"`
	Capacity          int    `json:"capacity"`
	CurrentStrength   int    `json:"currentStrength"`
}

type AttendanceRecord struct {
	ID        int    `json:"id"`
	StudentID int    `json:"studentId"`
	ClassID   int    `json:"classId"`
	Date      string `json:"date"` // core.DateLayout
	Present   bool   `json:"present"`
	Remarks   string `json:"remarks"`
}

type Fee struct {
	ID             int     `json:"id"`
	StudentID      int     `json:"studentId"`
	TuitionFee     float64 `json:"tuitionFee"`
	DevelopmentFee float64 `json:"developmentFee"`
	UniversityFee  float64 `json:"universityFee"`
	OtherFee       float64 `json:"otherFee"`
	TotalAmount    float64 `json:"totalAmount"`
	AmountPaid     float64 `json:"amountPaid"`
	PendingAmount  float64 `json:"pendingAmount"`
	Status         string  `json:"status"`
	DueDate        string  `json:"dueDate"`
}

type Grade struct {
	ID            int     `json:"id"`
	StudentID     int     `json:"studentId"`
	Subject       string  `json:"subject"`
	MarksObtained float64 `json:"marksObtained"`
	MaxMarks      float64 `json:"maxMarks"`
	Remarks       string  `json:"remarks"`
}

type Notification struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"` // Info | Alert | Warning | Success
	RecipientID int       `json:"recipientId"`
	CreatedAt   time.Time `json:"createdAt"`
	ReadStatus  bool      `json:"readStatus"`
}

type TimetableSlot struct {
	ID        int    `json:"id"`
	ClassID   int    `json:"classId"`
	FacultyID int    `json:"facultyId"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`      // core.DateLayout
	StartTime string `json:"startTime"` // zero-padded HH:MM
	EndTime   string `json:"endTime"`
}

type Subject struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

type Exam struct {
	ID       int    `json:"id"`
	ClassID  int    `json:"classId"`
	Subject  string `json:"subject"`
	ExamDate string `json:"examDate"` // core.DateLayout
	ExamType string `json:"examType"`
	Active   bool   `json:"active"`
}

// ReportSummary is the backend's precomputed institution dashboard.
type ReportSummary struct {
	TotalStudents      int     `json:"totalStudents"`
	AverageGrade       float64 `json:"averageGrade"`
	AttendancePercent  float64 `json:"attendancePercent"`
	TotalFeesCollected float64 `json:"totalFeesCollected"`
}

type Assignment struct {
	ID            int    `json:"id"`
	ClassID       int    `json:"classId"`
	FacultyID     int    `json:"facultyId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DueDate       string `json:"dueDate"`
	AttachmentURL string `json:"attachmentUrl"`
}

type Submission struct {
	ID           int       `json:"id"`
	AssignmentID int       `json:"assignmentId"`
	StudentID    int       `json:"studentId"`
	FileURL      string    `json:"fileUrl"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type Skill struct {
	ID            int    `json:"id"`
	StudentID     int    `json:"studentId"`
	Name          string `json:"name"`
	Level         string `json:"level"`
	Certification string `json:"certification"`
}

// CareerSuggestion is computed server-side from a student's recorded skills.
type CareerSuggestion struct {
	SuggestedCareers          []string `json:"suggestedCareers"`
	RecommendedCertifications []string `json:"recommendedCertifications"`
	TotalSkillsAnalyzed       int      `json:"totalSkillsAnalyzed"`
}

type Note struct {
	ID       int    `json:"id"`
	ClassID  int    `json:"classId"`
	Subject  string `json:"subject"`
	Title    string `json:"title"`
	FileURL  string `json:"fileUrl"`
	Uploader string `json:"uploader"`
}

type DiscussionPost struct {
	ID         int       `json:"id"`
	ClassID    int       `json:"classId"`
	AuthorID   int       `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Message    string    `json:"message"`
	PostedAt   time.Time `json:"postedAt"`
}

type Profile struct {
	UserID   int    `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
	Resume   string `json:"resumeUrl"`
}

// Form payloads. Each knows how to clean and validate itself before any
// network call is made.

type NewStudent struct {
	Name       string `json:"name" validate:"required"`
	USN        string `json:"usn" validate:"required,alphanum_"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Department string `json:"department" validate:"required"`
	Semester   int    `json:"semester" validate:"gte=1,lte=8"`
	ClassID    int    `json:"classId"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.USN = core.CleanString(ns.USN, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Department = core.CleanString(ns.Department)
	return core.Validate.Struct(ns)
}

type NewFaculty struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Department  string `json:"department" validate:"required"`
	Designation string `json:"designation"`
}

func (nf *NewFaculty) Validate() error {
	nf.Name = core.CleanString(nf.Name)
	nf.Email = core.CleanString(nf.Email, true /* lower */)
	nf.Department = core.CleanString(nf.Department)
	return core.Validate.Struct(nf)
}

type NewParent struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"required"`
	StudentID int    `json:"studentId" validate:"required"`
}

func (np *NewParent) Validate() error {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)
	return core.Validate.Struct(np)
}

type NewClass struct {
	Name              string `json:"name" validate:"required"`
	Section           string `json:"section"`
	Department        string `json:"department" validate:"required"`
	AssignedFacultyID int    `json:"assignedFacultyId"`
	RoomNumber        string `json:"roomNumber"`
	Capacity          int    `json:"capacity" validate:"gte=1"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Department = core.CleanString(nc.Department)
	return core.Validate.Struct(nc)
}

// NewAttendance may only be recorded for today relative to the local clock.
// The rule is a UX affordance, not an access control.
type NewAttendance struct {
	StudentID int    `json:"studentId" validate:"required"`
	ClassID   int    `json:"classId" validate:"required"`
	Date      string `json:"date" validate:"required,today"`
	Present   bool   `json:"present"`
	Remarks   string `json:"remarks"`
}

func (na *NewAttendance) Validate() error {
	na.Remarks = core.CleanString(na.Remarks)
	return core.Validate.Struct(na)
}

// UpdateAttendance corrects an existing record; student, class and date
// are fixed at marking time and stay read-only.
type UpdateAttendance struct {
	Present bool   `json:"present"`
	Remarks string `json:"remarks"`
}

func (ua *UpdateAttendance) Validate() error {
	ua.Remarks = core.CleanString(ua.Remarks)
	return nil
}

type NewFee struct {
	StudentID      int     `json:"studentId" validate:"required"`
	TuitionFee     float64 `json:"tuitionFee" validate:"gte=0"`
	DevelopmentFee float64 `json:"developmentFee" validate:"gte=0"`
	UniversityFee  float64 `json:"universityFee" validate:"gte=0"`
	OtherFee       float64 `json:"otherFee" validate:"gte=0"`
	AmountPaid     float64 `json:"amountPaid" validate:"gte=0"`
	DueDate        string  `json:"dueDate"`

	// derived, recomputed on every change; never user-entered
	TotalAmount   float64 `json:"totalAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	Status        string  `json:"status"`
}

// Validate checks the entered components and refreshes the derived triple
// so the submitted payload is always consistent with what was displayed.
func (nf *NewFee) Validate() error {
	if err := core.Validate.Struct(nf); err != nil {
		return err
	}
	nf.Derive()
	return nil
}

// Derive recomputes total, pending and status from the current components.
func (nf *NewFee) Derive() {
	b := DeriveFee(nf.TuitionFee, nf.DevelopmentFee, nf.UniversityFee, nf.OtherFee, nf.AmountPaid)
	nf.TotalAmount = b.Total
	nf.PendingAmount = b.Pending
	nf.Status = string(b.Status)
}

type NewGrade struct {
	StudentID     int     `json:"studentId" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	MarksObtained float64 `json:"marksObtained" validate:"gte=0"`
	MaxMarks      float64 `json:"maxMarks" validate:"gt=0"`
	Remarks       string  `json:"remarks"`
}

func (ng *NewGrade) Validate() error {
	ng.Subject = core.CleanString(ng.Subject)
	ng.Remarks = core.CleanString(ng.Remarks)
	if err := core.Validate.Struct(ng); err != nil {
		return err
	}
	if ng.MarksObtained > ng.MaxMarks {
		return core.NewValidationError(nil, core.FieldError{Field: "marksObtained", Error: "marks obtained cannot exceed max marks"})
	}
	return nil
}

type NewNotification struct {
	Title       string `json:"title" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=Info Alert Warning Success"`
	RecipientID int    `json:"recipientId"`
}

func (nn *NewNotification) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
	return core.Validate.Struct(nn)
}

type NewTimetableSlot struct {
	ClassID   int    `json:"classId" validate:"required"`
	FacultyID int    `json:"facultyId" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

func (nt *NewTimetableSlot) Validate() error {
	nt.Subject = core.CleanString(nt.Subject)
	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	// zero-padded HH:MM makes the lexicographic compare safe
	if nt.StartTime >= nt.EndTime {
		return core.NewValidationError(nil, core.FieldError{Field: "endTime", Error: "end time must be after start time"})
	}
	return nil
}

type NewExam struct {
	ClassID  int    `json:"classId" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	ExamDate string `json:"examDate" validate:"required"`
	ExamType string `json:"examType" validate:"required,oneof=MIDTERM FINAL 'UNIT TEST' ASSESSMENT"`
	Active   bool   `json:"active"`
}

func (ne *NewExam) Validate() error {
	ne.Subject = core.CleanString(ne.Subject)
	return core.Validate.Struct(ne)
}

type NewSubject struct {
	Name       string `json:"name" validate:"required"`
	Code       string `json:"code" validate:"required,alphanum_"`
	Department string `json:"department"`
	Semester   int    `json:"semester" validate:"gte=1,lte=8"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code, true /* lower */)
	ns.Department = core.CleanString(ns.Department)
	return core.Validate.Struct(ns)
}

type NewAssignment struct {
	ClassID     int    `json:"classId" validate:"required"`
	FacultyID   int    `json:"facultyId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.Validate.Struct(na)
}

type NewSkill struct {
	StudentID     int    `json:"studentId" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Level         string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Certification string `json:"certification"`
}

func (ns *NewSkill) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Certification = core.CleanString(ns.Certification)
	return core.Validate.Struct(ns)
}

type NewDiscussionPost struct {
	ClassID int    `json:"classId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (nd *NewDiscussionPost) Validate() error {
	nd.Message = core.CleanString(nd.Message)
	return core.Validate.Struct(nd)
}

type UpdateProfile struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Bio   string `json:"bio"`
}

func (up *UpdateProfile) Validate() error {
	up.Name = core.CleanString(up.Name)
	up.Email = core.CleanString(up.Email, true /* lower */)
	up.Bio = core.CleanString(up.Bio)
	return core.Validate.Struct(up)
}
