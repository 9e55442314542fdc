package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/session"
)

var _ session.Authenticator = (*Client)(nil)

// Auth

type loginRequest struct {
	EmailOrUSN string `json:"emailOrUsn"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	Role      string      `json:"role"`
	UserID    json.Number `json:"userId"`
	FullName  string      `json:"fullName"`
	StudentID json.Number `json:"studentId"`
}

// Authenticate implements session.Authenticator.
func (c *Client) Authenticate(ctx context.Context, identifier, secret string) (session.LoginResult, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{EmailOrUSN: identifier, Password: secret}, &resp); err != nil {
		return session.LoginResult{}, err
	}
	return session.LoginResult{
		Credential:  resp.Token,
		Role:        resp.Role,
		SubjectID:   resp.UserID.String(),
		DisplayName: resp.FullName,
		StudentID:   resp.StudentID.String(),
	}, nil
}

// StudentIDForUser implements session.Authenticator.
func (c *Client) StudentIDForUser(ctx context.Context, userID string) (string, error) {
	var stu campus.Student
	if err := c.get(ctx, "/students/by-user/"+userID, &stu); err != nil {
		return "", err
	}
	if stu.ID == 0 {
		return "", &APIError{Status: 404, Message: "student record not found"}
	}
	return fmt.Sprint(stu.ID), nil
}

// Students

func (c *Client) Students(ctx context.Context) ([]campus.Student, error) {
	var out []campus.Student
	err := c.get(ctx, "/students/all", &out)
	return out, err
}

func (c *Client) Student(ctx context.Context, id string) (campus.Student, error) {
	var out campus.Student
	err := c.get(ctx, "/students/"+id, &out)
	return out, err
}

func (c *Client) CreateStudent(ctx context.Context, payload campus.NewStudent) error {
	return c.post(ctx, "/students/create", payload, nil)
}

func (c *Client) UpdateStudent(ctx context.Context, id string, payload campus.NewStudent) error {
	return c.put(ctx, "/students/"+id, payload, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.del(ctx, "/students/"+id)
}

// Faculty

func (c *Client) Faculties(ctx context.Context) ([]campus.Faculty, error) {
	var out []campus.Faculty
	err := c.get(ctx, "/faculty/all", &out)
	return out, err
}

func (c *Client) Faculty(ctx context.Context, id string) (campus.Faculty, error) {
	var out campus.Faculty
	err := c.get(ctx, "/faculty/"+id, &out)
	return out, err
}

func (c *Client) CreateFaculty(ctx context.Context, payload campus.NewFaculty) error {
	return c.post(ctx, "/faculty/create", payload, nil)
}

func (c *Client) UpdateFaculty(ctx context.Context, id string, payload campus.NewFaculty) error {
	return c.put(ctx, "/faculty/"+id, payload, nil)
}

func (c *Client) DeleteFaculty(ctx context.Context, id string) error {
	return c.del(ctx, "/faculty/"+id)
}

// Parents

func (c *Client) Parents(ctx context.Context) ([]campus.Parent, error) {
	var out []campus.Parent
	err := c.get(ctx, "/parents/all", &out)
	return out, err
}

func (c *Client) Parent(ctx context.Context, id string) (campus.Parent, error) {
	var out campus.Parent
	err := c.get(ctx, "/parents/"+id, &out)
	return out, err
}

func (c *Client) CreateParent(ctx context.Context, payload campus.NewParent) error {
	return c.post(ctx, "/parents/create", payload, nil)
}

func (c *Client) UpdateParent(ctx context.Context, id string, payload campus.NewParent) error {
	return c.put(ctx, "/parents/"+id, payload, nil)
}

func (c *Client) DeleteParent(ctx context.Context, id string) error {
	return c.del(ctx, "/parents/"+id)
}

// Classes

func (c *Client) Classes(ctx context.Context) ([]campus.Class, error) {
	var out []campus.Class
	err := c.get(ctx, "/classes/all", &out)
	return out, err
}

// ClassesByFaculty returns only the classes assigned to a faculty member,
// the role-scoped variant used by faculty screens.
func (c *Client) ClassesByFaculty(ctx context.Context, facultyID string) ([]campus.Class, error) {
	var out []campus.Class
	err := c.get(ctx, "/classes/faculty/"+facultyID, &out)
	return out, err
}

func (c *Client) Class(ctx context.Context, id string) (campus.Class, error) {
	var out campus.Class
	err := c.get(ctx, "/classes/"+id, &out)
	return out, err
}

func (c *Client) CreateClass(ctx context.Context, payload campus.NewClass) error {
	return c.post(ctx, "/classes/create", payload, nil)
}

func (c *Client) UpdateClass(ctx context.Context, id string, payload campus.NewClass) error {
	return c.put(ctx, "/classes/"+id, payload, nil)
}

func (c *Client) DeleteClass(ctx context.Context, id string) error {
	return c.del(ctx, "/classes/"+id)
}

// Attendance

func (c *Client) Attendance(ctx context.Context) ([]campus.AttendanceRecord, error) {
	var out []campus.AttendanceRecord
	err := c.get(ctx, "/attendance/all", &out)
	return out, err
}

func (c *Client) AttendanceByStudent(ctx context.Context, studentID string) ([]campus.AttendanceRecord, error) {
	var out []campus.AttendanceRecord
	err := c.get(ctx, "/attendance/student/"+studentID, &out)
	return out, err
}

func (c *Client) AttendanceByClass(ctx context.Context, classID string) ([]campus.AttendanceRecord, error) {
	var out []campus.AttendanceRecord
	err := c.get(ctx, "/attendance/class/"+classID, &out)
	return out, err
}

func (c *Client) AttendanceRecord(ctx context.Context, id string) (campus.AttendanceRecord, error) {
	var out campus.AttendanceRecord
	err := c.get(ctx, "/attendance/"+id, &out)
	return out, err
}

func (c *Client) MarkAttendance(ctx context.Context, payload campus.NewAttendance) error {
	return c.post(ctx, "/attendance/create", payload, nil)
}

func (c *Client) UpdateAttendance(ctx context.Context, id string, payload campus.UpdateAttendance) error {
	return c.put(ctx, "/attendance/update/"+id, payload, nil)
}

func (c *Client) DeleteAttendance(ctx context.Context, id string) error {
	return c.del(ctx, "/attendance/"+id)
}

// Fees

func (c *Client) Fees(ctx context.Context) ([]campus.Fee, error) {
	var out []campus.Fee
	err := c.get(ctx, "/fees/all", &out)
	return out, err
}

func (c *Client) FeesByStudent(ctx context.Context, studentID string) ([]campus.Fee, error) {
	var out []campus.Fee
	err := c.get(ctx, "/fees/student/"+studentID, &out)
	return out, err
}

func (c *Client) Fee(ctx context.Context, id string) (campus.Fee, error) {
	var out campus.Fee
	err := c.get(ctx, "/fees/"+id, &out)
	return out, err
}

func (c *Client) CreateFee(ctx context.Context, payload campus.NewFee) error {
	return c.post(ctx, "/fees/create", payload, nil)
}

func (c *Client) UpdateFee(ctx context.Context, id string, payload campus.NewFee) error {
	return c.put(ctx, "/fees/"+id, payload, nil)
}

func (c *Client) DeleteFee(ctx context.Context, id string) error {
	return c.del(ctx, "/fees/"+id)
}

// Grades

func (c *Client) Grades(ctx context.Context) ([]campus.Grade, error) {
	var out []campus.Grade
	err := c.get(ctx, "/grades/all", &out)
	return out, err
}

func (c *Client) GradesByStudent(ctx context.Context, studentID string) ([]campus.Grade, error) {
	var out []campus.Grade
	err := c.get(ctx, "/grades/student/"+studentID, &out)
	return out, err
}

func (c *Client) Grade(ctx context.Context, id string) (campus.Grade, error) {
	var out campus.Grade
	err := c.get(ctx, "/grades/"+id, &out)
	return out, err
}

func (c *Client) CreateGrade(ctx context.Context, payload campus.NewGrade) error {
	return c.post(ctx, "/grades/create", payload, nil)
}

func (c *Client) UpdateGrade(ctx context.Context, id string, payload campus.NewGrade) error {
	return c.put(ctx, "/grades/"+id, payload, nil)
}

func (c *Client) DeleteGrade(ctx context.Context, id string) error {
	return c.del(ctx, "/grades/"+id)
}

// Notifications

func (c *Client) Notifications(ctx context.Context) ([]campus.Notification, error) {
	var out []campus.Notification
	err := c.get(ctx, "/notifications/all", &out)
	return out, err
}

func (c *Client) NotificationsForRecipient(ctx context.Context, recipientID string) ([]campus.Notification, error) {
	var out []campus.Notification
	err := c.get(ctx, "/notifications/recipient/"+recipientID, &out)
	return out, err
}

func (c *Client) Notification(ctx context.Context, id string) (campus.Notification, error) {
	var out campus.Notification
	err := c.get(ctx, "/notifications/"+id, &out)
	return out, err
}

func (c *Client) CreateNotification(ctx context.Context, payload campus.NewNotification) error {
	return c.post(ctx, "/notifications/create", payload, nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notifications/"+id+"/read", nil, nil)
}

// Timetable

func (c *Client) Timetable(ctx context.Context) ([]campus.TimetableSlot, error) {
	var out []campus.TimetableSlot
	err := c.get(ctx, "/timetable/all", &out)
	return out, err
}

func (c *Client) TimetableByClass(ctx context.Context, classID string) ([]campus.TimetableSlot, error) {
	var out []campus.TimetableSlot
	err := c.get(ctx, "/timetable/class/"+classID, &out)
	return out, err
}

func (c *Client) CreateTimetableSlot(ctx context.Context, payload campus.NewTimetableSlot) error {
	return c.post(ctx, "/timetable/create", payload, nil)
}

func (c *Client) DeleteTimetableSlot(ctx context.Context, id string) error {
	return c.del(ctx, "/timetable/"+id)
}

// Subjects

func (c *Client) Subjects(ctx context.Context) ([]campus.Subject, error) {
	var out []campus.Subject
	err := c.get(ctx, "/subjects/all", &out)
	return out, err
}

func (c *Client) CreateSubject(ctx context.Context, payload campus.NewSubject) error {
	return c.post(ctx, "/subjects/create", payload, nil)
}

func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	return c.del(ctx, "/subjects/"+id)
}

// Exams

func (c *Client) Exams(ctx context.Context) ([]campus.Exam, error) {
	var out []campus.Exam
	err := c.get(ctx, "/exams/all", &out)
	return out, err
}

func (c *Client) Exam(ctx context.Context, id string) (campus.Exam, error) {
	var out campus.Exam
	err := c.get(ctx, "/exams/"+id, &out)
	return out, err
}

func (c *Client) CreateExam(ctx context.Context, payload campus.NewExam) error {
	return c.post(ctx, "/exams/create", payload, nil)
}

func (c *Client) UpdateExam(ctx context.Context, id string, payload campus.NewExam) error {
	return c.put(ctx, "/exams/"+id, payload, nil)
}

func (c *Client) DeleteExam(ctx context.Context, id string) error {
	return c.del(ctx, "/exams/"+id)
}

// Reports

func (c *Client) ReportSummary(ctx context.Context) (campus.ReportSummary, error) {
	var out campus.ReportSummary
	err := c.get(ctx, "/reports/summary", &out)
	return out, err
}

// Assignments & submissions

func (c *Client) Assignments(ctx context.Context) ([]campus.Assignment, error) {
	var out []campus.Assignment
	err := c.get(ctx, "/assignments/all", &out)
	return out, err
}

func (c *Client) AssignmentsByClass(ctx context.Context, classID string) ([]campus.Assignment, error) {
	var out []campus.Assignment
	err := c.get(ctx, "/assignments/class/"+classID, &out)
	return out, err
}

func (c *Client) Assignment(ctx context.Context, id string) (campus.Assignment, error) {
	var out campus.Assignment
	err := c.get(ctx, "/assignments/"+id, &out)
	return out, err
}

func (c *Client) CreateAssignment(ctx context.Context, payload campus.NewAssignment) error {
	return c.post(ctx, "/assignments/create", payload, nil)
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.del(ctx, "/assignments/"+id)
}

func (c *Client) SubmissionsByStudent(ctx context.Context, studentID string) ([]campus.Submission, error) {
	var out []campus.Submission
	err := c.get(ctx, "/submissions/student/"+studentID, &out)
	return out, err
}

func (c *Client) SubmissionsByAssignment(ctx context.Context, assignmentID string) ([]campus.Submission, error) {
	var out []campus.Submission
	err := c.get(ctx, "/submissions/assignment/"+assignmentID, &out)
	return out, err
}

// SubmitAssignment uploads a submission file for a student.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID, studentID, filename string, file io.Reader) error {
	fields := map[string]string{"assignmentId": assignmentID, "studentId": studentID}
	return c.upload(ctx, "/submissions/submit", fields, "file", filename, file, nil)
}

// Skills

func (c *Client) SkillsByStudent(ctx context.Context, studentID string) ([]campus.Skill, error) {
	var out []campus.Skill
	err := c.get(ctx, "/skills/student/"+studentID, &out)
	return out, err
}

func (c *Client) Skills(ctx context.Context) ([]campus.Skill, error) {
	var out []campus.Skill
	err := c.get(ctx, "/skills/all", &out)
	return out, err
}

func (c *Client) CreateSkill(ctx context.Context, payload campus.NewSkill) error {
	return c.post(ctx, "/skills/create", payload, nil)
}

func (c *Client) CareerSuggestion(ctx context.Context, userID string) (campus.CareerSuggestion, error) {
	var out campus.CareerSuggestion
	err := c.get(ctx, "/career/suggest/"+userID, &out)
	return out, err
}

func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.del(ctx, "/skills/"+id)
}

// Notes

func (c *Client) Notes(ctx context.Context) ([]campus.Note, error) {
	var out []campus.Note
	err := c.get(ctx, "/notes/all", &out)
	return out, err
}

// UploadNote uploads lecture material for a class.
func (c *Client) UploadNote(ctx context.Context, classID, subject, title, filename string, file io.Reader) error {
	fields := map[string]string{"classId": classID, "subject": subject, "title": title}
	return c.upload(ctx, "/notes/upload", fields, "file", filename, file, nil)
}

// Discussion

func (c *Client) DiscussionByClass(ctx context.Context, classID string) ([]campus.DiscussionPost, error) {
	var out []campus.DiscussionPost
	err := c.get(ctx, "/discussions/class/"+classID, &out)
	return out, err
}

func (c *Client) PostDiscussion(ctx context.Context, payload campus.NewDiscussionPost) error {
	return c.post(ctx, "/discussions/create", payload, nil)
}

// Profile

func (c *Client) ProfileByUser(ctx context.Context, userID string) (campus.Profile, error) {
	var out campus.Profile
	err := c.get(ctx, "/profiles/user/"+userID, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, payload campus.UpdateProfile) error {
	return c.put(ctx, "/profiles/user/"+userID, payload, nil)
}

func (c *Client) UploadProfilePhoto(ctx context.Context, userID, filename string, file io.Reader) error {
	return c.upload(ctx, "/profiles/user/"+userID+"/photo", nil, "photo", filename, file, nil)
}

func (c *Client) UploadProfileResume(ctx context.Context, userID, filename string, file io.Reader) error {
	return c.upload(ctx, "/profiles/user/"+userID+"/resume", nil, "resume", filename, file, nil)
}
