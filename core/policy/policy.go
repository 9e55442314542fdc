// Package policy holds the role/capability table that decides what every
// console screen shows and which actions it exposes.
//
// The table is data, not per-screen conditionals: adding a role or a
// capability is a one-line edit here. It is evaluated at render time on
// every request and is purely a UX affordance; the backend enforces the
// real authorization rules.
package policy

import "strings"

// Role is the authenticated identity kind, as reported by the backend.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleFaculty Role = "ROLE_FACULTY"
	RoleStudent Role = "ROLE_STUDENT"
	RoleParent  Role = "ROLE_PARENT"
)

var AllRoles = []Role{RoleAdmin, RoleFaculty, RoleStudent, RoleParent}

// ParseRole maps a backend role string to a known Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Display strips the wire prefix for UI labels ("ROLE_ADMIN" -> "ADMIN").
func (r Role) Display() string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

// Capability is a console feature area subject to role gating.
type Capability int

const (
	CapStudents Capability = iota
	CapFaculty
	CapParents
	CapClasses
	CapAttendance
	CapGrades
	CapFees
	CapNotifications
	CapTimetable
	CapSubjects
	CapExams
	CapAssignments
	CapSkills
	CapProfile
	CapChildOverview
	CapDiscussion
	CapNotes
	CapReports
)

// Permission describes what a role may do within a capability.
// OwnOnly restricts every allowed verb to records the subject owns
// (a faculty's classes, a student's fees...).
type Permission struct {
	View    bool
	Create  bool
	Edit    bool
	Delete  bool
	OwnOnly bool
}

// Denied reports whether no verb at all is granted.
func (p Permission) Denied() bool {
	return !(p.View || p.Create || p.Edit || p.Delete)
}

func full() Permission            { return Permission{View: true, Create: true, Edit: true, Delete: true} }
func readAll() Permission         { return Permission{View: true} }
func readOwn() Permission         { return Permission{View: true, OwnOnly: true} }
func ownManage() Permission       { return Permission{View: true, Create: true, Edit: true, OwnOnly: true} }
func viewCreate() Permission      { return Permission{View: true, Create: true} }
func viewCreateEdit() Permission  { return Permission{View: true, Create: true, Edit: true} }
func ownFull() Permission         { return Permission{View: true, Create: true, Edit: true, Delete: true, OwnOnly: true} }
func ownViewCreate() Permission   { return Permission{View: true, Create: true, OwnOnly: true} }

// grants is the single source of truth for role gating.
// Absent entries deny everything.
var grants = map[Role]map[Capability]Permission{
	RoleAdmin: {
		CapStudents:      full(),
		CapFaculty:       full(),
		CapParents:       full(),
		CapClasses:       full(),
		CapAttendance:    full(),
		CapGrades:        full(),
		CapFees:          full(),
		CapNotifications: viewCreateEdit(),
		CapTimetable:     full(),
		CapSubjects:      full(),
		CapExams:         full(),
		CapAssignments:   full(),
		CapSkills:        full(),
		CapProfile:       ownManage(),
		CapDiscussion:    viewCreate(),
		CapNotes:         full(),
		CapReports:       readAll(),
	},
	RoleFaculty: {
		CapStudents:      viewCreateEdit(),
		CapClasses:       Permission{View: true, Edit: true, OwnOnly: true},
		CapAttendance:    ownManage(),
		CapGrades:        viewCreateEdit(),
		CapNotifications: viewCreateEdit(),
		CapTimetable:     viewCreate(),
		CapSubjects:      viewCreate(),
		CapExams:         viewCreate(),
		CapAssignments:   ownFull(),
		CapProfile:       ownManage(),
		CapDiscussion:    viewCreate(),
		CapNotes:         viewCreate(),
		CapReports:       readAll(),
	},
	RoleStudent: {
		CapAttendance:    readOwn(),
		CapGrades:        readOwn(),
		CapFees:          readOwn(),
		CapNotifications: readOwn(),
		CapTimetable:     readAll(),
		CapSubjects:      readAll(),
		CapExams:         readAll(),
		CapAssignments:   ownViewCreate(), // view + submit
		CapSkills:        ownFull(),
		CapProfile:       ownManage(),
		CapDiscussion:    viewCreate(),
		CapNotes:         readAll(),
		CapReports:       readOwn(),
	},
	RoleParent: {
		CapChildOverview: readOwn(),
		CapNotifications: readOwn(),
		CapProfile:       readOwn(),
	},
}

// Can returns the permission granted to role for cap.
// Unknown roles and unknown capabilities deny everything.
func Can(role Role, cap Capability) Permission {
	return grants[role][cap]
}
