package policy

// NavItem is a top-level navigation entry the active role may see.
type NavItem struct {
	Label string
	Path  string
	Cap   Capability
}

// navOrder lists every routable feature once; visibility per role is
// derived from the grants table so the navbar never needs its own checks.
var navOrder = []NavItem{
	{Label: "Students", Path: "/students", Cap: CapStudents},
	{Label: "Faculty", Path: "/faculty", Cap: CapFaculty},
	{Label: "Parents", Path: "/parents", Cap: CapParents},
	{Label: "Classes", Path: "/classes", Cap: CapClasses},
	{Label: "Attendance", Path: "/attendance", Cap: CapAttendance},
	{Label: "Grades", Path: "/grades", Cap: CapGrades},
	{Label: "Fees", Path: "/fees", Cap: CapFees},
	{Label: "Subjects", Path: "/subjects", Cap: CapSubjects},
	{Label: "Timetable", Path: "/timetable", Cap: CapTimetable},
	{Label: "Exams", Path: "/exams", Cap: CapExams},
	{Label: "Assignments", Path: "/assignments", Cap: CapAssignments},
	{Label: "Notes", Path: "/notes", Cap: CapNotes},
	{Label: "Skills", Path: "/skills", Cap: CapSkills},
	{Label: "Notifications", Path: "/notifications", Cap: CapNotifications},
	{Label: "Discussion", Path: "/discussion", Cap: CapDiscussion},
	{Label: "Reports", Path: "/reports", Cap: CapReports},
	{Label: "My Child", Path: "/child", Cap: CapChildOverview},
	{Label: "Profile", Path: "/profile", Cap: CapProfile},
}

// Nav returns the navigation entries visible to role, in display order.
func Nav(role Role) []NavItem {
	items := make([]NavItem, 0, len(navOrder))
	for _, item := range navOrder {
		if !Can(role, item.Cap).Denied() {
			items = append(items, item)
		}
	}
	return items
}

// Landing returns the designated post-login screen for role.
// Unrecognized roles fall back to the public landing page.
func Landing(role Role) string {
	switch role {
	case RoleAdmin:
		return "/students"
	case RoleFaculty:
		return "/classes"
	case RoleStudent:
		return "/profile"
	case RoleParent:
		return "/child"
	default:
		return "/"
	}
}
