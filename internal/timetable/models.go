package timetable

type Department struct {
	ID   int64  `json:"dept_id"`
	Name string `json:"dept_name"`
	Code string `json:"dept_code"`
}

type Course struct {
	ID      int64  `json:"course_id"`
	Code    string `json:"course_code"`
	Title   string `json:"course_title"`
	Credits int    `json:"credits"`
	DeptID  int64  `json:"dept_id"`
}

type Lecturer struct {
	ID        int64  `json:"lecturer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	DeptID    int64  `json:"dept_id"`
}

type Room struct {
	ID       int64  `json:"room_id"`
	Name     string `json:"room_name"`
	Capacity int    `json:"capacity"`
	Type     string `json:"room_type"`
}

type Timeslot struct {
	ID        int64  `json:"timeslot_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Allocation struct {
	ID         int64 `json:"allocation_id"`
	CourseID   int64 `json:"course_id"`
	LecturerID int64 `json:"lecturer_id"`
	RoomID     int64 `json:"room_id"`
	TimeslotID int64 `json:"timeslot_id"`
}

// AllocationView is one scheduled class with its references joined in,
// ordered by day of week then start time.
type AllocationView struct {
	ID           int64  `json:"allocation_id"`
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	LecturerName string `json:"lecturer_name"`
	RoomName     string `json:"room_name"`
	DayOfWeek    string `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// LecturerLoad aggregates one lecturer's weekly teaching commitment.
type LecturerLoad struct {
	LecturerName string  `json:"lecturer_name"`
	Department   string  `json:"dept_name"`
	TotalClasses int     `json:"total_classes"`
	TotalHours   float64 `json:"total_hours"`
}
