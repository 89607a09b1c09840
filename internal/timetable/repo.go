package timetable

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// dayOrder sorts Monday first the way the timetable is read.
const dayOrder = `array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], t.day_of_week)`

func (r *Repo) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := r.DB.Query(ctx, `SELECT dept_id, dept_name, dept_code FROM departments ORDER BY dept_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) CreateDepartment(ctx context.Context, d Department) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO departments(dept_name, dept_code) VALUES ($1, $2)
		RETURNING dept_id`, d.Name, d.Code).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteDepartment(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM departments WHERE dept_id = $1`, id)
	return err
}

func (r *Repo) ListCourses(ctx context.Context) ([]Course, error) {
	rows, err := r.DB.Query(ctx, `SELECT course_id, course_code, course_title, credits, dept_id FROM courses ORDER BY course_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Credits, &c.DeptID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CreateCourse(ctx context.Context, c Course) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO courses(course_code, course_title, credits, dept_id)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id`, c.Code, c.Title, c.Credits, c.DeptID).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteCourse(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM courses WHERE course_id = $1`, id)
	return err
}

func (r *Repo) ListLecturers(ctx context.Context) ([]Lecturer, error) {
	rows, err := r.DB.Query(ctx, `SELECT lecturer_id, first_name, last_name, email, dept_id FROM lecturers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lecturer
	for rows.Next() {
		var l Lecturer
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.DeptID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) CreateLecturer(ctx context.Context, l Lecturer) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO lecturers(first_name, last_name, email, dept_id)
		VALUES ($1, $2, $3, $4)
		RETURNING lecturer_id`, l.FirstName, l.LastName, l.Email, l.DeptID).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteLecturer(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM lecturers WHERE lecturer_id = $1`, id)
	return err
}

func (r *Repo) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := r.DB.Query(ctx, `SELECT room_id, room_name, capacity, room_type FROM rooms ORDER BY room_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.Type); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) CreateRoom(ctx context.Context, rm Room) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO rooms(room_name, capacity, room_type)
		VALUES ($1, $2, $3)
		RETURNING room_id`, rm.Name, rm.Capacity, rm.Type).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM rooms WHERE room_id = $1`, id)
	return err
}

func (r *Repo) ListTimeslots(ctx context.Context) ([]Timeslot, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT t.timeslot_id, t.day_of_week,
		       to_char(t.start_time, 'HH24:MI'), to_char(t.end_time, 'HH24:MI')
		FROM timeslots t
		ORDER BY `+dayOrder+`, t.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Timeslot
	for rows.Next() {
		var t Timeslot
		if err := rows.Scan(&t.ID, &t.DayOfWeek, &t.StartTime, &t.EndTime); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) CreateTimeslot(ctx context.Context, t Timeslot) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO timeslots(day_of_week, start_time, end_time)
		VALUES ($1, $2::time, $3::time)
		RETURNING timeslot_id`, t.DayOfWeek, t.StartTime, t.EndTime).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteTimeslot(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM timeslots WHERE timeslot_id = $1`, id)
	return err
}

// CreateAllocation schedules a class. Double bookings surface as
// ErrRoomBooked or ErrLecturerBooked via the table's UNIQUE constraints.
func (r *Repo) CreateAllocation(ctx context.Context, a Allocation) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO schedule_allocations(course_id, lecturer_id, room_id, timeslot_id)
		VALUES ($1, $2, $3, $4)
		RETURNING allocation_id`, a.CourseID, a.LecturerID, a.RoomID, a.TimeslotID).Scan(&id)
	return id, mapConflict(err)
}

func (r *Repo) DeleteAllocation(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM schedule_allocations WHERE allocation_id = $1`, id)
	return err
}

func (r *Repo) ListAllocations(ctx context.Context) ([]AllocationView, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT sa.allocation_id, c.course_code, c.course_title,
		       l.first_name || ' ' || l.last_name, r.room_name,
		       t.day_of_week,
		       to_char(t.start_time, 'HH24:MI'), to_char(t.end_time, 'HH24:MI')
		FROM schedule_allocations sa
		JOIN courses c ON sa.course_id = c.course_id
		JOIN lecturers l ON sa.lecturer_id = l.lecturer_id
		JOIN rooms r ON sa.room_id = r.room_id
		JOIN timeslots t ON sa.timeslot_id = t.timeslot_id
		ORDER BY `+dayOrder+`, t.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AllocationView
	for rows.Next() {
		var v AllocationView
		if err := rows.Scan(&v.ID, &v.CourseCode, &v.CourseTitle, &v.LecturerName,
			&v.RoomName, &v.DayOfWeek, &v.StartTime, &v.EndTime); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// WeeklyView groups the master timetable per day, Monday first.
func (r *Repo) WeeklyView(ctx context.Context) (map[string][]AllocationView, []string, error) {
	all, err := r.ListAllocations(ctx)
	if err != nil {
		return nil, nil, err
	}
	byDay := map[string][]AllocationView{}
	var days []string
	for _, v := range all {
		if _, ok := byDay[v.DayOfWeek]; !ok {
			days = append(days, v.DayOfWeek)
		}
		byDay[v.DayOfWeek] = append(byDay[v.DayOfWeek], v)
	}
	return byDay, days, nil
}

// LecturerLoad reports each lecturer's class count and weekly hours.
func (r *Repo) LecturerLoad(ctx context.Context) ([]LecturerLoad, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT l.first_name || ' ' || l.last_name,
		       COALESCE(d.dept_name, ''),
		       COUNT(sa.allocation_id),
		       COALESCE(ROUND(SUM(EXTRACT(EPOCH FROM (t.end_time - t.start_time)) / 3600)::numeric, 1), 0)
		FROM lecturers l
		LEFT JOIN departments d ON l.dept_id = d.dept_id
		LEFT JOIN schedule_allocations sa ON l.lecturer_id = sa.lecturer_id
		LEFT JOIN timeslots t ON sa.timeslot_id = t.timeslot_id
		GROUP BY l.lecturer_id, l.first_name, l.last_name, d.dept_name
		ORDER BY l.last_name, l.first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LecturerLoad
	for rows.Next() {
		var ll LecturerLoad
		if err := rows.Scan(&ll.LecturerName, &ll.Department, &ll.TotalClasses, &ll.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, ll)
	}
	return out, rows.Err()
}
