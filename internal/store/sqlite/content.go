package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

func (s *Store) CreateAnnouncement(ctx context.Context, a *model.Announcement) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO announcements (author_id, title, body, created_at) VALUES (?, ?, ?, ?)
`, a.AuthorID, a.Title, a.Body, a.CreatedAt.Unix())
	return insertedID(res, err, &a.ID)
}

func (s *Store) GetAnnouncement(ctx context.Context, id int64) (model.Announcement, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, author_id, title, body, created_at FROM announcements WHERE id = ?`, id)
	return scanAnnouncement(row)
}

func (s *Store) ListAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, author_id, title, body, created_at FROM announcements ORDER BY created_at DESC, id DESC LIMIT ?
`, clamp(limit, 1, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO events (author_id, name, event_date, location, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)
`, e.AuthorID, e.Name, nullableTime(e.Date), nullIfEmpty(e.Location), nullIfEmpty(e.Summary), e.CreatedAt.Unix())
	return insertedID(res, err, &e.ID)
}

func (s *Store) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, author_id, name, event_date, location, summary, created_at FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (s *Store) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, author_id, name, event_date, location, summary, created_at FROM events ORDER BY created_at DESC, id DESC LIMIT ?
`, clamp(limit, 1, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func (s *Store) CreateJob(ctx context.Context, j *model.Job) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO jobs (author_id, title, company, location, job_type, salary, requirements, deadline, apply_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, j.AuthorID, j.Title, j.Company, nullIfEmpty(j.Location), nullIfEmpty(j.Type), nullIfEmpty(j.Salary),
		nullIfEmpty(j.Requirements), nullableTime(j.Deadline), nullIfEmpty(j.ApplyURL), j.CreatedAt.Unix())
	return insertedID(res, err, &j.ID)
}

const jobColumns = `id, author_id, title, company, location, job_type, salary, requirements, deadline, apply_url, created_at`

func (s *Store) GetJob(ctx context.Context, id int64) (model.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

func (s *Store) ListJobs(ctx context.Context, limit int) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC LIMIT ?`, clamp(limit, 1, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func (s *Store) CreateStory(ctx context.Context, st *model.Story) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO stories (author_id, title, body, alumni_name, created_at) VALUES (?, ?, ?, ?, ?)
`, st.AuthorID, st.Title, st.Body, nullIfEmpty(st.AlumniName), st.CreatedAt.Unix())
	return insertedID(res, err, &st.ID)
}

func (s *Store) GetStory(ctx context.Context, id int64) (model.Story, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, author_id, title, body, alumni_name, created_at FROM stories WHERE id = ?`, id)
	return scanStory(row)
}

func (s *Store) ListStories(ctx context.Context, limit int) ([]model.Story, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, author_id, title, body, alumni_name, created_at FROM stories ORDER BY created_at DESC, id DESC LIMIT ?
`, clamp(limit, 1, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Story{}
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) DeleteStory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func insertedID(res sql.Result, err error, dest *int64) (int64, error) {
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	*dest = id
	return id, nil
}

func scanAnnouncement(row scanner) (model.Announcement, error) {
	var a model.Announcement
	var created int64
	if err := row.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &created); err != nil {
		return model.Announcement{}, notFoundIfNoRows(err)
	}
	a.CreatedAt = time.Unix(created, 0).UTC()
	return a, nil
}

func scanEvent(row scanner) (model.Event, error) {
	var e model.Event
	var date sql.NullInt64
	var location, summary sql.NullString
	var created int64
	if err := row.Scan(&e.ID, &e.AuthorID, &e.Name, &date, &location, &summary, &created); err != nil {
		return model.Event{}, notFoundIfNoRows(err)
	}
	e.Date = timePtr(date)
	e.Location = location.String
	e.Summary = summary.String
	e.CreatedAt = time.Unix(created, 0).UTC()
	return e, nil
}

func scanJob(row scanner) (model.Job, error) {
	var j model.Job
	var location, jobType, salary, requirements, applyURL sql.NullString
	var deadline sql.NullInt64
	var created int64
	if err := row.Scan(&j.ID, &j.AuthorID, &j.Title, &j.Company, &location, &jobType, &salary, &requirements, &deadline, &applyURL, &created); err != nil {
		return model.Job{}, notFoundIfNoRows(err)
	}
	j.Location = location.String
	j.Type = jobType.String
	j.Salary = salary.String
	j.Requirements = requirements.String
	j.Deadline = timePtr(deadline)
	j.ApplyURL = applyURL.String
	j.CreatedAt = time.Unix(created, 0).UTC()
	return j, nil
}

func scanStory(row scanner) (model.Story, error) {
	var st model.Story
	var alumni sql.NullString
	var created int64
	if err := row.Scan(&st.ID, &st.AuthorID, &st.Title, &st.Body, &alumni, &created); err != nil {
		return model.Story{}, notFoundIfNoRows(err)
	}
	st.AlumniName = alumni.String
	st.CreatedAt = time.Unix(created, 0).UTC()
	return st, nil
}
