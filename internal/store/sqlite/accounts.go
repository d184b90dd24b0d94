package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

const accountColumns = `id, role, email, first_name, last_name, password_hash, admin_code, graduation_year, course, bio, created_at, updated_at`

func (s *Store) CreateAccount(ctx context.Context, account *model.Account) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var adminCode any
		if account.Role == model.RoleAdmin {
			var seq int64
			row := tx.QueryRowContext(ctx, `UPDATE counters SET value = value + 1 WHERE name = 'admin_code' RETURNING value`)
			if err := row.Scan(&seq); err != nil {
				return fmt.Errorf("next admin code: %w", err)
			}
			account.AdminCode = fmt.Sprintf("ADM%03d", seq)
			adminCode = account.AdminCode
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO accounts (role, email, first_name, last_name, password_hash, admin_code, graduation_year, course, bio, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, string(account.Role), account.Email, account.FirstName, account.LastName, account.PasswordHash, adminCode,
			nullIfZero(account.GraduationYear), nullIfEmpty(account.Course), nullIfEmpty(account.Bio),
			account.CreatedAt.Unix(), account.CreatedAt.Unix())
		if err != nil {
			if isUniqueViolation(err) && strings.Contains(err.Error(), "email") {
				return store.ErrDuplicateEmail
			}
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if account.Role == model.RoleAdmin {
			account.AdminCode = ""
		}
		return 0, err
	}
	account.ID = id
	account.UpdatedAt = account.CreatedAt
	return id, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (s *Store) FindAccountByEmail(ctx context.Context, role model.Role, email string) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ? AND role = ?`, email, string(role))
	return scanAccount(row)
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`, passwordHash, now.Unix(), id)
	return affectedOrNotFound(res, err)
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate, now time.Time) (model.Account, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now.Unix()}
	if update.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *update.FirstName)
	}
	if update.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *update.LastName)
	}
	if update.GraduationYear != nil {
		sets = append(sets, "graduation_year = ?")
		args = append(args, nullIfZero(*update.GraduationYear))
	}
	if update.Course != nil {
		sets = append(sets, "course = ?")
		args = append(args, nullIfEmpty(*update.Course))
	}
	if update.Bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, nullIfEmpty(*update.Bio))
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err := affectedOrNotFound(res, err); err != nil {
		return model.Account{}, err
	}
	return s.GetAccount(ctx, id)
}

func (s *Store) ListAccounts(ctx context.Context, role model.Role, limit, offset int) ([]model.Account, int, error) {
	limit = clamp(limit, 1, 200)
	if offset < 0 {
		offset = 0
	}
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE role = ?`, string(role)).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT `+accountColumns+`
FROM accounts
WHERE role = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`, string(role), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	accounts, err := collectAccounts(rows)
	return accounts, total, err
}

func (s *Store) SearchAccounts(ctx context.Context, role model.Role, query string, limit int) ([]model.Account, error) {
	limit = clamp(limit, 1, 100)
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	rows, err := s.db.QueryContext(ctx, `
SELECT `+accountColumns+`
FROM accounts
WHERE role = ?
  AND (lower(first_name) LIKE ? ESCAPE '\' OR lower(last_name) LIKE ? ESCAPE '\' OR lower(email) LIKE ? ESCAPE '\')
ORDER BY first_name, last_name, id
LIMIT ?
`, string(role), pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func (s *Store) SetResetMarker(ctx context.Context, id int64, marker model.ResetMarker) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE accounts SET reset_nonce_hash = ?, reset_expires_at = ?
WHERE id = ?
`, marker.NonceHash, marker.ExpiresAt.Unix(), id)
	return affectedOrNotFound(res, err)
}

func (s *Store) ConsumeResetMarker(ctx context.Context, id int64, nonceHash, passwordHash string, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE accounts
SET password_hash = ?, reset_nonce_hash = NULL, reset_expires_at = NULL, updated_at = ?
WHERE id = ? AND reset_nonce_hash = ? AND reset_expires_at > ?
`, passwordHash, now.Unix(), id, nonceHash, now.Unix())
	return affectedOrNotFound(res, err)
}

func collectAccounts(rows *sql.Rows) ([]model.Account, error) {
	defer rows.Close()
	var out []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAccount(row scanner) (model.Account, error) {
	var a model.Account
	var role string
	var adminCode, course, bio sql.NullString
	var gradYear sql.NullInt64
	var created, updated int64
	if err := row.Scan(&a.ID, &role, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash, &adminCode, &gradYear, &course, &bio, &created, &updated); err != nil {
		return model.Account{}, notFoundIfNoRows(err)
	}
	a.Role = model.Role(role)
	a.AdminCode = adminCode.String
	a.GraduationYear = int(gradYear.Int64)
	a.Course = course.String
	a.Bio = bio.String
	a.CreatedAt = time.Unix(created, 0).UTC()
	a.UpdatedAt = time.Unix(updated, 0).UTC()
	return a, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
