package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mbolis/quick-forms/model"
	"github.com/pkg/errors"
)

// SQLite keeps forms and responses as JSON documents in two unrelated tables.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return &SQLite{db}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ListForms(ctx context.Context) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, fields, created_at, updated_at
		FROM form
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list forms")
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, errors.Wrap(rows.Err(), "list forms")
}

func (s *SQLite) GetForm(ctx context.Context, id string) (model.Form, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, fields, created_at, updated_at
		FROM form
		WHERE id = ?`,
		id,
	)
	form, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, notFound("form", id)
	}
	return form, err
}

func (s *SQLite) InsertForm(ctx context.Context, form model.Form) error {
	fields, err := json.Marshal(nonNilFields(form.Fields))
	if err != nil {
		return errors.Wrap(err, "encode fields")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form (id, title, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		form.ID,
		form.Title,
		string(fields),
		form.CreatedAt.UTC(),
		form.UpdatedAt.UTC(),
	)
	return errors.Wrap(err, "insert form")
}

func (s *SQLite) ReplaceForm(ctx context.Context, form model.Form) error {
	fields, err := json.Marshal(nonNilFields(form.Fields))
	if err != nil {
		return errors.Wrap(err, "encode fields")
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE form
		SET
			title = ?,
			fields = ?,
			updated_at = ?
		WHERE id = ?`,
		form.Title,
		string(fields),
		form.UpdatedAt.UTC(),
		form.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update form")
	}
	return verifyAffected(res, "form", form.ID)
}

func (s *SQLite) DeleteForm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete form")
	}
	return verifyAffected(res, "form", id)
}

func (s *SQLite) ListResponses(ctx context.Context, formID string, page Page) ([]model.Response, error) {
	limit := -1
	if page.Limit > 0 {
		limit = page.Limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, answers, submitted_at, updated_at
		FROM response
		WHERE form_id = ?
		ORDER BY submitted_at DESC, rowid DESC
		LIMIT ? OFFSET ?`,
		formID,
		limit,
		page.Offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, errors.Wrap(rows.Err(), "list responses")
}

func (s *SQLite) GetResponse(ctx context.Context, id string) (model.Response, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, form_id, answers, submitted_at, updated_at
		FROM response
		WHERE id = ?`,
		id,
	)
	resp, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Response{}, notFound("response", id)
	}
	return resp, err
}

func (s *SQLite) InsertResponse(ctx context.Context, resp model.Response) error {
	answers, err := json.Marshal(nonNilAnswers(resp.Answers))
	if err != nil {
		return errors.Wrap(err, "encode answers")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (id, form_id, answers, submitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		resp.ID,
		resp.FormID,
		string(answers),
		resp.SubmittedAt.UTC(),
		utcOrNil(resp.UpdatedAt),
	)
	return errors.Wrap(err, "insert response")
}

func (s *SQLite) ReplaceResponse(ctx context.Context, resp model.Response) error {
	answers, err := json.Marshal(nonNilAnswers(resp.Answers))
	if err != nil {
		return errors.Wrap(err, "encode answers")
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE response
		SET
			answers = ?,
			updated_at = ?
		WHERE id = ?`,
		string(answers),
		utcOrNil(resp.UpdatedAt),
		resp.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update response")
	}
	return verifyAffected(res, "response", resp.ID)
}

func (s *SQLite) DeleteResponse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM response WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete response")
	}
	return verifyAffected(res, "response", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner) (model.Form, error) {
	form := model.Form{}
	var fields string
	err := row.Scan(&form.ID, &form.Title, &fields, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return form, err
		}
		return form, errors.Wrap(err, "scan form")
	}
	err = json.Unmarshal([]byte(fields), &form.Fields)
	if err != nil {
		return form, errors.Wrapf(err, "decode fields of form %s", form.ID)
	}
	return form, nil
}

func scanResponse(row scanner) (model.Response, error) {
	resp := model.Response{}
	var answers string
	var updatedAt sql.NullTime
	err := row.Scan(&resp.ID, &resp.FormID, &answers, &resp.SubmittedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, err
		}
		return resp, errors.Wrap(err, "scan response")
	}
	if updatedAt.Valid {
		resp.UpdatedAt = &updatedAt.Time
	}
	err = json.Unmarshal([]byte(answers), &resp.Answers)
	if err != nil {
		return resp, errors.Wrapf(err, "decode answers of response %s", resp.ID)
	}
	return resp, nil
}

func verifyAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n < 1 {
		return notFound(kind, id)
	}
	return nil
}

func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nonNilFields(fields []model.Field) []model.Field {
	if fields == nil {
		return []model.Field{}
	}
	return fields
}

func nonNilAnswers(answers []model.Answer) []model.Answer {
	if answers == nil {
		return []model.Answer{}
	}
	return answers
}
