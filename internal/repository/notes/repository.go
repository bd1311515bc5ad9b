package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kotche/notes/infrastructure/tracing"
	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/repository/migrations"
)

var userColumns = []string{"id", "name", "surname", "email", "password_hash", "created_at", "updated_at"}

type DefaultRepository struct {
	db  *sql.DB
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

func NewDefaultRepository(db *sql.DB, dialect string) *DefaultRepository {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if dialect == migrations.DialectPostgres {
		format = squirrel.Dollar
	}

	return &DefaultRepository{
		db:  db,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(format),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (d *DefaultRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, span := tracing.StartSpan(ctx, "FindUserByEmail_repo")
	defer span.End()

	user, err := d.findUser(ctx, squirrel.Eq{"email": email})
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, err
}

func (d *DefaultRepository) FindUserByID(ctx context.Context, userID model.UserID) (*model.User, error) {
	ctx, span := tracing.StartSpan(ctx, "FindUserByID_repo")
	defer span.End()

	user, err := d.findUser(ctx, squirrel.Eq{"id": userID})
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user '%s': %w", userID, err)
	}
	return user, err
}

func (d *DefaultRepository) findUser(ctx context.Context, where squirrel.Eq) (*model.User, error) {
	query, args, err := d.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user := &model.User{}
	err = d.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (d *DefaultRepository) CreateUser(ctx context.Context, user model.User) (model.UserID, error) {
	ctx, span := tracing.StartSpan(ctx, "CreateUser_repo")
	defer span.End()

	now := d.now()
	user.ID = model.UserID(uuid.NewString())

	query, args, err := d.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Surname, user.Email, user.PasswordHash, now, now).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = d.db.ExecContext(ctx, query, args...); err != nil {
		if constraintViolation(err) == violationUnique {
			return "", model.ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

func (d *DefaultRepository) SaveUser(ctx context.Context, user model.User) error {
	ctx, span := tracing.StartSpan(ctx, "SaveUser_repo")
	defer span.End()

	query, args, err := d.sb.Update("users").
		Set("name", user.Name).
		Set("surname", user.Surname).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("updated_at", d.now()).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraintViolation(err) == violationUnique {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to save user '%s': %w", user.ID, err)
	}

	return expectAffected(res, model.ErrUserNotFound)
}

func (d *DefaultRepository) DeleteUser(ctx context.Context, userID model.UserID) error {
	ctx, span := tracing.StartSpan(ctx, "DeleteUser_repo")
	defer span.End()

	query, args, err := d.sb.Delete("users").Where(squirrel.Eq{"id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user '%s': %w", userID, err)
	}

	return expectAffected(res, model.ErrUserNotFound)
}

func (d *DefaultRepository) AppendNote(ctx context.Context, userID model.UserID, text string) (model.NoteID, error) {
	ctx, span := tracing.StartSpan(ctx, "AppendNote_repo")
	defer span.End()

	now := d.now()
	noteID := model.NoteID(uuid.NewString())

	query, args, err := d.sb.Insert("notes").
		Columns("id", "user_id", "text", "created_at", "updated_at").
		Values(noteID, userID, text, now, now).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = d.db.ExecContext(ctx, query, args...); err != nil {
		if constraintViolation(err) == violationForeignKey {
			return "", model.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to append note for user '%s': %w", userID, err)
	}

	return noteID, nil
}

func (d *DefaultRepository) FindNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (*model.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "FindNote_repo")
	defer span.End()

	query, args, err := d.sb.Select("id", "user_id", "text", "created_at", "updated_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID, "id": noteID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	note := &model.Note{}
	err = d.db.QueryRowContext(ctx, query, args...).Scan(&note.ID, &note.UserID, &note.Text, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note '%s' for user '%s': %w", noteID, userID, err)
	}
	return note, nil
}

func (d *DefaultRepository) SaveNote(ctx context.Context, note model.Note) error {
	ctx, span := tracing.StartSpan(ctx, "SaveNote_repo")
	defer span.End()

	query, args, err := d.sb.Update("notes").
		Set("text", note.Text).
		Set("updated_at", d.now()).
		Where(squirrel.Eq{"user_id": note.UserID, "id": note.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save note '%s' for user '%s': %w", note.ID, note.UserID, err)
	}

	return expectAffected(res, model.ErrNoteNotFound)
}

func (d *DefaultRepository) RemoveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) error {
	ctx, span := tracing.StartSpan(ctx, "RemoveNote_repo")
	defer span.End()

	query, args, err := d.sb.Delete("notes").
		Where(squirrel.Eq{"user_id": userID, "id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete note '%s' for user '%s': %w", noteID, userID, err)
	}

	return expectAffected(res, model.ErrNoteNotFound)
}

func (d *DefaultRepository) ListNotes(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "ListNotes_repo")
	defer span.End()

	query, args, err := d.sb.Select("id", "user_id", "text", "created_at", "updated_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var note model.Note
		if err = rows.Scan(&note.ID, &note.UserID, &note.Text, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
