package notes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/repository/migrations"
)

func newTestRepository(t *testing.T) *DefaultRepository {
	t.Helper()

	db, err := OpenDB(context.Background(), migrations.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDefaultRepository(db, migrations.DialectSQLite)
}

func TestRepositoryUsers(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	userID, err := r.CreateUser(ctx, model.User{Name: "John", Surname: "Doe", Email: "jd@mail.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	t.Run("find by email and id", func(t *testing.T) {
		byEmail, err := r.FindUserByEmail(ctx, "jd@mail.com")
		require.NoError(t, err)
		assert.Equal(t, userID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)
		assert.False(t, byEmail.CreatedAt.IsZero())

		byID, err := r.FindUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "John", byID.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.FindUserByEmail(ctx, "nobody@mail.com")
		assert.ErrorIs(t, err, model.ErrUserNotFound)

		_, err = r.FindUserByID(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("unique email", func(t *testing.T) {
		_, err := r.CreateUser(ctx, model.User{Name: "Jane", Surname: "Roe", Email: "jd@mail.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, model.ErrEmailTaken)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("save", func(t *testing.T) {
		otherID, err := r.CreateUser(ctx, model.User{Name: "Jack", Surname: "Wayne", Email: "jw@mail.com", PasswordHash: "y"})
		require.NoError(t, err)

		other, err := r.FindUserByID(ctx, otherID)
		require.NoError(t, err)

		other.Email = "jd@mail.com"
		assert.ErrorIs(t, r.SaveUser(ctx, *other), model.ErrEmailTaken)

		other.Email = "jack@mail.com"
		require.NoError(t, r.SaveUser(ctx, *other))

		saved, err := r.FindUserByEmail(ctx, "jack@mail.com")
		require.NoError(t, err)
		assert.Equal(t, otherID, saved.ID)

		assert.ErrorIs(t, r.SaveUser(ctx, model.User{ID: "missing"}), model.ErrUserNotFound)
	})
}

func TestRepositoryNotes(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	userID, err := r.CreateUser(ctx, model.User{Name: "John", Surname: "Doe", Email: "jd@mail.com", PasswordHash: "hash"})
	require.NoError(t, err)

	var ids []model.NoteID
	for _, text := range []string{"one", "two", "three"} {
		noteID, err := r.AppendNote(ctx, userID, text)
		require.NoError(t, err)
		ids = append(ids, noteID)
	}

	t.Run("list keeps insertion order", func(t *testing.T) {
		list, err := r.ListNotes(ctx, userID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, text := range []string{"one", "two", "three"} {
			assert.Equal(t, ids[i], list[i].ID)
			assert.Equal(t, text, list[i].Text)
			assert.Equal(t, userID, list[i].UserID)
		}
	})

	t.Run("find and save", func(t *testing.T) {
		note, err := r.FindNote(ctx, userID, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "two", note.Text)

		note.Text = "TWO"
		require.NoError(t, r.SaveNote(ctx, *note))

		note, err = r.FindNote(ctx, userID, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "TWO", note.Text)
	})

	t.Run("notes are addressed through the owner", func(t *testing.T) {
		_, err := r.FindNote(ctx, "someone-else", ids[0])
		assert.ErrorIs(t, err, model.ErrNoteNotFound)

		assert.ErrorIs(t, r.RemoveNote(ctx, "someone-else", ids[0]), model.ErrNoteNotFound)
		assert.ErrorIs(t, r.SaveNote(ctx, model.Note{ID: ids[0], UserID: "someone-else", Text: "x"}), model.ErrNoteNotFound)
	})

	t.Run("append to missing user", func(t *testing.T) {
		_, err := r.AppendNote(ctx, "missing", "text")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, r.RemoveNote(ctx, userID, ids[0]))
		assert.ErrorIs(t, r.RemoveNote(ctx, userID, ids[0]), model.ErrNoteNotFound)

		list, err := r.ListNotes(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, r.DeleteUser(ctx, userID))
		assert.ErrorIs(t, r.DeleteUser(ctx, userID), model.ErrUserNotFound)

		list, err := r.ListNotes(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, list)

		var count int
		require.NoError(t, r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&count))
		assert.Zero(t, count)
	})
}

func TestPlaceholderFormat(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect: migrations.DialectPostgres, want: "SELECT id FROM notes WHERE id = $1 AND user_id = $2"},
		{dialect: migrations.DialectSQLite, want: "SELECT id FROM notes WHERE id = ? AND user_id = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			r := NewDefaultRepository(nil, tt.dialect)

			query, args, err := r.sb.Select("id").
				From("notes").
				Where(squirrel.Eq{"user_id": "u1", "id": "n1"}).
				ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []interface{}{"n1", "u1"}, args)
		})
	}
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("/tmp/a.db"))
	assert.Equal(t, "/tmp/a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("/tmp/a.db?mode=rwc"))
}
