package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return New(db), mock, func() { db.Close() }
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

const playlistSongsQuery = `
		SELECT s.id, s.song_name, s.artist, s.song_url, s.thumbnail_url, s.hex_code, ps.position, ps.added_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position::numeric ASC, ps.added_at ASC
	`

const getPlaylistQuery = `
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE id = $1 AND user_id = $2
	`

const ownershipQuery = `
		SELECT 1
		FROM playlists
		WHERE id = $1 AND user_id = $2
	`

func playlistSongRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "song_name", "artist", "song_url", "thumbnail_url", "hex_code", "position", "added_at",
	})
}

func TestCreatePlaylist(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO playlists (id, name, description, user_id, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`)).
		WithArgs(sqlmock.AnyArg(), "Road Trip", nil, "user-1", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	playlist, err := s.CreatePlaylist(context.Background(), "user-1", "Road Trip", "", false)
	if err != nil {
		t.Fatalf("CreatePlaylist error: %v", err)
	}

	if playlist.ID == "" {
		t.Fatal("expected generated playlist ID")
	}
	if playlist.Name != "Road Trip" || playlist.UserID != "user-1" {
		t.Fatalf("unexpected playlist: %#v", playlist)
	}
	if playlist.SongCount != 0 || len(playlist.Songs) != 0 {
		t.Fatalf("expected empty song list, got %#v", playlist.Songs)
	}
	if !playlist.CreatedAt.Equal(playlist.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at on create")
	}

	expectMet(t, mock)
}

func TestCreatePlaylistRequiresName(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	if _, err := s.CreatePlaylist(context.Background(), "user-1", "", "", false); err == nil {
		t.Fatal("expected error for empty name")
	}

	expectMet(t, mock)
}

func TestGetPlaylistNotFound(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(getPlaylistQuery)).
		WithArgs("p1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetPlaylist(context.Background(), "p1", "intruder")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	expectMet(t, mock)
}

func TestGetPlaylistHydratesOrderedSongs(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(getPlaylistQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "created_at", "updated_at",
		}).AddRow("p1", "Road Trip", nil, "user-1", false, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p1").
		WillReturnRows(playlistSongRows().
			AddRow("s1", "First", "A", "u1", "t1", "ff0000", "1", now).
			AddRow("s2", "Second", "B", "u2", "t2", "00ff00", "2", now).
			AddRow("s3", "Third", "C", "u3", "t3", "0000ff", "3", now))

	playlist, err := s.GetPlaylist(context.Background(), "p1", "user-1")
	if err != nil {
		t.Fatalf("GetPlaylist error: %v", err)
	}

	if playlist.SongCount != 3 || len(playlist.Songs) != 3 {
		t.Fatalf("expected 3 songs, got %d", playlist.SongCount)
	}
	for i, want := range []string{"1", "2", "3"} {
		if playlist.Songs[i].Position != want {
			t.Fatalf("song %d: expected position %q, got %q", i, want, playlist.Songs[i].Position)
		}
	}
	if playlist.Songs[0].SongName != "First" || playlist.Songs[2].SongName != "Third" {
		t.Fatalf("unexpected song order: %#v", playlist.Songs)
	}

	expectMet(t, mock)
}

func TestGetPlaylistHydratesOversizedPositions(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(getPlaylistQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "created_at", "updated_at",
		}).AddRow("p1", "Road Trip", nil, "user-1", false, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p1").
		WillReturnRows(playlistSongRows().
			AddRow("s1", "First", "A", "u1", "t1", "ff0000", "2", now).
			AddRow("s2", "Last", "B", "u2", "t2", "00ff00", "3000000000", now))

	playlist, err := s.GetPlaylist(context.Background(), "p1", "user-1")
	if err != nil {
		t.Fatalf("GetPlaylist error: %v", err)
	}

	if len(playlist.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(playlist.Songs))
	}
	if playlist.Songs[1].Position != "3000000000" {
		t.Fatalf("expected oversized position to survive verbatim, got %q", playlist.Songs[1].Position)
	}

	expectMet(t, mock)
}

func TestUpdatePlaylistPartial(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()
	name := "Renamed"

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    is_public = COALESCE($3, is_public),
		    updated_at = $4
		WHERE id = $5 AND user_id = $6
	`)).
		WithArgs("Renamed", nil, nil, sqlmock.AnyArg(), "p1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(getPlaylistQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "created_at", "updated_at",
		}).AddRow("p1", "Renamed", "old description", "user-1", true, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p1").
		WillReturnRows(playlistSongRows())

	playlist, err := s.UpdatePlaylist(context.Background(), "p1", "user-1", &name, nil, nil)
	if err != nil {
		t.Fatalf("UpdatePlaylist error: %v", err)
	}

	if playlist.Name != "Renamed" {
		t.Fatalf("expected renamed playlist, got %q", playlist.Name)
	}
	if playlist.Description != "old description" || !playlist.IsPublic {
		t.Fatalf("untouched fields changed: %#v", playlist)
	}

	expectMet(t, mock)
}

func TestUpdatePlaylistNotFound(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	name := "X"
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    is_public = COALESCE($3, is_public),
		    updated_at = $4
		WHERE id = $5 AND user_id = $6
	`)).
		WithArgs("X", nil, nil, sqlmock.AnyArg(), "missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdatePlaylist(context.Background(), "missing", "user-1", &name, nil, nil)
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	expectMet(t, mock)
}

func TestDeletePlaylist(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1 AND user_id = $2`)).
		WithArgs("p1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeletePlaylist(context.Background(), "p1", "user-1"); err != nil {
		t.Fatalf("DeletePlaylist error: %v", err)
	}

	expectMet(t, mock)
}

func TestDeletePlaylistWrongOwner(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1 AND user_id = $2`)).
		WithArgs("p1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeletePlaylist(context.Background(), "p1", "intruder")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	expectMet(t, mock)
}

const addSongInsert = `
		INSERT INTO playlist_songs (id, playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, COALESCE($4, (SELECT (COUNT(*) + 1)::text FROM playlist_songs WHERE playlist_id = $2)), $5)
	`

func TestAddSongAppendsAtEnd(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(addSongInsert)).
		WithArgs(sqlmock.AnyArg(), "p1", "s1", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.AddSongToPlaylist(context.Background(), "p1", "user-1", "s1", nil); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	expectMet(t, mock)
}

func TestAddSongExplicitPosition(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(addSongInsert)).
		WithArgs(sqlmock.AnyArg(), "p1", "s1", "5", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	position := 5
	if err := s.AddSongToPlaylist(context.Background(), "p1", "user-1", "s1", &position); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	expectMet(t, mock)
}

func TestAddSongExplicitPositionBeyondInt4(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(addSongInsert)).
		WithArgs(sqlmock.AnyArg(), "p1", "s1", "3000000000", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	position := 3000000000
	if err := s.AddSongToPlaylist(context.Background(), "p1", "user-1", "s1", &position); err != nil {
		t.Fatalf("AddSongToPlaylist error: %v", err)
	}

	expectMet(t, mock)
}

func TestAddSongDuplicate(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(addSongInsert)).
		WithArgs(sqlmock.AnyArg(), "p1", "s1", nil, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.AddSongToPlaylist(context.Background(), "p1", "user-1", "s1", nil)
	if !errors.Is(err, ErrSongAlreadyInPlaylist) {
		t.Fatalf("expected ErrSongAlreadyInPlaylist, got %v", err)
	}

	expectMet(t, mock)
}

func TestAddSongPlaylistNotFound(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("missing", "user-1").
		WillReturnError(sql.ErrNoRows)

	err := s.AddSongToPlaylist(context.Background(), "missing", "user-1", "s1", nil)
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	expectMet(t, mock)
}

func TestRemoveSong(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs("p1", "s2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.RemoveSongFromPlaylist(context.Background(), "p1", "user-1", "s2"); err != nil {
		t.Fatalf("RemoveSongFromPlaylist error: %v", err)
	}

	expectMet(t, mock)
}

func TestRemoveSongNotInPlaylist(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(ownershipQuery)).
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs("p1", "absent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.RemoveSongFromPlaylist(context.Background(), "p1", "user-1", "absent")
	if !errors.Is(err, ErrSongNotInPlaylist) {
		t.Fatalf("expected ErrSongNotInPlaylist, got %v", err)
	}

	expectMet(t, mock)
}

func TestListPlaylistsHydratesEach(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "created_at", "updated_at",
		}).
			AddRow("p1", "First", nil, "user-1", false, now, now).
			AddRow("p2", "Second", "desc", "user-1", true, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p1").
		WillReturnRows(playlistSongRows().AddRow("s1", "Song", "A", "u", "t", "ff0000", "1", now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p2").
		WillReturnRows(playlistSongRows())

	playlists, err := s.ListPlaylists(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListPlaylists error: %v", err)
	}

	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].SongCount != 1 || playlists[1].SongCount != 0 {
		t.Fatalf("unexpected song counts: %d, %d", playlists[0].SongCount, playlists[1].SongCount)
	}
	if playlists[1].Description != "desc" {
		t.Fatalf("expected description to survive hydration, got %q", playlists[1].Description)
	}

	expectMet(t, mock)
}

func TestListPublicPlaylists(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE is_public = TRUE
		ORDER BY created_at DESC, id ASC
	`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "user_id", "is_public", "created_at", "updated_at",
		}).AddRow("p9", "Shared", nil, "someone-else", true, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(playlistSongsQuery)).
		WithArgs("p9").
		WillReturnRows(playlistSongRows())

	playlists, err := s.ListPublicPlaylists(context.Background())
	if err != nil {
		t.Fatalf("ListPublicPlaylists error: %v", err)
	}

	if len(playlists) != 1 || !playlists[0].IsPublic {
		t.Fatalf("unexpected playlists: %#v", playlists)
	}

	expectMet(t, mock)
}
