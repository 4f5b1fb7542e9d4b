package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"melodex/internal/models"
)

func TestValidateSong(t *testing.T) {
	tests := []struct {
		name    string
		song    models.Song
		wantErr bool
	}{
		{
			name: "valid song",
			song: models.Song{SongName: "Windowlicker", Artist: "Aphex Twin", HexCode: "1f2937"},
		},
		{
			name:    "missing name",
			song:    models.Song{Artist: "Aphex Twin"},
			wantErr: true,
		},
		{
			name:    "missing artist",
			song:    models.Song{SongName: "Windowlicker"},
			wantErr: true,
		},
		{
			name:    "hex code too long",
			song:    models.Song{SongName: "Windowlicker", Artist: "Aphex Twin", HexCode: "1f2937ff"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSong(tc.song)
			if tc.wantErr && err == nil {
				t.Fatal("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestCreateSong(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO songs (id, song_url, thumbnail_url, artist, song_name, hex_code)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)).
		WithArgs("prechosen-id", "http://media/a.mp3", "http://media/a.jpg", "Artist", "Track", "ff0000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	song, err := s.CreateSong(context.Background(), models.Song{
		ID:           "prechosen-id",
		SongURL:      "http://media/a.mp3",
		ThumbnailURL: "http://media/a.jpg",
		Artist:       "  Artist ",
		SongName:     " Track ",
		HexCode:      "ff0000",
	})
	if err != nil {
		t.Fatalf("CreateSong error: %v", err)
	}

	if song.ID != "prechosen-id" {
		t.Fatalf("expected provided ID to survive, got %q", song.ID)
	}
	if song.Artist != "Artist" || song.SongName != "Track" {
		t.Fatalf("expected trimmed metadata, got %q / %q", song.Artist, song.SongName)
	}

	expectMet(t, mock)
}

func TestCreateSongInvalid(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	_, err := s.CreateSong(context.Background(), models.Song{SongName: "No Artist"})
	if !errors.Is(err, ErrInvalidSong) {
		t.Fatalf("expected ErrInvalidSong, got %v", err)
	}

	expectMet(t, mock)
}

func TestSearchSongsPattern(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, song_url, thumbnail_url, artist, song_name, hex_code
		FROM songs
		WHERE song_name ILIKE $1 OR artist ILIKE $1
	`)).
		WithArgs("%abc%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "song_url", "thumbnail_url", "artist", "song_name", "hex_code",
		}).
			AddRow("s1", "u1", "t1", "abcdef", "Track One", "ff0000").
			AddRow("s2", "u2", "t2", "Artist", "xxabcxx", "00ff00"))

	songs, err := s.SearchSongs(context.Background(), "abc")
	if err != nil {
		t.Fatalf("SearchSongs error: %v", err)
	}

	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}

	expectMet(t, mock)
}

func TestListSongs(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, song_url, thumbnail_url, artist, song_name, hex_code
		FROM songs
	`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "song_url", "thumbnail_url", "artist", "song_name", "hex_code",
		}).AddRow("s1", "u1", "t1", "Artist", "Track", "ff0000"))

	songs, err := s.ListSongs(context.Background())
	if err != nil {
		t.Fatalf("ListSongs error: %v", err)
	}
	if len(songs) != 1 || songs[0].SongName != "Track" {
		t.Fatalf("unexpected songs: %#v", songs)
	}

	expectMet(t, mock)
}
