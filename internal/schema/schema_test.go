package schema_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	goskema "github.com/reoring/goskema"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/schema"
)

// validSong returns a record with every non-optional registry field set.
func validSong() map[string]any {
	return map[string]any{
		"rating":          5,
		"composer":        "",
		"album":           "The Album",
		"albumArtist":     "The Artist",
		"genre":           "Electronic",
		"name":            "A Song",
		"artist":          "The Artist",
		"playCount":       3,
		"durationMillis":  215000,
		"comment":         "",
		"id":              "d4c06bf2-2ba4-3f0f-83ea-a38a0a9d4b67",
		"deleted":         false,
		"creationDate":    1330401179533,
		"type":            2,
		"beatsPerMinute":  0,
		"url":             "",
		"title":           "A Song",
		"titleNorm":       "a song",
		"albumArtistNorm": "the artist",
		"albumNorm":       "the album",
		"artistNorm":      "the artist",
		"lastPlayed":      1330401190000,
	}
}

func parseSong(t *testing.T, song map[string]any) error {
	t.Helper()

	b, err := json.Marshal(song)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_, err = goskema.ParseFrom(context.Background(), schema.Song(), goskema.JSONBytes(b))
	return err
}

func TestSong(t *testing.T) {
	t.Run("complete record validates", func(t *testing.T) {
		if err := parseSong(t, validSong()); err != nil {
			t.Errorf("complete record failed validation: %v", err)
		}
	})

	t.Run("optional fields may be present", func(t *testing.T) {
		song := validSong()
		song["disc"] = 1
		song["year"] = 2009
		song["track"] = 7
		song["totalTracks"] = 12
		song["totalDiscs"] = 1
		song["albumArtUrl"] = "//example.invalid/art"
		song["playlistEntryId"] = "e8c9d5a2"
		if err := parseSong(t, song); err != nil {
			t.Errorf("record with optional fields failed validation: %v", err)
		}
	})

	t.Run("missing required field fails", func(t *testing.T) {
		song := validSong()
		delete(song, "id")
		if err := parseSong(t, song); err == nil {
			t.Error("record without id should fail validation")
		}
	})

	t.Run("missing optional field passes", func(t *testing.T) {
		if err := parseSong(t, validSong()); err != nil {
			t.Errorf("record without optional fields failed validation: %v", err)
		}
	})

	t.Run("unknown key fails closed", func(t *testing.T) {
		song := validSong()
		song["surpriseField"] = "hello"
		if err := parseSong(t, song); err == nil {
			t.Error("record with unknown key should fail validation")
		}
	})

	t.Run("wrong type fails", func(t *testing.T) {
		song := validSong()
		song["durationMillis"] = "215000"
		if err := parseSong(t, song); err == nil {
			t.Error("string durationMillis should fail validation")
		}
	})
}

func TestSongArray(t *testing.T) {
	t.Run("array of records validates", func(t *testing.T) {
		b, err := json.Marshal([]map[string]any{validSong(), validSong()})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		songs, err := goskema.ParseFrom(context.Background(), schema.SongArray(), goskema.JSONBytes(b))
		if err != nil {
			t.Fatalf("array failed validation: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("got %d songs, want 2", len(songs))
		}
	})

	t.Run("bad element fails the array", func(t *testing.T) {
		bad := validSong()
		delete(bad, "name")
		b, err := json.Marshal([]map[string]any{validSong(), bad})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if _, err := goskema.ParseFrom(context.Background(), schema.SongArray(), goskema.JSONBytes(b)); err == nil {
			t.Error("array with invalid element should fail validation")
		}
	})
}
