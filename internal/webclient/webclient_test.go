package webclient_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/webclient"
)

const baseURL = "https://music.google.com/music/"

func newProtocol() *webclient.Protocol {
	return webclient.New(shared.NewLogger(bytes.NewBuffer(nil)))
}

func TestURL(t *testing.T) {
	p := newProtocol()

	t.Run("services calls carry the session token", func(t *testing.T) {
		got := p.AddPlaylist("mix").URL(baseURL, "sometoken")
		want := baseURL + "services/addplaylist?u=0&xt=sometoken"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})

	t.Run("streaming call overrides suburl and token", func(t *testing.T) {
		got := p.Play("song123").URL(baseURL, "sometoken")
		want := baseURL + "play?u=0&pt=e&songid=song123"
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
		if strings.Contains(got, "xt=") {
			t.Error("streaming URL should not carry the session token")
		}
	})
}

func TestTransactionRequests(t *testing.T) {
	p := newProtocol()

	t.Run("addplaylist", func(t *testing.T) {
		tx := p.AddPlaylist("road trip")
		req := tx.Request.(map[string]any)
		if req["title"] != "road trip" {
			t.Errorf("title = %v, want road trip", req["title"])
		}
	})

	t.Run("deletesong defaults", func(t *testing.T) {
		tx := p.DeleteSong([]string{"s1"}, nil, "")
		req := tx.Request.(map[string]any)
		if req["listId"] != "all" {
			t.Errorf("listId = %v, want all", req["listId"])
		}
		entries := req["entryIds"].([]string)
		if len(entries) != 1 || entries[0] != "" {
			t.Errorf("entryIds = %v, want single empty string", entries)
		}
	})

	t.Run("loadalltracks omits empty continuation token", func(t *testing.T) {
		tx := p.LoadAllTracks("")
		req := tx.Request.(map[string]any)
		if _, ok := req["continuationToken"]; ok {
			t.Error("first chunk request should not carry a continuation token")
		}

		tx = p.LoadAllTracks("tok")
		req = tx.Request.(map[string]any)
		if req["continuationToken"] != "tok" {
			t.Errorf("continuationToken = %v, want tok", req["continuationToken"])
		}
	})

	t.Run("play has no body and no response schema", func(t *testing.T) {
		tx := p.Play("song123")
		if tx.Request != nil {
			t.Error("play request body should be empty")
		}
		if tx.Response != nil {
			t.Error("play response should be unvalidated")
		}
	})
}

func TestDecodeResponse(t *testing.T) {
	ctx := context.Background()
	p := newProtocol()

	t.Run("addtoplaylist round trip", func(t *testing.T) {
		tx := p.AddToPlaylist("pl1", []string{"s1", "s2"})
		body := []byte(`{"playlistId":"pl1","songIds":[` +
			`{"songId":"s1","playlistEntryId":"e1"},` +
			`{"songId":"s2","playlistEntryId":"e2"}]}`)

		m, err := webclient.DecodeResponse(ctx, tx, body)
		if err != nil {
			t.Fatalf("DecodeResponse returned error: %v", err)
		}
		if m["playlistId"] != "pl1" {
			t.Errorf("playlistId = %v, want pl1", m["playlistId"])
		}
		entries := m["songIds"].([]map[string]any)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0]["playlistEntryId"] != "e1" {
			t.Errorf("entry 0 playlistEntryId = %v, want e1", entries[0]["playlistEntryId"])
		}
	})

	t.Run("server failure surfaces before validation", func(t *testing.T) {
		tx := p.AddPlaylist("mix")
		_, err := webclient.DecodeResponse(ctx, tx, []byte(`{"success":false}`))

		var cf *shared.CallFailure
		if !errors.As(err, &cf) {
			t.Fatalf("error is %T, want *shared.CallFailure", err)
		}
		if cf.Call != "addplaylist" {
			t.Errorf("CallFailure.Call = %q, want addplaylist", cf.Call)
		}
	})

	t.Run("schema mismatch", func(t *testing.T) {
		tx := p.DeletePlaylist("pl1")
		_, err := webclient.DecodeResponse(ctx, tx, []byte(`{"deleteId":42}`))

		var sv *shared.SchemaValidationError
		if !errors.As(err, &sv) {
			t.Fatalf("error is %T, want *shared.SchemaValidationError", err)
		}
		if sv.Call != "deleteplaylist" {
			t.Errorf("SchemaValidationError.Call = %q, want deleteplaylist", sv.Call)
		}
	})

	t.Run("lenient body is repaired before decoding", func(t *testing.T) {
		tx := p.Play("song123")
		m, err := webclient.DecodeResponse(ctx, tx, []byte(`{"url":"http://example.invalid/s","extra":[1,,2]}`))
		if err != nil {
			t.Fatalf("DecodeResponse returned error: %v", err)
		}
		if m["url"] != "http://example.invalid/s" {
			t.Errorf("url = %v", m["url"])
		}
		extra := m["extra"].([]any)
		if len(extra) != 3 || extra[1] != nil {
			t.Errorf("extra = %v, want [1 <nil> 2]", extra)
		}
	})

	t.Run("unparseable body", func(t *testing.T) {
		tx := p.DeletePlaylist("pl1")
		_, err := webclient.DecodeResponse(ctx, tx, []byte(`<html>sign in</html>`))

		var pe *shared.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error is %T, want *shared.ParseError", err)
		}
	})
}

func TestModifyEntriesWarnings(t *testing.T) {
	t.Run("unallowed value warns but still builds", func(t *testing.T) {
		var buf bytes.Buffer
		p := webclient.New(shared.NewLogger(&buf))

		tx := p.ModifyEntries([]map[string]any{{"id": "s1", "rating": 3}})
		if tx == nil {
			t.Fatal("transaction should still be built")
		}
		if !strings.Contains(buf.String(), "unallowed") {
			t.Errorf("expected a warning, log output: %q", buf.String())
		}

		req := tx.Request.(map[string]any)
		songs := req["entries"].([]map[string]any)
		if songs[0]["rating"] != 3 {
			t.Error("the unallowed value should still be sent")
		}
	})

	t.Run("allowed value does not warn", func(t *testing.T) {
		var buf bytes.Buffer
		p := webclient.New(shared.NewLogger(&buf))

		p.ModifyEntries([]map[string]any{{"id": "s1", "rating": 5}})
		if strings.Contains(buf.String(), "unallowed") {
			t.Errorf("unexpected warning: %q", buf.String())
		}
	})
}
