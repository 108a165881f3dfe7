package webclient

import (
	"github.com/charmbracelet/log"
	g "github.com/reoring/goskema/dsl"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/expectations"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/schema"
)

// Protocol builds transactions for all supported web client calls.
type Protocol struct {
	log *log.Logger
}

// New creates a Protocol that logs through the given logger.
func New(logger *log.Logger) *Protocol {
	return &Protocol{log: logger}
}

// AddPlaylist creates a new playlist with the given title.
func (p *Protocol) AddPlaylist(title string) *Transaction {
	return &Transaction{
		Name:    "addplaylist",
		Request: map[string]any{"title": title},
		Response: g.Object().
			Field("id", g.StringOf[string]()).
			Field("title", g.StringOf[string]()).
			Field("success", g.BoolOf[bool]()).
			Require("id", "title", "success").
			UnknownStrip().
			MustBuild(),
	}
}

// AddToPlaylist adds songs to an existing playlist.
func (p *Protocol) AddToPlaylist(playlistID string, songIDs []string) *Transaction {
	entry := g.Object().
		Field("songId", g.StringOf[string]()).
		Field("playlistEntryId", g.StringOf[string]()).
		Require("songId", "playlistEntryId").
		UnknownStrip().
		MustBuild()

	return &Transaction{
		Name:    "addtoplaylist",
		Request: map[string]any{"playlistId": playlistID, "songIds": songIDs},
		Response: g.Object().
			Field("playlistId", g.StringOf[string]()).
			Field("songIds", g.ArrayOf(entry)).
			Require("playlistId", "songIds").
			UnknownStrip().
			MustBuild(),
	}
}

// ModifyPlaylist renames a playlist. The response body is empty.
func (p *Protocol) ModifyPlaylist(playlistID, newName string) *Transaction {
	return &Transaction{
		Name:     "modifyplaylist",
		Request:  map[string]any{"playlistId": playlistID, "playlistName": newName},
		Response: g.Object().UnknownStrict().MustBuild(),
	}
}

// DeletePlaylist deletes a playlist.
func (p *Protocol) DeletePlaylist(playlistID string) *Transaction {
	return &Transaction{
		Name:    "deleteplaylist",
		Request: map[string]any{"id": playlistID},
		Response: g.Object().
			Field("deleteId", g.StringOf[string]()).
			Require("deleteId").
			UnknownStrip().
			MustBuild(),
	}
}

// DeleteSong deletes songs from the library, or from a playlist when
// entryIDs and playlistID are given. A "all" playlist id means deletion from
// the library; that is the default when playlistID is empty.
func (p *Protocol) DeleteSong(songIDs, entryIDs []string, playlistID string) *Transaction {
	if len(entryIDs) == 0 {
		entryIDs = []string{""}
	}
	if playlistID == "" {
		playlistID = "all"
	}

	return &Transaction{
		Name:    "deletesong",
		Request: map[string]any{"songIds": songIDs, "entryIds": entryIDs, "listId": playlistID},
		Response: g.Object().
			Field("listId", g.StringOf[string]()).
			Field("deleteIds", g.ArrayOf(g.String())).
			Require("listId", "deleteIds").
			UnknownStrip().
			MustBuild(),
	}
}

// LoadAllTracks loads one chunk of the library. The first request sends no
// continuation token; the last response carries none.
func (p *Protocol) LoadAllTracks(contToken string) *Transaction {
	req := map[string]any{}
	if contToken != "" {
		req["continuationToken"] = contToken
	}

	return &Transaction{
		Name:    "loadalltracks",
		Request: req,
		Response: g.Object().
			Field("continuation", g.BoolOf[bool]()).
			Field("differentialUpdate", g.BoolOf[bool]()).
			Field("playlistId", g.StringOf[string]()).
			Field("requestTime", g.IntOf[int]()).
			Field("playlist", schema.SongArrayAdapter()).
			Field("continuationToken", g.StringOf[string]()).
			Require("continuation", "differentialUpdate", "playlistId", "requestTime", "playlist").
			UnknownStrip().
			MustBuild(),
	}
}

// LoadPlaylist loads the tracks of a playlist. Tracks carry an entry id.
func (p *Protocol) LoadPlaylist(playlistID string) *Transaction {
	return &Transaction{
		Name:    "loadplaylist",
		Request: map[string]any{"id": playlistID},
		Response: g.Object().
			Field("continuation", g.BoolOf[bool]()).
			Field("playlist", schema.SongArrayAdapter()).
			Field("playlistId", g.StringOf[string]()).
			Field("unavailableTrackCount", g.IntOf[int]()).
			Require("continuation", "playlist", "playlistId", "unavailableTrackCount").
			UnknownStrip().
			MustBuild(),
	}
}

// ModifyEntries edits song metadata. Each song is a partial record keyed by
// canonical field name and must include "id". Setting a field outside its
// allowed values is logged as a warning but still sent; the server has the
// final say.
func (p *Protocol) ModifyEntries(songs []map[string]any) *Transaction {
	for _, song := range songs {
		for key, value := range song {
			e, ok := expectations.Get(key)
			if !ok || e.Allows(value) {
				continue
			}
			p.log.Warn("setting field to unallowed value",
				"field", key, "value", value, "id", song["id"])
		}
	}

	return &Transaction{
		Name:    "modifyentries",
		Request: map[string]any{"entries": songs},
		Response: g.Object().
			Field("success", g.BoolOf[bool]()).
			Field("songs", schema.SongArrayAdapter()).
			Require("success", "songs").
			UnknownStrip().
			MustBuild(),
	}
}

// MultiDownload gets download links and counts for songs.
func (p *Protocol) MultiDownload(songIDs []string) *Transaction {
	count := g.Object().
		Field("id", g.IntOf[int]()).
		Require("id").
		UnknownStrip().
		MustBuild()

	return &Transaction{
		Name:    "multidownload",
		Request: map[string]any{"songIds": songIDs},
		Response: g.Object().
			Field("downloadCounts", g.ArrayOf(count)).
			Field("url", g.StringOf[string]()).
			Require("downloadCounts", "url").
			UnknownStrip().
			MustBuild(),
	}
}

// Play gets a URL that holds a file to stream. The request body is empty and
// the response is not validated.
func (p *Protocol) Play(songID string) *Transaction {
	return &Transaction{
		Name:      "play",
		streaming: true,
		songID:    songID,
	}
}

// Search queries songs, artists and albums. Punctuation in the query is
// ignored server-side.
func (p *Protocol) Search(query string) *Transaction {
	results := g.Object().
		Field("artists", schema.SongArrayAdapter()).
		Field("albums", schema.SongArrayAdapter()).
		Field("songs", schema.SongArrayAdapter()).
		Require("artists", "albums", "songs").
		UnknownStrip().
		MustBuild()

	return &Transaction{
		Name:    "search",
		Request: map[string]any{"q": query},
		Response: g.Object().
			Field("results", g.SchemaOf(results)).
			Require("results").
			UnknownStrip().
			MustBuild(),
	}
}
