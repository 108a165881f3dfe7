package sjapi

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// The kind discriminator values the dispatch table knows.
const (
	KindTrack             = "sj#track"
	KindTrackList         = "sj#trackList"
	KindPlaylist          = "sj#playlist"
	KindPlaylistList      = "sj#playlistList"
	KindPlaylistEntry     = "sj#playlistEntry"
	KindPlaylistEntryList = "sj#playlistEntryList"
)

// Record is a single decoded entity, keyed by its response fields.
type Record map[string]any

// List is a decoded collection.
type List struct {
	Items         []Record
	NextPageToken string
}

// kindModels dispatches a decoded response body on its kind. List kinds
// yield a [List]; single kinds yield a [Record].
var kindModels = map[string]func(map[string]any) (any, error){
	KindTrack:             decodeRecord,
	KindPlaylist:          decodeRecord,
	KindPlaylistEntry:     decodeRecord,
	KindTrackList:         decodeList,
	KindPlaylistList:      decodeList,
	KindPlaylistEntryList: decodeList,
}

// Decode parses a response body and dispatches on its kind discriminator.
// A kind outside the table is a hard failure; it is never coerced to a
// best-fit model.
func Decode(raw []byte) (any, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	kind, _ := m["kind"].(string)
	build, ok := kindModels[kind]
	if !ok {
		return nil, &shared.UnknownKindError{Kind: kind}
	}
	return build(m)
}

// Tracks decodes a response from the track family: a single [Record] or the
// item list of a track collection.
func Tracks(raw []byte) (any, error) {
	return decodeFamily(raw, KindTrack, KindTrackList)
}

// Playlists decodes a response from the playlist family.
func Playlists(raw []byte) (any, error) {
	return decodeFamily(raw, KindPlaylist, KindPlaylistList)
}

// PlaylistEntries decodes a response from the playlist entry family.
func PlaylistEntries(raw []byte) (any, error) {
	return decodeFamily(raw, KindPlaylistEntry, KindPlaylistEntryList)
}

func decodeFamily(raw []byte, single, list string) (any, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	switch kind, _ := m["kind"].(string); kind {
	case single:
		return decodeRecord(m)
	case list:
		l, err := decodeList(m)
		if err != nil {
			return nil, err
		}
		return l.(List).Items, nil
	default:
		return nil, &shared.UnknownKindError{Kind: kind}
	}
}

func decodeObject(raw []byte) (map[string]any, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, &shared.ParseError{Input: string(raw), Err: err}
	}
	return m, nil
}

func decodeRecord(m map[string]any) (any, error) {
	return Record(m), nil
}

func decodeList(m map[string]any) (any, error) {
	list := List{}

	if tok, ok := m["nextPageToken"].(string); ok {
		list.NextPageToken = tok
	}

	data, _ := m["data"].(map[string]any)
	items, _ := data["items"].([]any)
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		list.Items = append(list.Items, Record(rec))
	}

	return list, nil
}
