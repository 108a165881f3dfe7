package client

import (
	"context"
	"fmt"
)

// GetAllSongs loads the whole library. The server sends it in chunks; each
// chunk's continuation token fetches the next, and the last chunk carries
// none.
func (c *Client) GetAllSongs(ctx context.Context) ([]map[string]any, error) {
	var songs []map[string]any
	token := ""

	for {
		res, err := c.doWebCall(ctx, c.wc.LoadAllTracks(token))
		if err != nil {
			return nil, err
		}

		chunk, _ := res["playlist"].([]map[string]any)
		songs = append(songs, chunk...)

		next, _ := res["continuationToken"].(string)
		if next == "" {
			return songs, nil
		}
		token = next
	}
}

// DeleteSongs deletes songs from the library and returns the deleted ids.
func (c *Client) DeleteSongs(ctx context.Context, songIDs []string) ([]string, error) {
	res, err := c.doWebCall(ctx, c.wc.DeleteSong(songIDs, nil, ""))
	if err != nil {
		return nil, err
	}
	ids, _ := res["deleteIds"].([]string)
	return ids, nil
}

// ChangeSongMetadata edits song metadata. Each entry is a partial record
// keyed by canonical field name and must include "id". The server's updated
// records are returned.
func (c *Client) ChangeSongMetadata(ctx context.Context, songs []map[string]any) ([]map[string]any, error) {
	for _, song := range songs {
		if _, ok := song["id"]; !ok {
			return nil, fmt.Errorf("metadata change entry is missing an id")
		}
	}

	res, err := c.doWebCall(ctx, c.wc.ModifyEntries(songs))
	if err != nil {
		return nil, err
	}
	updated, _ := res["songs"].([]map[string]any)
	return updated, nil
}

// SearchResults groups search hits by match category. All three categories
// hold full song records.
type SearchResults struct {
	Artists []map[string]any
	Albums  []map[string]any
	Songs   []map[string]any
}

// Search queries songs, artists and albums.
func (c *Client) Search(ctx context.Context, query string) (SearchResults, error) {
	res, err := c.doWebCall(ctx, c.wc.Search(query))
	if err != nil {
		return SearchResults{}, err
	}

	results, _ := res["results"].(map[string]any)
	category := func(name string) []map[string]any {
		v, _ := results[name].([]map[string]any)
		return v
	}
	return SearchResults{
		Artists: category("artists"),
		Albums:  category("albums"),
		Songs:   category("songs"),
	}, nil
}

// GetStreamURL gets a short-lived URL that serves a song's audio.
func (c *Client) GetStreamURL(ctx context.Context, songID string) (string, error) {
	res, err := c.doWebCall(ctx, c.wc.Play(songID))
	if err != nil {
		return "", err
	}
	u, ok := res["url"].(string)
	if !ok {
		return "", fmt.Errorf("play response carries no url")
	}
	return u, nil
}

// DownloadInfo is the result of a bulk download request.
type DownloadInfo struct {
	URL    string
	Counts []map[string]any
}

// GetDownloadInfo gets a download link and per-song download counts.
func (c *Client) GetDownloadInfo(ctx context.Context, songIDs []string) (DownloadInfo, error) {
	res, err := c.doWebCall(ctx, c.wc.MultiDownload(songIDs))
	if err != nil {
		return DownloadInfo{}, err
	}

	counts, _ := res["downloadCounts"].([]map[string]any)
	u, _ := res["url"].(string)
	return DownloadInfo{URL: u, Counts: counts}, nil
}
