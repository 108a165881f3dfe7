package client

import (
	"context"
	"fmt"
)

// CreatePlaylist creates a playlist and returns its new id.
func (c *Client) CreatePlaylist(ctx context.Context, title string) (string, error) {
	res, err := c.doWebCall(ctx, c.wc.AddPlaylist(title))
	if err != nil {
		return "", err
	}
	return res["id"].(string), nil
}

// DeletePlaylist deletes a playlist and returns the deleted id.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) (string, error) {
	res, err := c.doWebCall(ctx, c.wc.DeletePlaylist(playlistID))
	if err != nil {
		return "", err
	}
	return res["deleteId"].(string), nil
}

// RenamePlaylist changes a playlist's name.
func (c *Client) RenamePlaylist(ctx context.Context, playlistID, newName string) error {
	_, err := c.doWebCall(ctx, c.wc.ModifyPlaylist(playlistID, newName))
	return err
}

// PlaylistAddition records one song added to a playlist.
type PlaylistAddition struct {
	SongID  string
	EntryID string
}

// AddSongsToPlaylist adds songs to a playlist and returns the new entries in
// request order.
func (c *Client) AddSongsToPlaylist(ctx context.Context, playlistID string, songIDs []string) ([]PlaylistAddition, error) {
	res, err := c.doWebCall(ctx, c.wc.AddToPlaylist(playlistID, songIDs))
	if err != nil {
		return nil, err
	}

	entries, ok := res["songIds"].([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("addtoplaylist response has unexpected songIds shape")
	}

	additions := make([]PlaylistAddition, 0, len(entries))
	for _, e := range entries {
		additions = append(additions, PlaylistAddition{
			SongID:  e["songId"].(string),
			EntryID: e["playlistEntryId"].(string),
		})
	}
	return additions, nil
}

// RemoveSongsFromPlaylist removes entries from a playlist and returns the
// deleted song ids.
func (c *Client) RemoveSongsFromPlaylist(ctx context.Context, playlistID string, songIDs, entryIDs []string) ([]string, error) {
	res, err := c.doWebCall(ctx, c.wc.DeleteSong(songIDs, entryIDs, playlistID))
	if err != nil {
		return nil, err
	}
	ids, _ := res["deleteIds"].([]string)
	return ids, nil
}

// GetPlaylistSongs loads the tracks of a playlist. Each record carries a
// playlistEntryId.
func (c *Client) GetPlaylistSongs(ctx context.Context, playlistID string) ([]map[string]any, error) {
	res, err := c.doWebCall(ctx, c.wc.LoadPlaylist(playlistID))
	if err != nil {
		return nil, err
	}
	songs, _ := res["playlist"].([]map[string]any)
	return songs, nil
}
