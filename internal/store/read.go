package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

func (s *Store) GetSessionKey(user string) (string, error) {
	row := s.db.QueryRow("SELECT session_key FROM User WHERE name = ? AND session_key <> ''", user)
	var key string
	err := row.Scan(&key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting session key: %w", err)
	}
	return key, nil
}

func (s *Store) GetLastUpdated(user string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM User WHERE name = ?", user)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}

func (s *Store) GetLatestListen(user string) (time.Time, error) {
	query := "SELECT date FROM Listen WHERE user = ? ORDER BY CAST(date AS INTEGER) DESC LIMIT 1"
	row := s.db.QueryRow(query, user)
	var dateStr string
	err := row.Scan(&dateStr)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning latest listen: %w", err)
	}

	return parseDate(dateStr)
}

// parseDate accepts both Unix timestamps (as strings, the Last.fm format)
// and RFC3339 text.
func parseDate(dateStr string) (time.Time, error) {
	dateInt, err := strconv.ParseInt(dateStr, 10, 64)
	if err == nil {
		return time.Unix(dateInt, 0), nil
	}

	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("parsing date %q: %w", dateStr, err)
}

// HasListens reports whether any listening data exists for the user.
func (s *Store) HasListens(user string) (bool, error) {
	row := s.db.QueryRow("SELECT COUNT(*) FROM Listen WHERE user = ?", user)
	var count int64
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("counting listens: %w", err)
	}
	return count > 0, nil
}

// AlbumCount is an album with its listen count for one user.
type AlbumCount struct {
	Artist  string
	Album   string
	Listens int64
}

// AlbumPlaycounts returns the user's albums ordered by listen count,
// descending. Zero start and end times mean all time; otherwise listens are
// filtered to [start, end). Albums with an empty name are skipped.
func (s *Store) AlbumPlaycounts(user string, start, end time.Time) ([]AlbumCount, error) {
	query := `
		SELECT t.artist, t.album, COUNT(*) as listens
		FROM Listen l
		JOIN Track t ON l.track = t.id
		WHERE l.user = ? AND t.album != ''
	`
	args := []interface{}{user}
	if !start.IsZero() || !end.IsZero() {
		query += " AND CAST(l.date AS INTEGER) >= ? AND CAST(l.date AS INTEGER) < ?"
		args = append(args, start.Unix(), end.Unix())
	}
	query += `
		GROUP BY t.artist, t.album
		ORDER BY listens DESC, t.artist, t.album
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying album playcounts: %w", err)
	}
	defer rows.Close()

	var albums []AlbumCount
	for rows.Next() {
		var a AlbumCount
		if err := rows.Scan(&a.Artist, &a.Album, &a.Listens); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}
