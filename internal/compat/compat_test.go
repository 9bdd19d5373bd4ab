package compat

import (
	"reflect"
	"testing"
	"time"

	"github.com/tastemap/tastemap/internal/profile"
)

func breakdownTexts(result *Result) []string {
	var texts []string
	for _, factor := range result.Breakdown {
		texts = append(texts, factor.Text)
	}
	return texts
}

func TestCalculateReturnsNilWithoutAlbums(t *testing.T) {
	full := &profile.Profile{TopAlbums: []string{"a"}}

	if got := Calculate(&profile.Profile{}, full); got != nil {
		t.Errorf("Calculate(empty, full) = %v, want nil", got)
	}
	if got := Calculate(full, &profile.Profile{}); got != nil {
		t.Errorf("Calculate(full, empty) = %v, want nil", got)
	}
	if got := Calculate(nil, nil); got != nil {
		t.Errorf("Calculate(nil, nil) = %v, want nil", got)
	}
}

func TestCalculateLegacyPerfectMatch(t *testing.T) {
	songs := map[string][]string{
		"A": {"s1", "s2", "s3"},
		"B": {"s4", "s5", "s6"},
		"C": {"s7", "s8", "s9"},
	}
	mine := &profile.Profile{
		TopAlbums:  []string{"A", "B", "C"},
		AlbumSongs: songs,
		SongLyrics: map[string]string{"s1": "some line", "s2": "another", "s4": "a third"},
	}
	theirs := &profile.Profile{
		TopAlbums:  []string{"A", "B", "C"},
		AlbumSongs: songs,
		SongLyrics: map[string]string{"s1": "different line, same songs", "s2": "x", "s4": "y"},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}

	// 65 album + 27 song + 8 lyric = 100 exactly.
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	if !result.Matches.SameFirstAlbum || !result.Matches.SameSecondAlbum || !result.Matches.SameThirdAlbum {
		t.Errorf("expected all position matches, got %+v", result.Matches)
	}
	if result.Matches.Weighted {
		t.Error("expected legacy scoring without weights")
	}
	if result.Matches.SongOverlaps != 9 {
		t.Errorf("SongOverlaps = %d, want 9", result.Matches.SongOverlaps)
	}
	if result.Matches.LyricOverlaps != 3 {
		t.Errorf("LyricOverlaps = %d, want 3", result.Matches.LyricOverlaps)
	}

	texts := breakdownTexts(result)
	want := []string{"Same #1 album", "3 albums in common", "9 songs in common", "Same taste in lyrics"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Breakdown = %v, want %v", texts, want)
	}
	if texts[0] != "Same #1 album" {
		t.Errorf("first breakdown line = %q, want %q", texts[0], "Same #1 album")
	}
}

func TestCalculateTotallyDisjoint(t *testing.T) {
	mine := &profile.Profile{
		TopAlbums:  []string{"A", "B", "C"},
		AlbumSongs: map[string][]string{"A": {"s1"}},
		SongLyrics: map[string]string{"s1": "line"},
	}
	theirs := &profile.Profile{
		TopAlbums:  []string{"X", "Y", "Z"},
		AlbumSongs: map[string][]string{"X": {"t1"}},
		SongLyrics: map[string]string{"t1": "line"},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}

	texts := breakdownTexts(result)
	want := []string{"Different #1 album", "No songs in common"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Breakdown = %v, want %v", texts, want)
	}
	for _, factor := range result.Breakdown {
		if factor.Positive {
			t.Errorf("expected only negative factors, got %+v", factor)
		}
	}
}

func TestCalculateLyricOverlapPoints(t *testing.T) {
	// Nothing in common but lyric picks: the lyric component alone is small,
	// 8/3 of a point per shared pick.
	mine := &profile.Profile{
		TopAlbums:  []string{"A"},
		AlbumSongs: map[string][]string{"A": {"s1"}},
		SongLyrics: map[string]string{"s1": "line"},
	}
	theirs := &profile.Profile{
		TopAlbums:  []string{"B"},
		AlbumSongs: map[string][]string{"B": {"s2"}},
		SongLyrics: map[string]string{"s1": "other line, same song"},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}
	if result.Matches.SongOverlaps != 0 {
		t.Errorf("SongOverlaps = %d, want 0", result.Matches.SongOverlaps)
	}
	if result.Matches.LyricOverlaps != 1 {
		t.Errorf("LyricOverlaps = %d, want 1", result.Matches.LyricOverlaps)
	}
	// round(1 * 8/3) = 3.
	if result.Score != 3 {
		t.Errorf("Score = %d, want 3", result.Score)
	}

	// Rounding happens once, at the end: two picks are round(16/3) = 5, not
	// 3+3.
	mine.SongLyrics["s2"] = "line"
	theirs.SongLyrics["s2"] = "line"
	result = Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}
	if result.Score != 5 {
		t.Errorf("Score with two shared lyrics = %d, want 5", result.Score)
	}
}

func TestCalculateWeightedExactMatches(t *testing.T) {
	mine := &profile.Profile{
		TopAlbums:    []string{"A", "B", "C"},
		AlbumWeights: map[string]int{"A": 50, "B": 30, "C": 20},
	}
	theirs := &profile.Profile{
		TopAlbums:    []string{"A", "B", "C"},
		AlbumWeights: map[string]int{"A": 40, "B": 35, "C": 25},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}
	if !result.Matches.Weighted {
		t.Error("expected weighted scoring")
	}

	// avg weights 45, 32.5, 22.5 against caps 30/20/15:
	// 13.5 + 6.5 + 3.375 = 23.375, rounded to 23.
	if result.Score != 23 {
		t.Errorf("Score = %d, want 23", result.Score)
	}

	texts := breakdownTexts(result)
	want := []string{"Same #1 album", "3 albums in common", "Similar intensity for favorites", "No songs in common"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Breakdown = %v, want %v", texts, want)
	}
}

func TestCalculateWeightedCrossPositionBonus(t *testing.T) {
	mine := &profile.Profile{
		TopAlbums:    []string{"A", "B"},
		AlbumWeights: map[string]int{"A": 60, "B": 40},
	}
	theirs := &profile.Profile{
		TopAlbums:    []string{"B", "A"},
		AlbumWeights: map[string]int{"B": 70, "A": 30},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}

	// No exact position matches; cross bonuses: A avg 45 -> 2.25, B avg 55
	// -> 2.75, total 5.
	if result.Score != 5 {
		t.Errorf("Score = %d, want 5", result.Score)
	}
	if result.Matches.PositionMatches != 0 {
		t.Errorf("PositionMatches = %d, want 0", result.Matches.PositionMatches)
	}

	texts := breakdownTexts(result)
	want := []string{"Different #1 album", "Similar intensity for favorites", "No songs in common"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Breakdown = %v, want %v", texts, want)
	}
}

// The scorer is symmetric under argument swap: weights are averaged per
// album, and the cross-position loop visits the same album pairs either way.
// This characterizes the behavior rather than requiring it.
func TestCalculateSymmetricUnderSwap(t *testing.T) {
	a := &profile.Profile{
		TopAlbums:    []string{"A", "B", "C"},
		AlbumWeights: map[string]int{"A": 70, "B": 20, "C": 10},
		AlbumSongs:   map[string][]string{"A": {"s1", "s2"}},
		SongLyrics:   map[string]string{"s1": "x"},
	}
	b := &profile.Profile{
		TopAlbums:    []string{"B", "A", "D"},
		AlbumWeights: map[string]int{"B": 50, "A": 30, "D": 20},
		AlbumSongs:   map[string][]string{"B": {"s2", "s3"}},
		SongLyrics:   map[string]string{"s1": "y", "s3": "z"},
	}

	forward := Calculate(a, b)
	backward := Calculate(b, a)
	if forward == nil || backward == nil {
		t.Fatal("Calculate returned nil")
	}
	if forward.Score != backward.Score {
		t.Errorf("asymmetric scores: %d vs %d", forward.Score, backward.Score)
	}
}

func TestCalculateScoreRange(t *testing.T) {
	pairs := []struct {
		mine, theirs *profile.Profile
	}{
		{
			&profile.Profile{TopAlbums: []string{"A"}},
			&profile.Profile{TopAlbums: []string{"A"}},
		},
		{
			&profile.Profile{
				TopAlbums:    []string{"A", "B", "C"},
				AlbumWeights: map[string]int{"A": 100, "B": 0, "C": 0},
				AlbumSongs:   map[string][]string{"A": {"s1", "s2", "s3"}, "B": {"s4", "s5", "s6"}, "C": {"s7", "s8", "s9"}},
				SongLyrics:   map[string]string{"s1": "l", "s2": "l", "s3": "l"},
			},
			&profile.Profile{
				TopAlbums:    []string{"A", "B", "C"},
				AlbumWeights: map[string]int{"A": 100, "B": 0, "C": 0},
				AlbumSongs:   map[string][]string{"A": {"s1", "s2", "s3"}, "B": {"s4", "s5", "s6"}, "C": {"s7", "s8", "s9"}},
				SongLyrics:   map[string]string{"s1": "l", "s2": "l", "s3": "l"},
			},
		},
		{
			&profile.Profile{TopAlbums: []string{"A", "B"}},
			&profile.Profile{TopAlbums: []string{"Z"}},
		},
	}

	for i, pair := range pairs {
		result := Calculate(pair.mine, pair.theirs)
		if result == nil {
			t.Fatalf("pair %d: Calculate returned nil", i)
		}
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("pair %d: score %d out of range", i, result.Score)
		}
	}
}

func TestCalculateIdempotent(t *testing.T) {
	mine := &profile.Profile{
		TopAlbums:    []string{"A", "B"},
		AlbumWeights: map[string]int{"A": 60, "B": 40},
		AlbumSongs:   map[string][]string{"A": {"s1"}},
	}
	theirs := &profile.Profile{
		TopAlbums:    []string{"A", "C"},
		AlbumWeights: map[string]int{"A": 55, "C": 45},
		AlbumSongs:   map[string][]string{"A": {"s1"}},
	}

	first := Calculate(mine, theirs)
	second := Calculate(mine, theirs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestBreakdownSingleSongPluralization(t *testing.T) {
	mine := &profile.Profile{
		TopAlbums:  []string{"A"},
		AlbumSongs: map[string][]string{"A": {"s1"}},
	}
	theirs := &profile.Profile{
		TopAlbums:  []string{"B"},
		AlbumSongs: map[string][]string{"B": {"s1"}},
	}

	result := Calculate(mine, theirs)
	if result == nil {
		t.Fatal("Calculate returned nil")
	}

	texts := breakdownTexts(result)
	want := []string{"Different #1 album", "1 song in common"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Breakdown = %v, want %v", texts, want)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Soulmates"},
		{90, "Soulmates"},
		{89, "Best Friends"},
		{75, "Best Friends"},
		{74, "Good Match"},
		{60, "Good Match"},
		{59, "Different Eras"},
		{40, "Different Eras"},
		{39, "Opposites"},
		{20, "Opposites"},
		{19, "Totally Different"},
		{0, "Totally Different"},
	}

	for _, test := range tests {
		label, emoji := Label(test.score)
		if label != test.want {
			t.Errorf("Label(%d) = %q, want %q", test.score, label, test.want)
		}
		if emoji == "" {
			t.Errorf("Label(%d) returned empty emoji", test.score)
		}
	}
}

func TestNewComparisonRecord(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	previous := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = previous }()

	theirs := &profile.Profile{TopAlbums: []string{"A", "B"}}
	names := map[string]string{"A": "Album A", "B": "Album B"}
	colors := map[string]string{"A": "#ff0000", "B": "#00ff00"}

	record := NewComparisonRecord("share-123", theirs, names, colors, 87)

	if record.ShareID != "share-123" {
		t.Errorf("ShareID = %q", record.ShareID)
	}
	if record.Score != 87 {
		t.Errorf("Score = %d", record.Score)
	}
	if !record.ComparedAt.Equal(fixed) {
		t.Errorf("ComparedAt = %v, want %v", record.ComparedAt, fixed)
	}
	if !reflect.DeepEqual(record.TheirAlbums, []string{"A", "B"}) {
		t.Errorf("TheirAlbums = %v", record.TheirAlbums)
	}

	// The record owns its album list.
	theirs.TopAlbums[0] = "mutated"
	if record.TheirAlbums[0] != "A" {
		t.Error("record shares backing array with the profile")
	}
}
