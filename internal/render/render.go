// Package render draws treemap layouts to PNG images.
package render

import (
	"fmt"
	"hash/fnv"

	"github.com/fogleman/gg"

	"github.com/tastemap/tastemap/internal/treemap"
)

const (
	backgroundColor = "#15151e"
	strokeColor     = "#15151e"
	labelColor      = "#f2f2f7"

	// Tiles smaller than this are left unlabeled.
	minLabelWidth  = 70
	minLabelHeight = 26
)

// palette backs FallbackColor for tiles without an explicit color.
var palette = []string{
	"#5e81ac", "#bf616a", "#a3be8c", "#ebcb8b", "#b48ead",
	"#d08770", "#88c0d0", "#8fbcbb", "#e5989b", "#81a1c1",
}

// FallbackColor deterministically picks a palette color for an item id.
func FallbackColor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// PNG draws the tiles into a new drawing context. A non-empty fontPath
// enables labels using that TTF file.
func PNG(tiles []treemap.PositionedItem, width, height int, fontPath string) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	if fontPath != "" {
		if err := dc.LoadFontFace(fontPath, 13); err != nil {
			return nil, fmt.Errorf("loading font %q: %w", fontPath, err)
		}
	}

	for _, tile := range tiles {
		color := tile.Color
		if color == "" {
			color = FallbackColor(tile.ID)
		}

		dc.SetHexColor(color)
		dc.DrawRectangle(tile.X0, tile.Y0, tile.Rect.Width(), tile.Rect.Height())
		dc.Fill()

		dc.SetHexColor(strokeColor)
		dc.SetLineWidth(1)
		dc.DrawRectangle(tile.X0, tile.Y0, tile.Rect.Width(), tile.Rect.Height())
		dc.Stroke()

		if fontPath == "" || tile.Rect.Width() < minLabelWidth || tile.Rect.Height() < minLabelHeight {
			continue
		}
		label := tile.Name
		if label == "" {
			label = tile.ID
		}
		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(label, (tile.X0+tile.X1)/2, (tile.Y0+tile.Y1)/2, 0.5, 0.5)
	}

	return dc, nil
}

// WritePNG renders the tiles and saves them to path.
func WritePNG(tiles []treemap.PositionedItem, width, height int, fontPath, path string) error {
	dc, err := PNG(tiles, width, height, fontPath)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
