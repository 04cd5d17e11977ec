package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/woozymasta/hmap"
)

// Range is the lowest and highest height of a surface.
type Range struct {
	Lo uint8 `json:"lo"`
	Hi uint8 `json:"hi"`
}

// Info summarises a container for the info command.
type Info struct {
	File         string     `json:"file"`
	Endianness   string     `json:"endianness"`
	Version      string     `json:"version"`
	Compressed   bool       `json:"compressed"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	BBoxMin      [3]float32 `json:"bbox_min"`
	BBoxMax      [3]float32 `json:"bbox_max"`
	DataLength   uint32     `json:"data_length"`
	BlobOffset   int        `json:"blob_offset"`
	BlobLength   int        `json:"blob_length"`
	Clamped      bool       `json:"clamped"`
	SkippedCells int        `json:"skipped_cells"`
	Max          Range      `json:"max"`
	Min          Range      `json:"min"`
}

// Inspect loads path and summarises it.
func Inspect(ctx context.Context, path string) (*Info, error) {
	hm, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewInfo(path, hm), nil
}

// NewInfo summarises an already decoded container.
func NewInfo(path string, hm *hmap.Heightmap) *Info {
	h := hm.Header
	info := &Info{
		File:         path,
		Endianness:   h.Endianness.String(),
		Version:      fmt.Sprintf("%d.%d", h.VersionMajor, h.VersionMinor),
		Compressed:   h.IsCompressed(),
		Width:        hm.Width(),
		Height:       hm.Height(),
		BBoxMin:      h.BBoxMin,
		BBoxMax:      h.BBoxMax,
		DataLength:   h.DataLength,
		BlobOffset:   hm.BlobOffset,
		BlobLength:   hm.BlobLength,
		Clamped:      hm.Clamped,
		SkippedCells: hm.SkippedCells,
	}
	info.Max.Lo, info.Max.Hi = hm.Max.Range()
	info.Min.Lo, info.Min.Hi = hm.Min.Range()
	return info
}

// WriteJSON writes info as indented JSON.
func (i *Info) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteText writes info as aligned key/value lines.
func (i *Info) WriteText(w io.Writer) error {
	layout := "raw"
	if i.Compressed {
		layout = "sparse"
	}
	_, err := fmt.Fprintf(w,
		"file:        %s\n"+
			"byte order:  %s\n"+
			"version:     %s\n"+
			"layout:      %s\n"+
			"size:        %dx%d\n"+
			"bbox min:    %g %g %g\n"+
			"bbox max:    %g %g %g\n"+
			"data length: %d (blob %d bytes at %d, clamped %t)\n"+
			"skipped:     %d cells\n"+
			"max range:   %d..%d\n"+
			"min range:   %d..%d\n",
		i.File, i.Endianness, i.Version, layout, i.Width, i.Height,
		i.BBoxMin[0], i.BBoxMin[1], i.BBoxMin[2],
		i.BBoxMax[0], i.BBoxMax[1], i.BBoxMax[2],
		i.DataLength, i.BlobLength, i.BlobOffset, i.Clamped,
		i.SkippedCells, i.Max.Lo, i.Max.Hi, i.Min.Lo, i.Min.Hi,
	)
	return err
}
