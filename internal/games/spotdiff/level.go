package spotdiff

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/gazelab/internal/core"
)

// ErrNoMoreLevels is returned when the left image of the requested level
// does not exist.
var ErrNoMoreLevels = errors.New("spotdiff: no more levels")

// diff map column names
const (
	colX      = "x_coordinate"
	colY      = "y_coordinate"
	colRadius = "radius"
)

// Level is a loaded pair of images with its difference regions, all in
// display coordinates local to an image.
type Level struct {
	Number  int
	Left    *image.RGBA
	Right   *image.RGBA
	Regions []core.Circle
}

// Paths returns the left image, right image and diff map paths of level n.
func Paths(dir string, n int) (left, right, diffMap string) {
	left = filepath.Join(dir, fmt.Sprintf("%d Left.png", n))
	right = filepath.Join(dir, fmt.Sprintf("%d Right.png", n))
	diffMap = filepath.Join(dir, fmt.Sprintf("%d diff_map.csv", n))
	return left, right, diffMap
}

// LoadLevel loads level n from dir and scales it to w×h display pixels.
// Region coordinates are scaled by the ratio of the display size to the
// left image's original size; radii use the horizontal ratio.
func LoadLevel(dir string, n, w, h int) (*Level, error) {
	leftPath, rightPath, mapPath := Paths(dir, n)

	if _, err := os.Stat(leftPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: level %d", ErrNoMoreLevels, n)
	}

	left, err := decodePNG(leftPath)
	if err != nil {
		return nil, err
	}
	right, err := decodePNG(rightPath)
	if err != nil {
		return nil, err
	}

	orig := left.Bounds()
	if orig.Dx() == 0 || orig.Dy() == 0 {
		return nil, fmt.Errorf("spotdiff: level %d: empty image %s", n, leftPath)
	}
	sx := float64(w) / float64(orig.Dx())
	sy := float64(h) / float64(orig.Dy())

	f, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("spotdiff: level %d: %w", n, err)
	}
	defer f.Close()

	regions, err := ParseDiffMap(f, sx, sy)
	if err != nil {
		return nil, fmt.Errorf("spotdiff: level %d: %s: %w", n, mapPath, err)
	}

	return &Level{
		Number:  n,
		Left:    scale(left, w, h),
		Right:   scale(right, w, h),
		Regions: regions,
	}, nil
}

// ParseDiffMap reads a diff map CSV with a header naming x_coordinate,
// y_coordinate and radius columns, in any order. Values are multiplied by
// the scale factors and truncated.
func ParseDiffMap(r io.Reader, sx, sy float64) ([]core.Circle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{colX: -1, colY: -1, colRadius: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := idx[name]; ok {
			idx[name] = i
		}
	}
	for name, i := range idx {
		if i < 0 {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var regions []core.Circle
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		x, err := field(rec, idx[colX])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := field(rec, idx[colY])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		radius, err := field(rec, idx[colRadius])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		regions = append(regions, core.Circle{
			X: int(x * sx),
			Y: int(y * sy),
			R: int(radius * sx),
		})
	}
	return regions, nil
}

func field(rec []string, i int) (float64, error) {
	if i >= len(rec) {
		return 0, fmt.Errorf("missing field %d", i)
	}
	return strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spotdiff: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("spotdiff: decode %s: %w", path, err)
	}
	return img, nil
}

func scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
