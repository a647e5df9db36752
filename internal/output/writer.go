// Package output writes rendered room variants and the HTML page that lays
// them out side by side.
package output

import (
	"bufio"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// IndexFile is the name of the page written by WriteIndex.
const IndexFile = "index.html"

// IndexVariants is how many variants of each room the index shows.
const IndexVariants = 2

// FileName returns the file name of variant i of a room.
func FileName(room string, i int) string {
	return fmt.Sprintf("%s_%d.png", room, i)
}

// Writer persists images under Root.
type Writer struct {
	Root string
	Log  zerolog.Logger
}

// NewWriter creates root if needed and returns a writer for it.
func NewWriter(root string, log zerolog.Logger) (*Writer, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", root, err)
	}
	return &Writer{Root: root, Log: log}, nil
}

// SaveVariants writes imgs as <room>_<i>.png and returns the paths written.
func (w *Writer) SaveVariants(room string, imgs []*image.RGBA) ([]string, error) {
	paths := make([]string, 0, len(imgs))
	for i, img := range imgs {
		path := filepath.Join(w.Root, FileName(room, i))
		if err := SavePNG(path, img); err != nil {
			return paths, err
		}
		w.Log.Debug().Str("path", path).Msg("image saved")
		paths = append(paths, path)
	}
	return paths, nil
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := png.Encode(bw, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

type indexRoom struct {
	Name   string
	Images []string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">

<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta http-equiv="Cache-Control" content="no-cache, no-store, must-revalidate" />
  <meta http-equiv="Pragma" content="no-cache" />
  <meta http-equiv="Expires" content="0" />
  <title>View for Images</title>
  <style>
    .image-column {
      display: flex;
      flex-flow: column nowrap;
    }

    .image-row {
      width: 80%;
      display: flex;
      flex-flow: row nowrap;
    }

    .image {
      flex: 50%;
      width: 50%;
    }
  </style>
</head>

<body>
  <h1>View Images</h1>
  <div class="image-column">
{{- range .}}
    <h3>{{.Name}}</h3>
    <div class="image-row">
{{- range .Images}}
      <img class="image" src="./{{.}}" />
{{- end}}
    </div>
{{- end}}
  </div>
</body>

</html>
`))

// WriteIndex writes index.html listing every room's variants in order.
func (w *Writer) WriteIndex(rooms []string) (string, error) {
	data := make([]indexRoom, len(rooms))
	for i, name := range rooms {
		data[i].Name = name
		for v := 0; v < IndexVariants; v++ {
			data[i].Images = append(data[i].Images, FileName(name, v))
		}
	}

	path := filepath.Join(w.Root, IndexFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := indexTemplate.Execute(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	w.Log.Info().Str("path", path).Int("rooms", len(rooms)).Msg("Index written")
	return path, nil
}
