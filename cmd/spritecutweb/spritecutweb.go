// Binary spritecutweb serves the parts of the sheets under <root>/spine over
// HTTP, cutting them on request. Nothing is written to disk.
package main

import (
	"bytes"
	"flag"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-spritecut/atlas"
	"badc0de.net/pkg/go-spritecut/parts"
	"badc0de.net/pkg/go-spritecut/spine"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spritecutweb")
	root          = flag.String("root", ".", "directory containing spine/")
	thumbSize     = flag.Uint("thumb_size", 96, "maximum width and height of part thumbnails")
)

var (
	indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<title>sheets</title>
<ul>
{{range .}}<li><a href="/sheet/{{.Name}}">{{.Character}}</a></li>
{{end}}</ul>
`))
	sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<title>{{.Character}}</title>
<h1>{{.Character}}</h1>
<table>
{{range .Parts}}<tr>
<td>{{if .Thumb}}<a href="{{.Href}}"><img src="{{.Thumb}}"></a>{{end}}</td>
<td>{{.Name}}</td><td>{{.Size}}</td><td>{{.Rotate}}</td><td>{{.Err}}</td>
</tr>
{{end}}</table>
`))
)

type server struct {
	spineDir string
	thumb    uint
}

type partRow struct {
	Name   string
	Href   string
	Thumb  template.URL
	Size   string
	Rotate string
	Err    string
}

func newRouter(s *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name}", s.sheetHandler).Methods(http.MethodGet)
	r.HandleFunc("/sheet/{name}/part/{part:.+}", s.partHandler).Methods(http.MethodGet)
	return r
}

// sheet resolves a sheet directory name from a URL. Only direct children of
// the spine directory are reachable.
func (s *server) sheet(name string) (spine.Sheet, error) {
	if name != filepath.Base(name) || !strings.Contains(name, spine.Marker) {
		return spine.Sheet{}, errors.Wrapf(spine.ErrMissingPair, "no sheet %q", name)
	}
	sh := spine.NewSheet(filepath.Join(s.spineDir, name))
	if err := sh.Check(); err != nil {
		return spine.Sheet{}, err
	}
	return sh, nil
}

func load(sh spine.Sheet) (*atlas.Descriptor, image.Image, error) {
	f, err := os.Open(sh.AtlasPath)
	if err != nil {
		return nil, nil, err
	}
	desc, err := atlas.Decode(f)
	f.Close()
	if err != nil {
		return nil, nil, err
	}
	img, err := imaging.Open(sh.ImagePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding %s", sh.ImagePath)
	}
	return desc, img, nil
}

func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spine.ErrMissingPair):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		glog.Errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writePNG sends img as the whole response. The headers are out by the time
// encoding fails, so the caller can only log the error.
func writePNG(w http.ResponseWriter, img image.Image) error {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	return errors.Wrap(png.Encode(w, img), "encoding png")
}

func (s *server) indexHandler(w http.ResponseWriter, r *http.Request) {
	found, err := spine.Find(s.spineDir)
	if err != nil {
		httpError(w, err)
		return
	}
	var sheets []spine.Sheet
	for _, sh := range found {
		if sh.Check() == nil {
			sheets = append(sheets, sh)
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, sheets); err != nil {
		glog.Errorf("rendering index: %v", err)
	}
}

func (s *server) sheetHandler(w http.ResponseWriter, r *http.Request) {
	sh, err := s.sheet(mux.Vars(r)["name"])
	if err != nil {
		httpError(w, err)
		return
	}
	desc, img, err := load(sh)
	if err != nil {
		httpError(w, err)
		return
	}

	rows := make([]partRow, 0, len(desc.Parts))
	for _, p := range desc.Parts {
		row := partRow{
			Name:   p.Name,
			Href:   "/sheet/" + url.PathEscape(sh.Name) + "/part/" + url.PathEscape(p.Name),
			Size:   p.NaturalSize().String(),
			Rotate: p.Rotate.String(),
		}
		part, err := parts.Reconstruct(img, p)
		if err != nil {
			row.Err = err.Error()
			rows = append(rows, row)
			continue
		}
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, resize.Thumbnail(s.thumb, s.thumb, part, resize.Lanczos3)); err != nil {
			row.Err = err.Error()
		} else {
			row.Thumb = template.URL(dataurl.New(buf.Bytes(), "image/png").String())
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sheetTemplate.Execute(w, struct {
		Character string
		Parts     []partRow
	}{sh.Character, rows}); err != nil {
		glog.Errorf("rendering %s: %v", sh.Name, err)
	}
}

func (s *server) partHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sh, err := s.sheet(vars["name"])
	if err != nil {
		httpError(w, err)
		return
	}
	desc, img, err := load(sh)
	if err != nil {
		httpError(w, err)
		return
	}
	for _, p := range desc.Parts {
		if p.Name != vars["part"] {
			continue
		}
		part, err := parts.Reconstruct(img, p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err := writePNG(w, part); err != nil {
			glog.Errorf("serving %s/%s: %v", sh.Name, p.Name, err)
		}
		return
	}
	http.Error(w, "no such part", http.StatusNotFound)
}

func main() {
	flagutil.Parse()

	s := &server{spineDir: filepath.Join(*root, "spine"), thumb: *thumbSize}
	glog.Infof("serving sheets from %s on %s", s.spineDir, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, newRouter(s))))
}
