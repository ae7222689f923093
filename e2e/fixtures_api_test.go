//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
)

// Queries with special behaviour in the fake API
const (
	QueryEmpty  = "zzqx"
	QueryBroken = "boom"
)

// FakeAPI serves search pages and tiny PNGs in the upstream format
type FakeAPI struct {
	*httptest.Server
	TotalHits int
	Calls     atomic.Int32
	png       []byte
}

// NewFakeAPI starts a server where every query matches totalHits images
func (tf *TUITestFramework) NewFakeAPI(totalHits int) *FakeAPI {
	tf.t.Helper()
	api := &FakeAPI{TotalHits: totalHits, png: testPNG()}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", api.search)
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(api.png)
	})
	api.Server = httptest.NewServer(mux)
	tf.t.Cleanup(api.Close)
	return api
}

func (api *FakeAPI) search(w http.ResponseWriter, r *http.Request) {
	api.Calls.Add(1)
	q := r.URL.Query()
	if q.Get("key") == "" {
		http.Error(w, "[ERROR 400] \"key\" is a required parameter.", http.StatusBadRequest)
		return
	}

	query := q.Get("q")
	total := api.TotalHits
	switch query {
	case QueryBroken:
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
		return
	case QueryEmpty:
		total = 0
	}

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	start := (page - 1) * perPage
	end := min(start+perPage, total)

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"total":%d,"totalHits":%d,"hits":[`, total, total)
	for i := start; i < end; i++ {
		if i > start {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, `{"id":%d,"webformatURL":"%s/img/%d_640.png","largeImageURL":"%s/img/%d_1280.png","tags":"%s, photo %d","imageWidth":64,"imageHeight":32,"user":"tester"}`,
			i+1, api.URL, i+1, api.URL, i+1, strings.ReplaceAll(query, `"`, ""), i+1)
	}
	fmt.Fprint(w, "]}")
}

func testPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: 120, B: uint8(y * 8), A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// CreateTestWorkspace creates a temporary directory used as $HOME and config dir
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes a config file pointing at api and remembers its path for StartWithConfig
func (tf *TUITestFramework) WriteConfig(api *FakeAPI, extra ...string) (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	lines := []string{
		`api_key = "e2e-key"`,
		fmt.Sprintf("endpoint = %q", api.URL+"/api/"),
		"per_page = 3",
		"timeout_ms = 2000",
		"",
		"[log]",
		fmt.Sprintf("file = %q", filepath.Join(tf.workspace, "pixgrip.log")),
		`level = "debug"`,
	}
	lines = append(lines, extra...)

	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		return "", err
	}
	tf.config = path
	return path, nil
}

// StartWithConfig launches the app against the config written by WriteConfig
func (tf *TUITestFramework) StartWithConfig(args ...string) error {
	return tf.StartApp(append([]string{"-config", tf.config}, args...)...)
}
