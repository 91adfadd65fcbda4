package api

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/lucasb-eyer/go-colorful"
    "github.com/matt-g-everett/anim8/stream"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type source struct {
    frame *stream.Frame
}

func (s *source) Latest() *stream.Frame { return s.frame }

func (s *source) Animations() []string { return []string{"fade", "twinkle"} }

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
    return rec
}

func TestApi(t *testing.T) {
    f := stream.NewFrame(2)
    f.SetPixel(1, colorful.Color{B: 1})
    s := &source{frame: f}
    a := NewApi(s, s, nil)
    a.static = t.TempDir()
    h := a.Handler()

    rec := get(t, h, "/frame")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
    assert.JSONEq(t, `["#000000", "#0000ff"]`, rec.Body.String())

    rec = get(t, h, "/animations")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `["fade", "twinkle"]`, rec.Body.String())

    assert.Equal(t, http.StatusNotFound, get(t, h, "/missing.js").Code)
}
