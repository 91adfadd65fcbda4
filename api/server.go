package api

import (
    "encoding/json"
    "net/http"

    "github.com/matt-g-everett/anim8/stream"
    "github.com/sgostarter/i/l"
)

// FrameSource gives the last frame streamed.
type FrameSource interface {
    Latest() *stream.Frame
}

// AnimationSource lists the animations that can be played.
type AnimationSource interface {
    Animations() []string
}

type Api struct {
    logger l.Wrapper
    frames FrameSource
    animations AnimationSource
    static string
}

// NewApi creates an instance of an Api.
func NewApi(frames FrameSource, animations AnimationSource, logger l.Wrapper) *Api {
    if logger == nil {
        logger = l.NewNopLoggerWrapper()
    }

    a := new(Api)
    a.logger = logger.WithFields(l.StringField(l.ClsKey, "apiImpl"))
    a.frames = frames
    a.animations = animations
    a.static = "client/dist"
    return a
}

func (a *Api) writeJSON(w http.ResponseWriter, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(v); err != nil {
        a.logger.WithFields(l.ErrorField(err)).Error("write response")
    }
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
    a.writeJSON(w, a.frames.Latest())
}

func (a *Api) handleAnimations(w http.ResponseWriter, r *http.Request) {
    a.writeJSON(w, a.animations.Animations())
}

// Handler serves the client pages, the latest frame and the animation names.
func (a *Api) Handler() http.Handler {
    mux := http.NewServeMux()
    mux.Handle("/", http.FileServer(http.Dir(a.static)))
    mux.HandleFunc("/frame", a.handleFrame)
    mux.HandleFunc("/animations", a.handleAnimations)
    return mux
}

func (a *Api) Serve(addr string) error {
    a.logger.WithFields(l.StringField("addr", addr)).Info("Listening...")
    return http.ListenAndServe(addr, a.Handler())
}
