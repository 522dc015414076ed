package web

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/explorer"
	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/zones"
)

var validate = validator.New()

// Handlers contains HTTP handlers for the explorer API.
type Handlers struct {
	explorer       *explorer.Service
	sessions       *SessionStore
	defaultDataset string
	resultLimit    int
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *explorer.Service, sessions *SessionStore, defaultDataset string, resultLimit int) *Handlers {
	return &Handlers{
		explorer:       svc,
		sessions:       sessions,
		defaultDataset: defaultDataset,
		resultLimit:    resultLimit,
	}
}

// Request bodies.
type (
	zoomRequest struct {
		Path []string `json:"path" validate:"required,min=1,max=3,dive,required"`
	}
	labelRequest struct {
		Label string `json:"label" validate:"required"`
	}
	filterRequest struct {
		Path  []string `json:"path" validate:"max=5,dive,required"`
		Limit int      `json:"limit" validate:"min=0,max=1000"`
	}
)

type snapshotInfo struct {
	*explorer.Snapshot
	Songs int `json:"songs"`
}

type selectionResponse struct {
	Path      []string       `json:"path"`
	Highlight flow.Highlight `json:"highlight"`
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// ListDatasets handles GET /api/datasets.
func (h *Handlers) ListDatasets(w http.ResponseWriter, r *http.Request) {
	state := h.session(w, r).State()
	writeJSON(w, map[string]any{
		"datasets": h.explorer.Datasets(),
		"current":  state.DatasetID,
	})
}

// SelectDataset handles POST /api/datasets/{id}/select. Switching datasets
// clears the visitor's selection and zoom focus.
func (h *Handlers) SelectDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.explorer.Load(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.session(w, r).Update(func(st *ViewState) {
		if st.DatasetID != id {
			st.Selection.Reset()
			st.Navigator = zones.Navigator{}
		}
		st.DatasetID = id
	})
	writeJSON(w, snapshotInfo{snap, len(snap.Songs)})
}

// ReloadDataset handles POST /api/datasets/{id}/reload.
func (h *Handlers) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.explorer.Reload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, snapshotInfo{snap, len(snap.Songs)})
}

// Songs handles GET /api/songs.
func (h *Handlers) Songs(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, snap.Entries)
}

// Graph handles GET /api/graph.
func (h *Handlers) Graph(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, snap.Graph)
}

// Timeline handles GET /api/timeline. With ?minute= it returns the song
// playing nearest that minute.
func (h *Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.current(w, r)
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("minute"); raw != "" {
		minute, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "invalid 'minute' parameter", http.StatusBadRequest)
			return
		}
		point, found := snap.Timeline.Nearest(minute)
		if !found {
			http.Error(w, "timeline is empty", http.StatusNotFound)
			return
		}
		writeJSON(w, point)
		return
	}

	writeJSON(w, map[string]any{
		"total_minutes": snap.Timeline.TotalMinutes(),
		"points":        snap.Timeline,
	})
}

// Workouts handles GET /api/workouts. With ?type= it returns the songs
// suiting that workout.
func (h *Handlers) Workouts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("type")
	if name == "" {
		writeJSON(w, classify.WorkoutTypes)
		return
	}

	snap, _, ok := h.current(w, r)
	if !ok {
		return
	}
	workout, songs, err := snap.Workout(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"workout": workout, "songs": songs})
}

// Clusters handles GET /api/clusters. ?k= overrides the cluster count.
func (h *Handlers) Clusters(w http.ResponseWriter, r *http.Request) {
	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		var err error
		k, err = strconv.Atoi(raw)
		if err != nil || validate.Var(k, "min=1,max=20") != nil {
			http.Error(w, "invalid 'k' parameter", http.StatusBadRequest)
			return
		}
	}

	snap, _, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.explorer.Clusters(snap, k))
}

// Zones handles GET /api/zones.
func (h *Handlers) Zones(w http.ResponseWriter, r *http.Request) {
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, sess.State().Navigator.View(snap.Zones))
}

// ZoomIn handles POST /api/zones/zoom.
func (h *Handlers) ZoomIn(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}

	var zoomErr error
	st := sess.Update(func(st *ViewState) {
		zoomErr = st.Navigator.ZoomIn(snap.Zones, req.Path)
	})
	if zoomErr != nil {
		writeError(w, zoomErr)
		return
	}
	writeJSON(w, st.Navigator.View(snap.Zones))
}

// ZoomOut handles POST /api/zones/out.
func (h *Handlers) ZoomOut(w http.ResponseWriter, r *http.Request) {
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}
	st := sess.Update(func(st *ViewState) {
		st.Navigator.ZoomOut()
	})
	writeJSON(w, st.Navigator.View(snap.Zones))
}

// Selection handles GET /api/selection.
func (h *Handlers) Selection(w http.ResponseWriter, r *http.Request) {
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, selectionOf(sess.State().Selection, snap.Graph))
}

// Click handles POST /api/selection/click.
func (h *Handlers) Click(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, known := classify.StageOf(req.Label); !known {
		http.Error(w, "unknown label", http.StatusBadRequest)
		return
	}
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}

	st := sess.Update(func(st *ViewState) {
		st.Selection.Click(snap.Graph, req.Label)
	})
	writeJSON(w, selectionOf(st.Selection, snap.Graph))
}

// Choose handles POST /api/selection/choose.
func (h *Handlers) Choose(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}

	var chooseErr error
	st := sess.Update(func(st *ViewState) {
		chooseErr = st.Selection.Choose(req.Label)
	})
	if chooseErr != nil {
		http.Error(w, chooseErr.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, selectionOf(st.Selection, snap.Graph))
}

// ResetSelection handles DELETE /api/selection.
func (h *Handlers) ResetSelection(w http.ResponseWriter, r *http.Request) {
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}
	st := sess.Update(func(st *ViewState) {
		st.Selection.Reset()
	})
	writeJSON(w, selectionOf(st.Selection, snap.Graph))
}

// Filter handles POST /api/filter. Without a path in the body the
// visitor's stored selection is used.
func (h *Handlers) Filter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, sess, ok := h.current(w, r)
	if !ok {
		return
	}

	path := req.Path
	if len(path) == 0 {
		path = sess.State().Selection.Path
	}
	limit := req.Limit
	if limit == 0 {
		limit = h.resultLimit
	}

	res, err := h.explorer.Filter(snap, path, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

// session returns the visitor's session, starting one on the default
// dataset if needed.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *Session {
	return h.sessions.FromRequest(w, r, ViewState{DatasetID: h.defaultDataset})
}

// current loads the visitor's dataset snapshot, writing the error response
// itself when that fails.
func (h *Handlers) current(w http.ResponseWriter, r *http.Request) (*explorer.Snapshot, *Session, bool) {
	sess := h.session(w, r)
	snap, err := h.explorer.Load(r.Context(), sess.State().DatasetID)
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	return snap, sess, true
}

func selectionOf(sel flow.Selection, g flow.Graph) selectionResponse {
	path := sel.Path
	if path == nil {
		path = []string{}
	}
	return selectionResponse{Path: path, Highlight: sel.Highlight(g)}
}

// decodeBody decodes and validates an optional JSON body. An empty body
// leaves dst at its zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, flow.ErrNothingSelected),
		errors.Is(err, flow.ErrPathTooLong),
		errors.Is(err, zones.ErrLeafNode):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrUnknownDataset),
		errors.Is(err, explorer.ErrUnknownWorkout),
		errors.Is(err, zones.ErrNodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		log.Printf("Request failed: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encoding response: %v", err)
	}
}
