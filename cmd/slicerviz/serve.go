package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/safehtml/template"
	"github.com/ohartman/slicerviz/hostsim"
	"github.com/ohartman/slicerviz/slicer"
	"github.com/ohartman/slicerviz/timescale"
	"github.com/spf13/cobra"
)

const indexSrc = `<!DOCTYPE html>
<html>
<head><title>slicerviz</title></head>
<body>
<h1>slicerviz demo host</h1>
<p>Datasets are CSV files under the configured dataset root.</p>
<ul>
<li><code>POST /api/update?visual={slicer|timescale}&amp;dataset=NAME</code></li>
<li><code>POST /api/loadmore?dataset=NAME</code></li>
<li><code>GET /api/search?dataset=NAME&amp;q=TERM</code></li>
<li><code>POST /api/select?dataset=NAME&amp;match=TEXT</code></li>
<li><code>POST /api/range?dataset=NAME&amp;start=RFC3339&amp;end=RFC3339</code></li>
</ul>
</body>
</html>`

var indexTemplate = template.Must(
	template.New("index").ParseFromTrustedTemplate(template.MakeTrustedTemplate(indexSrc)))

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo visuals over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			svc.registerHandlers(mux)
			log.Printf("Serving slicerviz at http://localhost:%d", cfg.Port)
			return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), mux)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "slicerviz.yaml", "Path to the YAML config file")
	return cmd
}

// slicerWidget is the server-side stand-in for the slicer's rendering
// widget: it records pushed state for JSON responses and carries the
// active search term.
type slicerWidget struct {
	mu       sync.Mutex
	data     []slicer.Item
	selected []slicer.Item
	search   string
}

func (w *slicerWidget) SetData(items []slicer.Item) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = items
}

func (w *slicerWidget) SetSelectedItems(items []slicer.Item) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = items
}

func (w *slicerWidget) SearchString() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.search
}

func (w *slicerWidget) SetSort(field slicer.SortField, descending bool) {}

func (w *slicerWidget) setSearch(term string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.search = term
}

// timeWidget is the server-side stand-in for the time scale's brush.
type timeWidget struct {
	mu      sync.Mutex
	data    []timescale.TimeItem
	brush   timescale.Range
	brushed bool
}

func (w *timeWidget) SetData(items []timescale.TimeItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = items
}

func (w *timeWidget) SelectedRange() (timescale.Range, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.brush, w.brushed
}

func (w *timeWidget) SetSelectedRange(r timescale.Range) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brush = r
	w.brushed = true
}

// session is one hosted visual instance bound to a dataset.
type session struct {
	host *hostsim.Host
	// Exactly one of the two controller pairs is set, per the visual type.
	slicerController *slicer.Controller
	slicerWidget     *slicerWidget
	timeController   *timescale.Controller
	timeWidget       *timeWidget
}

type service struct {
	mu       sync.Mutex
	cfg      Config
	store    *hostsim.DatasetStore
	hub      *hostsim.Hub
	sessions map[string]*session
}

func newService(cfg Config) (*service, error) {
	store, err := hostsim.NewDatasetStore(cfg.CacheSize, hostsim.DirLoader{Root: cfg.DatasetRoot})
	if err != nil {
		return nil, err
	}
	return &service{
		cfg:      cfg,
		store:    store,
		hub:      hostsim.NewHub(),
		sessions: map[string]*session{},
	}, nil
}

// session returns the session for the given visual type and dataset,
// creating and registering it on first use.
func (s *service) session(visual, dataset string) (*session, error) {
	key := visual + "/" + dataset
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	ds, err := s.store.Fetch(dataset)
	if err != nil {
		return nil, err
	}
	sess := &session{}
	switch visual {
	case "slicer":
		sess.host = hostsim.NewHost(ds, s.cfg.WindowSize)
		sess.slicerWidget = &slicerWidget{}
		sess.slicerController = slicer.NewController(sess.host, sess.slicerWidget)
		sess.host.Attach(sess.slicerController)
	case "timescale":
		// The brush needs the whole series at once.
		sess.host = hostsim.NewHost(ds, 0)
		sess.timeWidget = &timeWidget{}
		sess.timeController = timescale.NewController(sess.host, sess.timeWidget)
		sess.host.Attach(sess.timeController)
	default:
		return nil, fmt.Errorf("unknown visual type '%s'", visual)
	}
	if err := s.hub.Register(key, sess.host); err != nil {
		return nil, err
	}
	s.sessions[key] = sess
	return sess, nil
}

func (s *service) registerHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/update", s.handleUpdate)
	mux.HandleFunc("/api/loadmore", s.handleLoadMore)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/select", s.handleSelect)
	mux.HandleFunc("/api/range", s.handleRange)
}

func (s *service) handleIndex(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	if err := indexTemplate.Execute(w, nil); err != nil {
		http.Error(w, "Failed to render index: "+err.Error(), http.StatusInternalServerError)
	}
}

func sendJSON(w http.ResponseWriter, payload any) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(encoded)
}

// itemJSON is the wire form of a slicer item.
type itemJSON struct {
	Match         string   `json:"match"`
	Value         float64  `json:"value"`
	RenderedValue *float64 `json:"renderedValue,omitempty"`
	Selected      bool     `json:"selected,omitempty"`
}

func itemsJSON(items []slicer.Item) []itemJSON {
	ret := make([]itemJSON, 0, len(items))
	for _, item := range items {
		ret = append(ret, itemJSON{
			Match:         item.MatchText,
			Value:         item.Value,
			RenderedValue: item.RenderedValue,
			Selected:      item.Selected,
		})
	}
	return ret
}

// timeItemJSON is the wire form of a time scale item.
type timeItemJSON struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

func timeItemsJSON(items []timescale.TimeItem) []timeItemJSON {
	ret := make([]timeItemJSON, 0, len(items))
	for _, item := range items {
		ret = append(ret, timeItemJSON{Date: item.Date, Value: item.Value})
	}
	return ret
}

func (s *service) handleUpdate(w http.ResponseWriter, req *http.Request) {
	visual := req.FormValue("visual")
	if visual == "" {
		visual = "slicer"
	}
	sess, err := s.session(visual, req.FormValue("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := sess.host.PushUpdate(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sess.slicerController != nil {
		sendJSON(w, itemsJSON(sess.slicerController.Data()))
		return
	}
	sendJSON(w, timeItemsJSON(sess.timeController.Data()))
}

func (s *service) handleLoadMore(w http.ResponseWriter, req *http.Request) {
	sess, err := s.session("slicer", req.FormValue("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageReq := sess.slicerController.LoadMore(false)
	if pageReq == nil {
		sendJSON(w, []itemJSON{})
		return
	}
	sess.host.DeliverPage()
	res := <-pageReq.Result()
	if res.Err != nil {
		http.Error(w, "Load failed: "+res.Err.Error(), http.StatusConflict)
		return
	}
	sendJSON(w, itemsJSON(res.Items))
}

func (s *service) handleSearch(w http.ResponseWriter, req *http.Request) {
	sess, err := s.session("slicer", req.FormValue("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.slicerWidget.setSearch(req.FormValue("q"))
	pageReq := sess.slicerController.LoadMore(true)
	if pageReq == nil {
		sendJSON(w, []itemJSON{})
		return
	}
	sess.host.DeliverPage()
	res := <-pageReq.Result()
	if res.Err != nil {
		http.Error(w, "Search failed: "+res.Err.Error(), http.StatusConflict)
		return
	}
	sendJSON(w, itemsJSON(res.Items))
}

func (s *service) handleSelect(w http.ResponseWriter, req *http.Request) {
	sess, err := s.session("slicer", req.FormValue("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	wanted := map[string]bool{}
	for _, match := range req.Form["match"] {
		wanted[match] = true
	}
	selected := []slicer.Item{}
	for _, item := range sess.slicerController.Data() {
		if wanted[item.MatchText] {
			item.Selected = true
			selected = append(selected, item)
		}
	}
	sess.slicerController.OnSelectionChanged(selected)
	sess.slicerController.FlushSelection()
	sendJSON(w, itemsJSON(selected))
}

func (s *service) handleRange(w http.ResponseWriter, req *http.Request) {
	sess, err := s.session("timescale", req.FormValue("dataset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, end := req.FormValue("start"), req.FormValue("end")
	if start == "" && end == "" {
		sess.timeController.OnRangeSelected(nil)
		sendJSON(w, map[string]string{"range": "cleared"})
		return
	}
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		http.Error(w, "Bad start time: "+err.Error(), http.StatusBadRequest)
		return
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		http.Error(w, "Bad end time: "+err.Error(), http.StatusBadRequest)
		return
	}
	sess.timeController.OnRangeSelected(&timescale.Range{Start: startTime, End: endTime})
	sendJSON(w, map[string]any{"start": startTime, "end": endTime})
}
