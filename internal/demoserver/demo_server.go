package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/caselookup/internal/logging"
)

// CaseStatusPath is where the court serves case status pages.
const CaseStatusPath = "/app/get-case-type-status"

// DemoServer is a stand-in for the court website: case status pages in a
// switchable layout plus the order PDFs they link to.
type DemoServer struct {
	cfg    Config
	cases  map[string]CaseDefinition
	files  map[string]OrderDef
	layout Layout
	mu     sync.RWMutex
	logger logging.Logger
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if !cfg.Layout.Valid() {
		cfg.Layout = LayoutTable
	}
	if logger == nil {
		logger = logging.Nop()
	}

	cases := make(map[string]CaseDefinition)
	files := make(map[string]OrderDef)
	for _, c := range GetAllCases() {
		cases[c.Key()] = c
		for _, o := range c.Orders {
			files[strings.TrimSuffix(o.File, ".pdf")] = o
		}
	}

	return &DemoServer{
		cfg:    cfg,
		cases:  cases,
		files:  files,
		layout: cfg.Layout,
		logger: logger.With(logging.Field{Key: "component", Value: "demoserver"}),
	}
}

// Handler returns the demo site's routes.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("GET "+CaseStatusPath, s.caseStatusHandler)
	mux.HandleFunc("GET /orders/{name}", s.orderHandler)

	// Control panel for layout switching
	mux.HandleFunc("GET /demo/control", s.controlPanelHandler)
	mux.HandleFunc("POST /demo/set-layout", s.setLayoutHandler)
	mux.HandleFunc("GET /demo/cases", s.listCasesHandler)

	return mux
}

// Addr is the listen address derived from the configured port.
func (s *DemoServer) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Port)
}

// Start starts the demo server.
func (s *DemoServer) Start() error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("demo court starting",
		logging.Field{Key: "addr", Value: "http://localhost" + s.Addr()},
		logging.Field{Key: "control_panel", Value: "http://localhost" + s.Addr() + "/demo/control"},
		logging.Field{Key: "layout", Value: string(s.Layout())})
	return srv.ListenAndServe()
}

// Layout returns the layout currently used for case pages.
func (s *DemoServer) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// SetLayout switches the layout for subsequent case pages.
func (s *DemoServer) SetLayout(l Layout) error {
	if !l.Valid() {
		return fmt.Errorf("unknown layout %q", l)
	}
	s.mu.Lock()
	s.layout = l
	s.mu.Unlock()
	return nil
}

// CaseURL builds the status page URL of a case on a server rooted at base.
func CaseURL(base, caseType, number, year string) string {
	q := url.Values{}
	q.Set("case_type", caseType)
	q.Set("case_number", number)
	q.Set("year", year)
	return strings.TrimRight(base, "/") + CaseStatusPath + "?" + q.Encode()
}

func (s *DemoServer) sortedCases() []CaseDefinition {
	out := make([]CaseDefinition, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// caseStatusHandler serves one case in the current layout, or 404.
func (s *DemoServer) caseStatusHandler(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Latency > 0 {
		select {
		case <-time.After(s.cfg.Latency):
		case <-r.Context().Done():
			return
		}
	}

	q := r.URL.Query()
	key := caseKey(q.Get("case_type"), q.Get("case_number"), q.Get("year"))
	c, ok := s.cases[key]
	if !ok {
		s.logger.Info("case not found", logging.Field{Key: "key", Value: key})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = notFoundTmpl.Execute(w, nil)
		return
	}

	layout := s.Layout()
	s.logger.Info("serving case",
		logging.Field{Key: "key", Value: key},
		logging.Field{Key: "layout", Value: string(layout)})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := layoutTemplates[layout].Execute(w, c); err != nil {
		s.logger.Error("rendering case page", logging.Field{Key: "error", Value: err})
	}
}

// orderHandler serves a placeholder PDF for a known order, with or without
// the .pdf extension in the path.
func (s *DemoServer) orderHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".pdf")
	o, ok := s.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", o.File))
	_, _ = fmt.Fprintf(w, "%%PDF-1.4\n%% %s\n%%%%EOF\n", o.Name)
}

func (s *DemoServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTmpl.Execute(w, s.panelData())
}

type caseLink struct {
	CaseDefinition
	URL string
}

type panelData struct {
	Cases   []caseLink
	Layouts []Layout
	Current Layout
}

func (s *DemoServer) panelData() panelData {
	cases := s.sortedCases()
	links := make([]caseLink, 0, len(cases))
	for _, c := range cases {
		links = append(links, caseLink{CaseDefinition: c, URL: CaseURL("", c.Type, c.Number, c.Year)})
	}
	return panelData{Cases: links, Layouts: Layouts, Current: s.Layout()}
}

// controlPanelHandler serves the control panel for layout management.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = controlPanelTmpl.Execute(w, s.panelData())
}

// setLayoutHandler switches the case page layout.
func (s *DemoServer) setLayoutHandler(w http.ResponseWriter, r *http.Request) {
	layout := Layout(r.FormValue("layout"))
	if err := s.SetLayout(layout); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Info("layout switched", logging.Field{Key: "layout", Value: string(layout)})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"layout":  layout,
	})
}

// listCasesHandler returns the demo cases as JSON.
func (s *DemoServer) listCasesHandler(w http.ResponseWriter, r *http.Request) {
	type caseInfo struct {
		CaseType   string `json:"case_type"`
		CaseNumber string `json:"case_number"`
		FilingYear string `json:"filing_year"`
		URL        string `json:"url"`
		Orders     int    `json:"orders"`
	}

	var out []caseInfo
	for _, c := range s.sortedCases() {
		out = append(out, caseInfo{
			CaseType:   c.Type,
			CaseNumber: c.Number,
			FilingYear: c.Year,
			URL:        CaseURL("", c.Type, c.Number, c.Year),
			Orders:     len(c.Orders),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
