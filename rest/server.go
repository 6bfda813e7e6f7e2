package rest

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/render"
	"github.com/nvkalinin/widget-calendar/store"
	"github.com/nvkalinin/widget-calendar/widget"
)

type Store interface {
	FindSection(section string) (store.Vars, bool)
	PutSection(section string, vars store.Vars) error
}

// Backuper реализуют хранилища, которые умеют делать резервную копию (bolt).
type Backuper interface {
	Backup(w io.Writer) error
}

type Server struct {
	Locales  widget.Locales
	Store    Store
	Backup   Backuper // Необязательно.
	Calendar *widget.Calendar
	Clock    *widget.Clock
	Now      func() time.Time // Необязательно, по умолчанию time.Now.
	Opts     Opts

	mu  sync.Mutex
	srv *http.Server
}

type Opts struct {
	Listen      string
	LogRequests bool
	AdminPasswd string // Если пусто, /api/admin/* отключены.

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	RateLimiter bool
	ReqLimit    int
	LimitWindow time.Duration
}

func (s *Server) Run() error {
	s.mu.Lock()
	s.srv = &http.Server{
		Addr:              s.Opts.Listen,
		Handler:           s.routes(),
		ReadTimeout:       s.Opts.ReadTimeout,
		ReadHeaderTimeout: s.Opts.ReadHeaderTimeout,
		WriteTimeout:      s.Opts.WriteTimeout,
		IdleTimeout:       s.Opts.IdleTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	log.Printf("[INFO] rest server listening on %s", s.Opts.Listen)
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("rest server shutdown: %w", err)
	}
	return nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	if s.Opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/widget/calendar", s.calendarHtmlCtrl)

	r.Route("/api", func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}

		r.Get("/grid/{y}/{m}", s.gridCtrl)
		r.Get("/weekdays", s.weekdaysCtrl)

		r.Route("/widget/calendar", func(r chi.Router) {
			r.Get("/", s.calendarCtrl)
			r.Post("/prev", s.calendarAction(func(c *widget.Calendar) { c.Prev() }))
			r.Post("/next", s.calendarAction(func(c *widget.Calendar) { c.Next() }))
			r.Post("/locale", s.calendarAction(func(c *widget.Calendar) { c.ToggleLocale() }))
		})

		r.Route("/widget/clock", func(r chi.Router) {
			r.Get("/", s.clockCtrl)
			r.Post("/format", s.clockAction(func(c *widget.Clock) { c.ToggleFormat() }))
			r.Post("/locale", s.clockAction(func(c *widget.Clock) { c.ToggleLocale() }))
		})

		if s.Opts.AdminPasswd != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.BasicAuth("admin", map[string]string{"admin": s.Opts.AdminPasswd}))
				r.Get("/vars/{section}", s.getVarsCtrl)
				r.Post("/vars/{section}", s.setVarsCtrl)
				r.Get("/backup", s.backupCtrl)
			})
		}
	})

	return r
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) gridCtrl(w http.ResponseWriter, r *http.Request) {
	y, err1 := yearParam(r)
	m, err2 := monthParam(r)
	err := combineErrors(err1, err2)
	if err != nil {
		sendErrorJson(w, 400, "invalid date")
		return
	}

	today := grid.DateOf(s.now())
	if val := r.URL.Query().Get("today"); val != "" {
		if today, err = grid.ParseDate(val); err != nil {
			sendErrorJson(w, 400, "invalid today")
			return
		}
	}

	ref := grid.Date{Year: y, Month: m, Day: 1}
	sendJsonResponse(w, widget.MakeCalendarView(s.Locales, ref, today, r.URL.Query().Get("locale")))
}

func (s *Server) weekdaysCtrl(w http.ResponseWriter, r *http.Request) {
	b := &grid.Builder{Locales: s.Locales}
	sendJsonResponse(w, b.WeekdayLabels(r.URL.Query().Get("locale")))
}

func (s *Server) calendarCtrl(w http.ResponseWriter, r *http.Request) {
	sendJsonResponse(w, s.Calendar.View(grid.DateOf(s.now())))
}

func (s *Server) calendarHtmlCtrl(w http.ResponseWriter, r *http.Request) {
	v := s.Calendar.View(grid.DateOf(s.now()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(200)
	if err := render.HTML(w, v); err != nil {
		log.Printf("[WARN] cannot write calendar html: %+v", err)
	}
}

func (s *Server) calendarAction(action func(*widget.Calendar)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action(s.Calendar)
		s.calendarCtrl(w, r)
	}
}

func (s *Server) clockCtrl(w http.ResponseWriter, r *http.Request) {
	sendJsonResponse(w, s.Clock.View(s.now()))
}

func (s *Server) clockAction(action func(*widget.Clock)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action(s.Clock)
		s.clockCtrl(w, r)
	}
}

func (s *Server) getVarsCtrl(w http.ResponseWriter, r *http.Request) {
	section, err := nameParam(r, "section")
	if err != nil {
		sendErrorJson(w, 400, "invalid section")
		return
	}

	vars, found := s.Store.FindSection(section)
	if !found {
		sendErrorJson(w, 404, "section not found")
		return
	}

	sendJsonResponse(w, vars)
}

// setVarsCtrl сохраняет переменные из формы (key=value) и перечитывает настройки виджета.
func (s *Server) setVarsCtrl(w http.ResponseWriter, r *http.Request) {
	section, err := nameParam(r, "section")
	if err != nil {
		sendErrorJson(w, 400, "invalid section")
		return
	}

	if err := r.ParseForm(); err != nil {
		sendErrorJson(w, 400, "invalid form")
		return
	}

	vars := make(store.Vars, len(r.PostForm))
	for key, vals := range r.PostForm {
		if !validName(key) || len(vals) == 0 {
			sendErrorJson(w, 400, fmt.Sprintf("invalid variable '%s'", key))
			return
		}
		vars[key] = vals[len(vals)-1]
	}
	if len(vars) == 0 {
		sendErrorJson(w, 400, "no variables")
		return
	}

	if err := s.Store.PutSection(section, vars); err != nil {
		log.Printf("[ERROR] cannot save vars of %s: %+v", section, err)
		sendErrorJson(w, 500, "cannot save variables")
		return
	}

	switch section {
	case widget.CalendarSection:
		s.Calendar.Reload()
	case widget.ClockSection:
		s.Clock.Reload()
	}

	res := make(map[string]string, len(vars))
	for key := range vars {
		res[key] = "ok"
	}
	sendJsonResponse(w, res)
}

func (s *Server) backupCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Backup == nil {
		sendErrorJson(w, 501, "store engine does not support backups")
		return
	}

	fname := fmt.Sprintf("vars_%s.bolt.gz", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fname))
	w.WriteHeader(200)

	gz := gzip.NewWriter(w)
	if err := s.Backup.Backup(gz); err != nil {
		log.Printf("[ERROR] cannot write backup: %+v", err)
		return
	}
	if err := gz.Close(); err != nil {
		log.Printf("[WARN] cannot finish backup: %+v", err)
	}
}

func intParam(r *http.Request, param string) (int, error) {
	strVal := chi.URLParam(r, param)
	return strconv.Atoi(strVal)
}

func yearParam(r *http.Request) (int, error) {
	y, err := intParam(r, "y")
	if err != nil {
		return 0, err
	}

	if y <= 0 {
		return 0, fmt.Errorf("invalid year")
	}
	return y, nil
}

func monthParam(r *http.Request) (time.Month, error) {
	m, err := intParam(r, "m")
	if err != nil {
		return 0, err
	}

	if m < int(time.January) || m > int(time.December) {
		return 0, fmt.Errorf("invalid month number")
	}
	return time.Month(m), nil
}

func nameParam(r *http.Request, param string) (string, error) {
	name := chi.URLParam(r, param)
	if !validName(name) {
		return "", fmt.Errorf("invalid name '%s'", name)
	}
	return name, nil
}

// validName не пропускает '/': он разделяет секцию и ключ в хранилище bolt.
func validName(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/ ")
}

func combineErrors(err ...error) error {
	nonNil := make([]error, 0, len(err))
	for _, e := range err {
		if e != nil {
			nonNil = append(nonNil, e)
		}
	}

	if len(nonNil) == 0 {
		return nil
	}
	return fmt.Errorf("%+v", nonNil)
}

func sendJsonResponse(w http.ResponseWriter, data interface{}) {
	respJson, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WARN] cannot marshal response data: %+v", err)
		sendErrorJson(w, 500, "cannot marshal response data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if _, err = w.Write(respJson); err != nil {
		log.Printf("[WARN] cannot write response data: %+v", err)
	}
}

func sendErrorJson(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	restErr := &struct {
		Msg string `json:"msg"`
	}{msg}

	errJson, err := json.Marshal(restErr)
	if err != nil {
		log.Printf("[WARN] cannot marshal rest error: %+v", err)
		return
	}

	if _, err = w.Write(errJson); err != nil {
		log.Printf("[WARN] cannot write rest error: %+v", err)
	}
}
