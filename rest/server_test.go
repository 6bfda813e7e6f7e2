package rest

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/locale"
	"github.com/nvkalinin/widget-calendar/store/engine"
	"github.com/nvkalinin/widget-calendar/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Opts{
	LogRequests: false,
	AdminPasswd: "pass",
	RateLimiter: true,
	ReqLimit:    100,
	LimitWindow: 1 * time.Second,
}

var testNow = time.Date(2026, time.January, 17, 21, 5, 9, 0, time.UTC)

func newServer(t *testing.T, vars Store) *Server {
	loc, err := locale.NewProvider(locale.DefaultLocale)
	require.NoError(t, err)

	if vars == nil {
		vars = engine.NewMemory()
	}
	wv := vars.(widget.Vars)

	return &Server{
		Locales:  loc,
		Store:    vars,
		Calendar: widget.NewCalendar(loc, wv, "de-DE", grid.DateOf(testNow)),
		Clock:    widget.NewClock(loc, wv, "en-US", "UTC"),
		Now:      func() time.Time { return testNow },
		Opts:     testOpts,
	}
}

func get(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func post(t *testing.T, url string) (int, string) {
	resp, err := http.Post(url, "text/plain", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_Grid(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	// Февраль 2026 начинается в воскресенье и занимает ровно 4 недели.
	status, json := get(t, srv.URL+"/api/grid/2026/2?locale=en-US&today=2026-02-03")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"month":"February"`)
	assert.Contains(t, json, `"weekdays":["Sun","Mon","Tue","Wed","Thu","Fri","Sat"]`)
	assert.Contains(t, json, `"days":[{"day":1,"tag":"current"},{"day":2,"tag":"current"},{"day":3,"tag":"today"}`)
	assert.Contains(t, json, `{"day":28,"tag":"current"}]`)

	// Без today используется текущая дата сервера.
	status, json = get(t, srv.URL+"/api/grid/2026/1?locale=de-DE")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `{"day":17,"tag":"today"}`)
	assert.Contains(t, json, `"locale":"de-DE"`)

	// Некорректная локаль заменяется локалью по умолчанию.
	status, json = get(t, srv.URL+"/api/grid/2026/1?locale="+url.QueryEscape("%%bad"))
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"locale":"en-US"`)

	status, _ = get(t, srv.URL+"/api/grid/2026/13")
	assert.Equal(t, 400, status)

	status, json = get(t, srv.URL+"/api/grid/2026/1?today=yesterday")
	assert.Equal(t, 400, status)
	assert.JSONEq(t, `{"msg": "invalid today"}`, json)
}

func TestServer_Weekdays(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	status, json := get(t, srv.URL+"/api/weekdays?locale=fr-FR")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `["lun.","mar.","mer.","jeu.","ven.","sam.","dim."]`, json)
}

func TestServer_CalendarWidget(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	status, json := get(t, srv.URL+"/api/widget/calendar")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"month":"Januar"`)

	status, json = post(t, srv.URL+"/api/widget/calendar/next")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"month":"Februar"`)

	status, json = post(t, srv.URL+"/api/widget/calendar/locale")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"month":"February"`)

	status, _ = post(t, srv.URL+"/api/widget/calendar/prev")
	assert.Equal(t, 200, status)

	resp, err := http.Get(srv.URL + "/widget/calendar")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "January", doc.Find("#current-month").Text())
	assert.Equal(t, "17", doc.Find(".days .today").Text())
}

func TestServer_ClockWidget(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	status, json := get(t, srv.URL+"/api/widget/clock")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{
		"locale":   "en-US",
		"timezone": "UTC",
		"format":   "12h",
		"hours":    "09",
		"minutes":  "05",
		"seconds":  "09",
		"ampm":     "PM",
		"date":     "Saturday, January 17"
	}`, json)

	status, json = post(t, srv.URL+"/api/widget/clock/format")
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"hours":"21"`)
}

func TestServer_AdminVars(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	form := url.Values{"timezone": {"Europe/Berlin"}, "locale": {"de-DE"}}

	// Без пароля.
	resp, err := http.PostForm(srv.URL+"/api/admin/vars/clock", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 401, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/admin/vars/clock", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("admin", "pass")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"timezone": "ok", "locale": "ok"}`, string(body))

	// Часы сразу используют новые настройки.
	_, json := get(t, srv.URL+"/api/widget/clock")
	assert.Contains(t, json, `"hours":"10"`) // 22:05 в Берлине
	assert.Contains(t, json, `"date":"Samstag, 17. Januar"`)

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/admin/vars/clock", http.NoBody)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "pass")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.JSONEq(t, `{"timezone": "Europe/Berlin", "locale": "de-DE", "format": "12h"}`, string(body))
}

func TestServer_Backup(t *testing.T) {
	backupReq := func(url string) *http.Request {
		req, err := http.NewRequest(http.MethodGet, url+"/api/admin/backup", http.NoBody)
		require.NoError(t, err)
		req.SetBasicAuth("admin", "pass")
		return req
	}

	// Хранилище без резервного копирования.
	memSrv := httptest.NewServer(newServer(t, nil).routes())
	defer memSrv.Close()

	resp, err := http.DefaultClient.Do(backupReq(memSrv.URL))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 501, resp.StatusCode)

	b, err := engine.NewBolt(t.TempDir() + "/vars.bolt")
	require.NoError(t, err)
	defer b.Close()

	s := newServer(t, b)
	s.Backup = b
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err = http.DefaultClient.Do(backupReq(srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "vars_2026-01-17.bolt.gz")

	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "restore-*.bolt")
	require.NoError(t, err)
	_, err = io.Copy(f, gz)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	restored, err := engine.NewBolt(f.Name())
	require.NoError(t, err)
	defer restored.Close()

	val, ok := restored.GetVar(widget.ClockSection, "format")
	assert.True(t, ok)
	assert.Equal(t, "12h", val)
}

func TestServer_Ping(t *testing.T) {
	srv := httptest.NewServer(newServer(t, nil).routes())
	defer srv.Close()

	status, _ := get(t, srv.URL+"/ping")
	assert.Equal(t, 200, status)
}
