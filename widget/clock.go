package widget

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // Часовые пояса нужны и там, где нет системной базы (Windows).

	"github.com/nvkalinin/widget-calendar/log"
)

const ClockSection = "clock"

const (
	Format12h = "12h"
	Format24h = "24h"
)

type ClockLocales interface {
	Resolve(locale string) string
	DayPeriod(locale string, pm bool) string
	FormatDate(locale string, t time.Time) string
}

type ClockView struct {
	Locale   string `json:"locale"`
	TimeZone string `json:"timezone"`
	Format   string `json:"format"`
	Hours    string `json:"hours"`
	Minutes  string `json:"minutes"`
	Seconds  string `json:"seconds"`
	AMPM     string `json:"ampm"` // Пусто в формате 24h.
	Date     string `json:"date"`
}

// Clock хранит настройки виджета часов: часовой пояс, локаль и формат 12h/24h.
type Clock struct {
	mu         sync.Mutex
	loc        ClockLocales
	vars       Vars
	userLocale string
	userTZ     string
	locale     string
	format     string
	tzName     string
	tz         *time.Location
}

func NewClock(loc ClockLocales, vars Vars, userLocale string, userTZ string) *Clock {
	c := &Clock{
		loc:        loc,
		vars:       vars,
		userLocale: userLocale,
		userTZ:     userTZ,
	}
	c.load()
	return c
}

// Reload перечитывает переменные виджета после их изменения извне.
func (c *Clock) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
}

func (c *Clock) load() {
	c.locale = LoadVar(c.vars, ClockSection, "locale", c.userLocale)
	c.format = LoadVar(c.vars, ClockSection, "format", Format12h)
	c.setTimeZone(LoadVar(c.vars, ClockSection, "timezone", c.userTZ))
}

func (c *Clock) setTimeZone(name string) {
	tz, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] widget/clock unknown timezone '%s', using local: %v", name, err)
		tz = time.Local
	}
	c.tzName = name
	c.tz = tz
}

func (c *Clock) ToggleFormat() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.format = toggle(c.format, Format12h, Format24h)
	writeVar(c.vars, ClockSection, "format", c.format)
	return c.format
}

func (c *Clock) ToggleLocale() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locale = toggle(c.locale, c.userLocale, AltLocale)
	writeVar(c.vars, ClockSection, "locale", c.locale)
	return c.locale
}

// View возвращает показания часов на момент now в часовом поясе виджета.
func (c *Clock) View(now time.Time) ClockView {
	c.mu.Lock()
	locale, format, tzName, tz := c.locale, c.format, c.tzName, c.tz
	c.mu.Unlock()

	t := now.In(tz)
	v := ClockView{
		Locale:   c.loc.Resolve(locale),
		TimeZone: tzName,
		Format:   format,
		Minutes:  fmt.Sprintf("%02d", t.Minute()),
		Seconds:  fmt.Sprintf("%02d", t.Second()),
		Date:     c.loc.FormatDate(locale, t),
	}

	h := t.Hour()
	if format == Format24h {
		v.Hours = fmt.Sprintf("%02d", h)
		return v
	}

	v.AMPM = c.loc.DayPeriod(locale, h >= 12)
	h %= 12
	if h == 0 {
		h = 12
	}
	v.Hours = fmt.Sprintf("%02d", h)
	return v
}
