package widget

import (
	"sync"

	"github.com/nvkalinin/widget-calendar/grid"
)

const CalendarSection = "calendar"

// AltLocale — локаль, на которую переключает ToggleLocale, если сейчас выбрана локаль пользователя.
const AltLocale = "en-US"

type Locales interface {
	grid.Locales
	// Resolve возвращает идентификатор локали, который реально используется для названий.
	Resolve(locale string) string
}

type CalendarView struct {
	Locale   string         `json:"locale"`
	Ref      grid.Date      `json:"ref"`
	Month    string         `json:"month"`
	Year     int            `json:"year"`
	Weekdays []string       `json:"weekdays"`
	Days     grid.MonthGrid `json:"days"`
}

// MakeCalendarView собирает все, что нужно для отрисовки месяца ref.
func MakeCalendarView(loc Locales, ref, today grid.Date, locale string) CalendarView {
	b := &grid.Builder{Locales: loc}
	ref = ref.FirstOfMonth()

	return CalendarView{
		Locale:   loc.Resolve(locale),
		Ref:      ref,
		Month:    b.MonthLabel(ref, locale),
		Year:     b.YearLabel(ref),
		Weekdays: b.WeekdayLabels(locale),
		Days:     b.BuildGrid(ref, today, locale),
	}
}

// Calendar хранит состояние виджета календаря: отображаемый месяц и выбранную локаль.
// Локаль сохраняется в Vars, месяц — нет: при запуске всегда показывается текущий.
type Calendar struct {
	mu         sync.Mutex
	loc        Locales
	vars       Vars
	userLocale string
	locale     string
	ref        grid.Date
}

func NewCalendar(loc Locales, vars Vars, userLocale string, today grid.Date) *Calendar {
	return &Calendar{
		loc:        loc,
		vars:       vars,
		userLocale: userLocale,
		locale:     LoadVar(vars, CalendarSection, "locale", userLocale),
		ref:        today.FirstOfMonth(),
	}
}

// Reload перечитывает переменные виджета после их изменения извне.
func (c *Calendar) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locale = LoadVar(c.vars, CalendarSection, "locale", c.userLocale)
}

func (c *Calendar) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ref = c.ref.AddMonths(-1)
}

func (c *Calendar) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ref = c.ref.AddMonths(1)
}

// ToggleLocale переключает локаль между локалью пользователя и AltLocale.
func (c *Calendar) ToggleLocale() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locale = toggle(c.locale, c.userLocale, AltLocale)
	writeVar(c.vars, CalendarSection, "locale", c.locale)
	return c.locale
}

func (c *Calendar) View(today grid.Date) CalendarView {
	c.mu.Lock()
	ref, locale := c.ref, c.locale
	c.mu.Unlock()

	return MakeCalendarView(c.loc, ref, today, locale)
}

func toggle(cur, a, b string) string {
	if cur == a {
		return b
	}
	return a
}
