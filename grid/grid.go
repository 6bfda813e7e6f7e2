package grid

import "time"

type Tag string

const (
	Prev    Tag = "prev"    // День предыдущего месяца.
	Current Tag = "current" // День отображаемого месяца.
	Today   Tag = "today"   // Сегодняшний день отображаемого месяца.
	Next    Tag = "next"    // День следующего месяца.
)

type DayCell struct {
	Day int `json:"day"`
	Tag Tag `json:"tag"`
}

// MonthGrid всегда состоит из целых недель: len(MonthGrid) % 7 == 0.
type MonthGrid []DayCell

func (g MonthGrid) Weeks() [][]DayCell {
	weeks := make([][]DayCell, 0, len(g)/7)
	for i := 0; i+7 <= len(g); i += 7 {
		weeks = append(weeks, g[i:i+7])
	}
	return weeks
}

// Locales — источник локализованных данных календаря.
type Locales interface {
	// WeekStart возвращает первый день недели, принятый в локали.
	WeekStart(locale string) time.Weekday
	// ShortWeekdays индексируется time.Weekday (0 — воскресенье).
	ShortWeekdays(locale string) [7]string
	MonthName(locale string, m time.Month) string
}

// Builder строит сетку месяца. Не хранит состояния, все методы — чистые функции от аргументов.
type Builder struct {
	Locales Locales
}

// WeekdayLabels возвращает короткие названия дней недели, начиная с первого дня недели локали.
func (b *Builder) WeekdayLabels(locale string) []string {
	names := b.Locales.ShortWeekdays(locale)
	start := b.Locales.WeekStart(locale)

	labels := make([]string, 7)
	for i := range labels {
		labels[i] = names[(int(start)+i)%7]
	}
	return labels
}

// BuildGrid возвращает сетку месяца ref: хвост предыдущего месяца, дни месяца и начало следующего,
// выровненные по первому дню недели локали. Today помечается, только если today попадает в тот же месяц.
// День в ref игнорируется, месяц должен быть в диапазоне 1-12.
func (b *Builder) BuildGrid(ref Date, today Date, locale string) MonthGrid {
	ref = ref.FirstOfMonth()
	start := b.Locales.WeekStart(locale)

	days := daysInMonth(ref.Year, ref.Month)
	prevDays := daysInMonth(ref.Year, ref.Month-1)

	firstIdx := columnOf(ref.Weekday(), start)
	lastIdx := columnOf(Date{ref.Year, ref.Month, days}.Weekday(), start)
	trailing := 6 - lastIdx

	g := make(MonthGrid, 0, firstIdx+days+trailing)

	for d := prevDays - firstIdx + 1; d <= prevDays; d++ {
		g = append(g, DayCell{Day: d, Tag: Prev})
	}

	markToday := today.SameMonth(ref)
	for d := 1; d <= days; d++ {
		tag := Current
		if markToday && d == today.Day {
			tag = Today
		}
		g = append(g, DayCell{Day: d, Tag: tag})
	}

	for d := 1; d <= trailing; d++ {
		g = append(g, DayCell{Day: d, Tag: Next})
	}

	return g
}

func (b *Builder) MonthLabel(ref Date, locale string) string {
	return b.Locales.MonthName(locale, ref.Month)
}

func (b *Builder) YearLabel(ref Date) int {
	return ref.Year
}

// columnOf — номер колонки (0-6) дня недели wd в неделе, начинающейся с start.
func columnOf(wd time.Weekday, start time.Weekday) int {
	return (int(wd) - int(start) + 7) % 7
}
