package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/widget"
)

// Text выводит месяц таблицей для терминала. Дни соседних месяцев — в круглых скобках, сегодня — в квадратных.
func Text(w io.Writer, v widget.CalendarView) error {
	if _, err := fmt.Fprintf(w, "%s %d\n", v.Month, v.Year); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 4, 0, 1, ' ', tabwriter.AlignRight)
	for _, name := range v.Weekdays {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)

	for _, week := range v.Days.Weeks() {
		for _, c := range week {
			fmt.Fprintf(tw, "%s\t", cellText(c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func cellText(c grid.DayCell) string {
	d := strconv.Itoa(c.Day)
	switch c.Tag {
	case grid.Prev, grid.Next:
		return "(" + d + ")"
	case grid.Today:
		return "[" + d + "]"
	default:
		return d
	}
}

// ClockLine — одна строка часов: время и дата.
func ClockLine(v widget.ClockView) string {
	s := fmt.Sprintf("%s:%s:%s", v.Hours, v.Minutes, v.Seconds)
	if v.AMPM != "" {
		s += " " + v.AMPM
	}
	return s + "  " + v.Date
}
