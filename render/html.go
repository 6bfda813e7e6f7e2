package render

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/widget"
)

var cellClass = map[grid.Tag]string{
	grid.Prev:    "prev-date",
	grid.Current: "",
	grid.Today:   "today",
	grid.Next:    "next-date",
}

// HTML выводит разметку виджета календаря. Классы и id совпадают с теми, что ожидают стили скина.
func HTML(w io.Writer, v widget.CalendarView) error {
	root := elem(atom.Div, "class", "calendar", "lang", v.Locale)

	month := elem(atom.Div, "class", "month")
	month.AppendChild(withText(elem(atom.Button, "id", "prev-month"), "‹"))
	date := elem(atom.Div, "class", "date")
	date.AppendChild(withText(elem(atom.Span, "id", "current-month"), monthTitle(v)))
	date.AppendChild(text(" "))
	date.AppendChild(withText(elem(atom.Span, "id", "current-year"), strconv.Itoa(v.Year)))
	month.AppendChild(date)
	month.AppendChild(withText(elem(atom.Button, "id", "next-month"), "›"))
	root.AppendChild(month)

	weekdays := elem(atom.Div, "class", "weekdays")
	for _, name := range v.Weekdays {
		weekdays.AppendChild(withText(elem(atom.Span), name))
	}
	root.AppendChild(weekdays)

	days := elem(atom.Div, "class", "days")
	for _, c := range v.Days {
		var cell *html.Node
		if class := cellClass[c.Tag]; class != "" {
			cell = elem(atom.Div, "class", class)
		} else {
			cell = elem(atom.Div)
		}
		days.AppendChild(withText(cell, strconv.Itoa(c.Day)))
	}
	root.AppendChild(days)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render/html cannot render calendar: %w", err)
	}
	return nil
}

// monthTitle — название месяца с заглавной буквы (в ru, fr, es месяцы пишутся со строчной).
func monthTitle(v widget.CalendarView) string {
	tag, err := language.Parse(v.Locale)
	if err != nil {
		tag = language.Und
	}
	return cases.Title(tag).String(v.Month)
}

func elem(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}
