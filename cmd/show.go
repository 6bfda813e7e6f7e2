package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/render"
	"github.com/nvkalinin/widget-calendar/widget"
)

type OutputFormat string

var (
	OutputText OutputFormat = "text"
	OutputHTML OutputFormat = "html"
	OutputJSON OutputFormat = "json"
)

// Show печатает сетку месяца без запуска сервера.
type Show struct {
	Year   int          `long:"year" short:"y" env:"YEAR" value-name:"int" description:"Год. По умолчанию — текущий."`
	Month  int          `long:"month" short:"m" env:"MONTH" value-name:"1-12" description:"Месяц. По умолчанию — текущий."`
	Locale string       `long:"locale" short:"l" env:"LOCALE" value-name:"locale" description:"Локаль сетки. По умолчанию — --locale.default."`
	Format OutputFormat `long:"format" short:"f" env:"FORMAT" choice:"text" choice:"html" choice:"json" default:"text" description:"Формат вывода."`

	LocaleOpts LocaleOpts `group:"Локаль" namespace:"locale" env-namespace:"LOCALE"`

	out io.Writer
	now func() time.Time
}

func (s *Show) Execute(args []string) error {
	loc, err := s.LocaleOpts.makeProvider()
	if err != nil {
		return err
	}

	today := grid.DateOf(s.timeNow())
	ref := today.FirstOfMonth()
	if s.Year != 0 {
		ref.Year = s.Year
	}
	if s.Month != 0 {
		if s.Month < int(time.January) || s.Month > int(time.December) {
			return fmt.Errorf("invalid month %d", s.Month)
		}
		ref.Month = time.Month(s.Month)
	}

	v := widget.MakeCalendarView(loc, ref, today, s.Locale)

	w := s.output()
	switch s.Format {
	case OutputHTML:
		return render.HTML(w, v)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return render.Text(w, v)
	}
}

func (s *Show) output() io.Writer {
	if s.out != nil {
		return s.out
	}
	return os.Stdout
}

func (s *Show) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
