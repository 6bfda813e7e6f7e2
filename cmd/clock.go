package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvkalinin/widget-calendar/render"
	"github.com/nvkalinin/widget-calendar/store"
	"github.com/nvkalinin/widget-calendar/store/engine"
	"github.com/nvkalinin/widget-calendar/widget"
)

// Clock печатает время раз в секунду, пока не придет SIGINT/SIGTERM.
type Clock struct {
	TimeZone string `long:"timezone" short:"z" env:"TIMEZONE" value-name:"name" default:"Local" description:"Часовой пояс (IANA)."`
	Locale   string `long:"locale" short:"l" env:"LOCALE" value-name:"locale" description:"Локаль даты. По умолчанию — --locale.default."`
	Format   string `long:"format" short:"f" env:"FORMAT" choice:"12h" choice:"24h" default:"12h" description:"Формат времени."`
	Once     bool   `long:"once" description:"Напечатать время один раз и выйти."`

	LocaleOpts LocaleOpts `group:"Локаль" namespace:"locale" env-namespace:"LOCALE"`

	out io.Writer
}

func (c *Clock) Execute(args []string) error {
	loc, err := c.LocaleOpts.makeProvider()
	if err != nil {
		return err
	}

	// Настройки из флагов подаются виджету как сохраненные переменные.
	vars := engine.NewMemory()
	clockVars := store.Vars{
		"timezone": c.TimeZone,
		"format":   c.Format,
	}
	if c.Locale != "" {
		clockVars["locale"] = c.Locale
	}
	if err := vars.PutSection(widget.ClockSection, clockVars); err != nil {
		return err
	}

	clock := widget.NewClock(loc, vars, loc.Default(), c.TimeZone)
	w := c.output()
	printLine := func(now time.Time) {
		fmt.Fprintln(w, render.ClockLine(clock.View(now)))
	}

	printLine(time.Now())
	if c.Once {
		return nil
	}

	t := widget.NewTicker(time.Second, printLine)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.Shutdown(ctx)
	}()

	t.Run()
	return nil
}

func (c *Clock) output() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
