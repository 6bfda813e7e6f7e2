package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nvkalinin/widget-calendar/grid"
	"github.com/nvkalinin/widget-calendar/log"
	"github.com/nvkalinin/widget-calendar/rest"
	"github.com/nvkalinin/widget-calendar/store"
	"github.com/nvkalinin/widget-calendar/store/engine"
	"github.com/nvkalinin/widget-calendar/widget"
	"golang.org/x/sync/errgroup"
)

type EngineType string

var (
	EngineMemory EngineType = "memory"
	EngineBolt   EngineType = "bolt"
)

type Server struct {
	TimeZone string     `long:"timezone" env:"TIMEZONE" value-name:"name" default:"Local" description:"Часовой пояс часов по умолчанию (IANA, например Europe/Moscow)."`
	Locale   LocaleOpts `group:"Локаль" namespace:"locale" env-namespace:"LOCALE"`

	Web struct {
		Listen      string `long:"listen" env:"LISTEN" value-name:"addr" default:"127.0.0.1:8080" description:"Сетевой адрес для веб-сервера."`
		AccessLog   bool   `long:"access-log" env:"ACCESS_LOG" description:"Логировать все HTTP-запросы."`
		AdminPasswd string `long:"admin-passwd" env:"ADMIN_PASSWD" description:"Пароль пользователя admin для вызова /api/admin/*. Если не задан, /api/admin/* отключены."`

		ReadTimeout       time.Duration `long:"read-timeout" env:"READ_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadTimeout"`
		ReadHeaderTimeout time.Duration `long:"read-header-timeout" env:"READ_HEADER_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadHeaderTimeout"`
		IdleTimeout       time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" value-name:"duration" default:"30s" description:"http.Server IdleTimeout"`

		// Бекап большого хранилища может отдаваться долго.
		WriteTimeout time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" value-name:"duration" default:"60s" description:"http.Server WriteTimeout"`

		RateLimiter struct {
			ReqLimit    int           `long:"reqs" env:"REQS" value-name:"num" default:"100" description:"Количество запросов с одного IP. Если 0 — rate limiter отключен."`
			LimitWindow time.Duration `long:"window" env:"WINDOW" value-name:"duration" default:"1s" description:"Интервал времени, за который разрешено указанное кол-во запросов."`
		} `group:"Rate Limiter" namespace:"ratelim" env-namespace:"RATE_LIM"`
	} `group:"Web" namespace:"web" env-namespace:"WEB"`

	Store struct {
		Engine EngineType `long:"engine" env:"ENGINE" value-name:"type" choice:"memory" choice:"bolt" default:"bolt" description:"Тип хранилища для переменных виджетов."`

		Bolt struct {
			File string `long:"file" env:"FILE" value-name:"path" default:"widgets.bolt" description:"Путь к файлу БД."`
		} `group:"Настройки хранилища bolt" namespace:"bolt" env-namespace:"BOLT"`
	} `group:"Хранилище" namespace:"store" env-namespace:"STORE"`
}

func (s *Server) Execute(args []string) error {
	a, err := s.makeApp()
	if err != nil {
		return err
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		a.shutdown()
	}()

	a.run()
	a.wait()
	return nil
}

type Store interface {
	GetVar(section, key string) (string, bool)
	FindSection(section string) (store.Vars, bool)
	PutVar(section, key, val string) error
	PutSection(section string, vars store.Vars) error
}

type app struct {
	srv   *rest.Server
	store Store

	stopOnce sync.Once
	stopped  chan struct{}
}

func (s *Server) makeApp() (*app, error) {
	a := &app{
		stopped: make(chan struct{}),
	}

	st, err := s.makeStore()
	if err != nil {
		return nil, err
	}
	a.store = st

	loc, err := s.Locale.makeProvider()
	if err != nil {
		a.closeStore()
		return nil, err
	}

	tz := s.TimeZone
	if _, err := time.LoadLocation(tz); err != nil {
		a.closeStore()
		return nil, fmt.Errorf("timezone: %w", err)
	}

	userLocale := loc.Default()
	a.srv = &rest.Server{
		Locales:  loc,
		Store:    st,
		Calendar: widget.NewCalendar(loc, st, userLocale, grid.DateOf(time.Now())),
		Clock:    widget.NewClock(loc, st, userLocale, tz),
		Opts: rest.Opts{
			Listen:      s.Web.Listen,
			LogRequests: s.Web.AccessLog,
			AdminPasswd: s.Web.AdminPasswd,

			ReadTimeout:       s.Web.ReadTimeout,
			ReadHeaderTimeout: s.Web.ReadHeaderTimeout,
			WriteTimeout:      s.Web.WriteTimeout,
			IdleTimeout:       s.Web.IdleTimeout,

			RateLimiter: s.Web.RateLimiter.ReqLimit > 0,
			ReqLimit:    s.Web.RateLimiter.ReqLimit,
			LimitWindow: s.Web.RateLimiter.LimitWindow,
		},
	}
	if b, ok := st.(rest.Backuper); ok {
		a.srv.Backup = b
	}

	return a, nil
}

func (s *Server) makeStore() (Store, error) {
	switch s.Store.Engine {
	case EngineMemory:
		return engine.NewMemory(), nil
	case EngineBolt:
		return engine.NewBolt(s.Store.Bolt.File)
	default:
		return nil, fmt.Errorf("unknown store engine %s", s.Store.Engine)
	}
}

func (a *app) run() {
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		if err := a.srv.Run(); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] startup: %v", err)
			return err
		}
		return nil
	})

	if g.Wait() != nil {
		a.shutdown()
	}
}

func (a *app) shutdown() {
	a.stopOnce.Do(func() {
		log.Printf("[INFO] shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.srv.Shutdown(ctx); err != nil {
			log.Printf("[ERROR] app shutdown: %v", err)
		}
		a.closeStore()
		close(a.stopped)
	})
}

func (a *app) closeStore() {
	c, ok := a.store.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Printf("[WARN] cannot close store: %v", err)
	}
}

func (a *app) wait() {
	<-a.stopped
}
