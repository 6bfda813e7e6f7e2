package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/nvkalinin/widget-calendar/cmd"
	"github.com/nvkalinin/widget-calendar/log"
)

type CLI struct {
	Debug bool `short:"d" long:"debug" env:"DEBUG" description:"Выводить отладочные сообщения в лог."`

	Server cmd.Server `command:"server" description:"Запустить сервер виджетов (REST + HTML)."`
	Show   cmd.Show   `command:"show" description:"Напечатать календарь на месяц."`
	Clock  cmd.Clock  `command:"clock" description:"Показывать часы в терминале."`
	Set    cmd.Set    `command:"set" description:"Изменить переменные виджета на сервере."`
	Backup cmd.Backup `command:"backup" description:"Сделать резервную копию хранилища bolt."`
}

func main() {
	cli := &CLI{}
	parser := flags.NewParser(cli, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		log.Setup(cli.Debug, nil)

		if cmd != nil {
			return cmd.Execute(args)
		}
		return nil
	}

	if _, err := parser.Parse(); err != nil {
		flagsErr, isFlagsErr := err.(*flags.Error)
		if isFlagsErr && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
