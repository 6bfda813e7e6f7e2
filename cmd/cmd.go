package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nvkalinin/widget-calendar/locale"
)

type LocaleOpts struct {
	Default string `long:"default" env:"DEFAULT" value-name:"locale" default:"en-US" description:"Локаль пользователя; на нее же заменяются некорректные локали."`
	File    string `long:"file" env:"FILE" value-name:"file.yml" description:"YAML-файл с дополнительными локалями (формат как у встроенного locales.yml)."`
}

func (o *LocaleOpts) makeProvider() (*locale.Provider, error) {
	var extra []locale.Table
	if o.File != "" {
		t, err := locale.LoadFile(o.File)
		if err != nil {
			return nil, err
		}
		extra = append(extra, t)
	}

	p, err := locale.NewProvider(o.Default, extra...)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	return p, nil
}

func makeUrl(serverUrl string, path string) string {
	return strings.TrimRight(serverUrl, "/") + path
}

func readJsonError(body []byte) error {
	restErr := &struct {
		Msg string `json:"msg"`
	}{}
	if err := json.Unmarshal(body, restErr); err != nil {
		return fmt.Errorf("cannot read error msg: %w", err)
	}
	return errors.New(restErr.Msg)
}
