package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nvkalinin/widget-calendar/log"
)

// Set записывает переменные виджета через /api/admin/vars/{section} запущенного сервера.
type Set struct {
	ServerUrl   string        `long:"server-url" short:"s" env:"SERVER_URL" value-name:"str" default:"http://localhost:8080" description:"URL сервера с REST API виджетов."`
	AdminPasswd string        `long:"passwd" short:"p" env:"WEB_ADMIN_PASSWD" value-name:"str" description:"Пароль пользователя admin."`
	Timeout     time.Duration `long:"timeout" short:"t" env:"TIMEOUT" value-name:"duration" default:"60s" description:"Макс. время выполнения запроса."`
	Section     string        `long:"section" short:"w" env:"SECTION" value-name:"name" required:"true" description:"Секция (виджет): calendar, clock."`
	Vars        []string      `long:"var" short:"v" value-name:"key=value" required:"true" description:"Переменная. Можно указывать несколько раз."`
}

func (s *Set) Execute(args []string) error {
	params := url.Values{}
	for _, kv := range s.Vars {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid variable '%s', expected key=value", kv)
		}
		params.Set(key, val)
	}
	body := strings.NewReader(params.Encode())

	reqUrl := makeUrl(s.ServerUrl, "/api/admin/vars/"+url.PathEscape(s.Section))
	req, err := http.NewRequest(http.MethodPost, reqUrl, body)
	if err != nil {
		return fmt.Errorf("cannot make request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("admin", s.AdminPasswd)
	log.Printf("[DEBUG] set request: URL=%s, %#v", reqUrl, req)

	client := &http.Client{
		Timeout: s.Timeout,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] cannot close response: %v", err)
		}
	}()
	log.Printf("[DEBUG] set response: %#v", resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read response: %w", err)
	}
	log.Printf("[DEBUG] set resp body: %s", respBody)

	if resp.StatusCode != 200 {
		err := readJsonError(respBody)
		return fmt.Errorf("set error (status %d): %w", resp.StatusCode, err)
	}

	res := map[string]string{}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return fmt.Errorf("cannot parse response (status %d): %w", resp.StatusCode, err)
	}

	keys := make([]string, 0, len(res))
	for key := range res {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		log.Printf("[INFO] %s/%s: %s", s.Section, key, res[key])
	}
	return nil
}
