package cmd

import (
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerCmd(t *testing.T) {
	_, a, port := newApp(t, nil)
	defer a.shutdown()

	go a.run()
	waitForHTTP(port)

	status, _ := getBody(t, fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	assert.Equal(t, 200, status)

	status, json := getBody(t, fmt.Sprintf("http://127.0.0.1:%d/api/grid/2026/1?locale=en-US", port))
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `{"day":28,"tag":"prev"}`)

	status, json = getBody(t, fmt.Sprintf("http://127.0.0.1:%d/api/widget/clock", port))
	assert.Equal(t, 200, status)
	assert.Contains(t, json, `"timezone":"UTC"`)

	// Memory не умеет делать бекап.
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://127.0.0.1:%d/api/admin/backup", port), http.NoBody)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "pass")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 501, resp.StatusCode)
}

func TestServerCmd_noAdmin(t *testing.T) {
	_, a, port := newApp(t, func(cmd *Server) {
		cmd.Web.AdminPasswd = ""
	})
	defer a.shutdown()

	go a.run()
	waitForHTTP(port)

	status, _ := getBody(t, fmt.Sprintf("http://127.0.0.1:%d/api/admin/backup", port))
	assert.Equal(t, 404, status)
}

func TestServerCmd_signalsAndShutdown(t *testing.T) {
	cmd, _, port := newApp(t, nil)

	go func() {
		err := cmd.Execute([]string{})
		require.NoError(t, err)
	}()
	waitForHTTP(port)

	status, _ := getBody(t, fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	assert.Equal(t, 200, status)

	err := syscall.Kill(syscall.Getpid(), syscall.SIGINT)
	require.NoError(t, err)
	time.Sleep(500 * time.Millisecond) // Должно хватить на завершение.

	cl := &http.Client{
		Timeout: 100 * time.Millisecond,
	}
	_, err = cl.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.Error(t, err)
}

func TestServerCmd_fail(t *testing.T) {
	cmd := &Server{}
	_, _ = flags.ParseArgs(cmd, []string{
		"--store.engine=foo",
	})
	_, err := cmd.makeApp()
	assert.ErrorContains(t, err, "unknown store engine")

	cmd = &Server{}
	_, _ = flags.ParseArgs(cmd, []string{
		"--store.engine=memory",
		"--locale.default=%%bad",
	})
	_, err = cmd.makeApp()
	assert.ErrorContains(t, err, "invalid default locale")

	cmd = &Server{}
	_, _ = flags.ParseArgs(cmd, []string{
		"--store.engine=memory",
		"--locale.file=testdata/missing.yml",
	})
	_, err = cmd.makeApp()
	assert.ErrorContains(t, err, "cannot read locales yaml")

	cmd = &Server{}
	_, _ = flags.ParseArgs(cmd, []string{
		"--store.engine=memory",
		"--timezone=Mars/Olympus",
	})
	_, err = cmd.makeApp()
	assert.ErrorContains(t, err, "timezone")

	cmd = &Server{}
	_, _ = flags.ParseArgs(cmd, []string{
		"--store.engine=memory",
		"--timezone=Europe/Moscow",
		"--locale.default=ru-RU",
	})
	_, err = cmd.makeApp()
	assert.NoError(t, err)
}
