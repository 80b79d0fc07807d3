package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/appointwatch/pkg/config"
)

// newSite serves a listing with one of today's appointments followed by an older item
func newSite(t *testing.T) *httptest.Server {
	today := time.Now().UTC()
	yesterday := today.AddDate(0, 0, -1)
	listing := fmt.Sprintf(`<html><body>
<div class="lenta_item">
  <a href="/president/view/1/"><span class="lenta_item_title">Президент назначил Петрова Сергея Ивановича председателем комитета</span></a>
  <div class="new_date"><div class="day">%s</div><div class="month_year">%s</div></div>
</div>
<div class="lenta_item">
  <a href="/president/view/2/"><span class="lenta_item_title">Президент назначил министра</span></a>
  <div class="new_date"><div class="day">%s</div><div class="month_year">%s</div></div>
</div>
<div class="load_more" onclick="return get_page('/all_news/page/2/','inner','1');">Ещё</div>
</body></html>`, today.Format("02"), today.Format("01.06"), yesterday.Format("02"), yesterday.Format("01.06"))

	article := `<html><body>
<div itemprop="articleBody"><p>Указом Президента Петров Сергей Иванович назначен председателем Государственного комитета.</p></div>
</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /all_news/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(listing)) })
	mux.HandleFunc("GET /president/view/1/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(article)) })
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(t *testing.T, siteURL string) *config.Config {
	cfg := config.Default()
	cfg.Crawler.StartURL = siteURL + "/all_news/"
	cfg.Crawler.SiteRoot = siteURL
	cfg.Crawler.Delay = time.Millisecond
	cfg.Crawler.Timeout = 5 * time.Second
	cfg.Crawler.Retries = 1
	cfg.Crawler.Timezone = "UTC"
	cfg.Database.DSN = "file:" + filepath.Join(t.TempDir(), "test.db")
	return cfg
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	err := run(context.Background(), Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_MissingEnvFile(t *testing.T) {
	err := run(context.Background(), Opts{EnvFile: "/non/existent/.env"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestRun_OnceWithConfigAndEnvFile(t *testing.T) {
	ts := newSite(t)
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AW_TEST_SITE="+ts.URL+"\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("AW_TEST_SITE") })

	cfgFile := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
crawler:
  start_url: ${AW_TEST_SITE}/all_news/
  site_root: ${AW_TEST_SITE}
  delay: 1ms
  timeout: 5s
  retries: 1
  timezone: UTC
`), 0o600))

	out := filepath.Join(dir, "records.jsonl")
	err := run(context.Background(), Opts{Config: cfgFile, EnvFile: envFile, Once: true, Output: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"relevant":true`)
	assert.Contains(t, lines[0], ts.URL+"/president/view/1/")
}

func TestRunOnce(t *testing.T) {
	ts := newSite(t)
	cfg := testConfig(t, ts.URL)
	cfg.Output.Path = filepath.Join(t.TempDir(), "out", "records.jsonl")

	crawler, err := makePipeline(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runOnce(context.Background(), cfg, crawler, &buf))

	report := buf.String()
	assert.Contains(t, report, "Appointments for")
	assert.Contains(t, report, "Петрова")
	assert.Contains(t, strings.ToLower(report), "boundary")

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestRunOnce_ListingFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	cfg := testConfig(t, ts.URL)

	crawler, err := makePipeline(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = runOnce(context.Background(), cfg, crawler, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crawl failed")
	assert.Contains(t, strings.ToLower(buf.String()), "failed", "summary is printed anyway")
}

func TestServe_StartStop(t *testing.T) {
	ts := newSite(t)
	cfg := testConfig(t, ts.URL)

	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	cfg.Server.Listen = fmt.Sprintf("127.0.0.1:%d", port)
	cfg.Schedule.RunOnStart = true

	crawler, err := makePipeline(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, crawler, false) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/v1/runs")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(buf.String(), `"termination":"boundary"`)
	}, 10*time.Second, 50*time.Millisecond, "initial crawl stored")

	resp, err := http.Get(base + "/api/v1/records?relevant=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ts.URL+"/president/view/1/")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestSetupLog(t *testing.T) {
	setupLog(false, false, true)
	setupLog(false, true, false)
	setupLog(true, false, false)
}
