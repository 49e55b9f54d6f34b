package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	path := writeConfig(t, `---
preset: dark
targetDate: "2026-11-27"
targetTime: "00:00"
identity:
  name: Black Friday
`)
	out := t.TempDir()

	stdout, err := execute(t, "export", "--config", path, "--out", out)
	require.NoError(t, err)

	archive := filepath.Join(out, "black-friday.zip")
	assert.Contains(t, stdout, archive)

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestExportCommandUnknownPreset(t *testing.T) {
	path := writeConfig(t, "targetDate: \"2026-01-01\"\n")

	_, err := execute(t, "export", "--config", path, "--preset", "neon", "--out", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "forge "))
}

func TestWatchCountdownExpired(t *testing.T) {
	cliLogger = logger.Nop()

	cfg := domain.Default()
	cfg.TargetDate = "2020-01-01"
	cfg.Expiry = domain.Expiry{Action: domain.ActionRedirect, RedirectURL: "https://example.com/sale"}

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, watchCountdown(ctx, &out, cfg, scheduler.SystemClock{}, time.Millisecond))
	assert.Equal(t, "⏰ expired\nredirect to https://example.com/sale\n", out.String())
}

func TestFormatSample(t *testing.T) {
	cfg := domain.Default()
	cfg.Layout = domain.LayoutBar
	cfg.Units.Days = false

	s := domain.Sample{Remaining: domain.Remaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6}}
	assert.Equal(t, "⏳ 04 Hr 05 Min 06 Sec", formatSample(cfg, s))

	cfg.Units = domain.Units{}
	assert.Equal(t, "⏳ counting down", formatSample(cfg, s))
	assert.Equal(t, "⏰ expired", formatSample(cfg, domain.ExpiredSample))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "widget hidden", formatExpiry(domain.ExpiryView{Kind: domain.ExpiryHide}))
	assert.Equal(t, "redirect skipped: no usable URL", formatExpiry(domain.ExpiryView{Kind: domain.ExpiryRedirect}))
	assert.Equal(t, "Closed", formatExpiry(domain.ExpiryView{Kind: domain.ExpiryMessage, Message: "Closed"}))
}
