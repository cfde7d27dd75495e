package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-netting/internal/config"
)

const header = "Operación - Nombre,Instrumento - Símbolo,Cantidad\n"

func TestMain(m *testing.M) {
	*logLevel = "disabled"
	os.Exit(m.Run())
}

func writeBlotter(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blotter.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheckCmd(t *testing.T) {
	testCases := []struct {
		name       string
		content    string
		wantStatus subcommands.ExitStatus
		wantOut    string
	}{
		{
			name:       "Balanced",
			content:    header + "Compra,AAPL,10\nVenta,AAPL,10\n",
			wantStatus: subcommands.ExitSuccess,
			wantOut:    "OK: 1 tickers netted\n",
		},
		{
			name:       "Discrepant",
			content:    header + "Compra,GGALD,5\nVenta,GGAL,3\nCompra,AAPL,10\nVenta,AAPL,10\n",
			wantStatus: subcommands.ExitFailure,
			wantOut:    "DISCREPANCIES: 1 of 2 tickers do not net: GGAL (5 - 3 = 2)\n",
		},
		{
			name:       "MissingColumns",
			content:    "Operación - Nombre,Cantidad\nCompra,1\n",
			wantStatus: subcommands.ExitFailure,
			wantOut:    "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &checkCmd{file: writeBlotter(t, tc.content), out: &out}

			status := cmd.Execute(context.Background(), flag.NewFlagSet("check", flag.ContinueOnError))

			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantOut, out.String())
		})
	}
}

func TestCheckCmd_RequiresFile(t *testing.T) {
	cmd := &checkCmd{out: &bytes.Buffer{}}
	assert.Equal(t, subcommands.ExitUsageError, cmd.Execute(context.Background(), flag.NewFlagSet("check", flag.ContinueOnError)))
}

func TestReportCmd_PlainMarkdown(t *testing.T) {
	var out bytes.Buffer
	cmd := &reportCmd{
		file:   writeBlotter(t, header+"Compra,GGALD,5\nVenta,GGAL,3\nCompra,AAPL,10\nVenta,AAPL,10\n"),
		format: "markdown",
		plain:  true,
		out:    &out,
	}

	status := cmd.Execute(context.Background(), flag.NewFlagSet("report", flag.ContinueOnError))

	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Resultados del Neteo: blotter.csv")
	assert.Contains(t, out.String(), "| AAPL |")
	assert.Contains(t, out.String(), "5 - 3 = 2")
}

func TestReportCmd_JSONDiscrepancies(t *testing.T) {
	var out bytes.Buffer
	cmd := &reportCmd{
		file:          writeBlotter(t, header+"Compra,GGALD,5\nVenta,GGAL,3\nCompra,AAPL,10\nVenta,AAPL,10\n"),
		format:        "json",
		discrepancies: true,
		out:           &out,
	}

	status := cmd.Execute(context.Background(), flag.NewFlagSet("report", flag.ContinueOnError))
	require.Equal(t, subcommands.ExitSuccess, status)

	var got []struct {
		BaseTicker string `json:"base_ticker"`
		IsBalanced bool   `json:"is_balanced"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GGAL", got[0].BaseTicker)
	assert.False(t, got[0].IsBalanced)
}

func TestReportCmd_RejectsUnknownFormat(t *testing.T) {
	cmd := &reportCmd{file: "blotter.csv", format: "xml", out: &bytes.Buffer{}}
	assert.Equal(t, subcommands.ExitUsageError, cmd.Execute(context.Background(), flag.NewFlagSet("report", flag.ContinueOnError)))
}

func TestServeCmd_ListenAddr(t *testing.T) {
	cfg := config.Default()
	cfg.App.ListenAddr = ":9090"

	assert.Equal(t, ":9090", (&serveCmd{}).listenAddr(cfg))
	assert.Equal(t, "127.0.0.1:0", (&serveCmd{addr: "127.0.0.1:0"}).listenAddr(cfg))
}

func TestServeCmd_Execute(t *testing.T) {
	// The configured address is not listenable, so only the flag can make the server start.
	t.Setenv(config.EnvListenAddr, "127.0.0.1:99999")

	t.Run("flag overrides config", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		status := (&serveCmd{addr: "127.0.0.1:0"}).Execute(ctx, flag.NewFlagSet("serve", flag.ContinueOnError))

		assert.Equal(t, subcommands.ExitSuccess, status)
	})

	t.Run("falls back to config", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := (&serveCmd{}).Execute(ctx, flag.NewFlagSet("serve", flag.ContinueOnError))

		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		status := (&serveCmd{addr: "127.0.0.1:0"}).Execute(ctx, flag.NewFlagSet("serve", flag.ContinueOnError))

		assert.Equal(t, subcommands.ExitSuccess, status)
	})
}
