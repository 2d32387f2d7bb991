package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/atinyakov/receipts/internal/client/api"
	"github.com/atinyakov/receipts/internal/client/forms"
	"github.com/atinyakov/receipts/internal/client/shell"
	"github.com/atinyakov/receipts/internal/config"
	"github.com/atinyakov/receipts/internal/logger"
	"github.com/atinyakov/receipts/internal/session"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

// main wires one browser-tab session and runs the interactive shell.
func main() {
	showVer := flag.Bool("version", false, "show build version and date")
	options := config.Parse()

	if *showVer {
		fmt.Printf("Receipts Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	lg := logger.New()
	defer func() { _ = lg.Log.Sync() }()
	if err := lg.Init(cmp.Or(options.LogLevel, logger.LevelFor(options.Env))); err != nil {
		log.Fatal(err)
	}

	// The API client and the page client share one jar, like a browser tab.
	httpClient, err := api.NewHTTPClient()
	if err != nil {
		log.Fatal(err)
	}
	authAPI := api.New(options.Routes, api.WithHTTPClient(httpClient), api.WithLogger(lg.Log))

	cookies, err := session.NewJarCookies(httpClient.Jar, append(options.URLs(), options.FrontendURL)...)
	if err != nil {
		lg.Log.Fatal("invalid endpoint URL", zap.Error(err))
	}
	manager := session.NewManager(authAPI, session.NewStore(), cookies, lg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sh := shell.New(shell.Config{
		Sessions:    manager,
		Prompter:    forms.NewPrompter(os.Stdin, os.Stdout),
		Out:         os.Stdout,
		Pages:       shell.NewPagesClient(httpClient.Jar),
		FrontendURL: options.FrontendURL,
		Logger:      lg.Log,
	})
	if err := sh.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println()
			return
		}
		lg.Log.Error("shell stopped", zap.Error(err))
	}
}
