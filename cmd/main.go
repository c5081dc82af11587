package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	botsqlite "cinerank/bot/botstorage/sqlite"
	"cinerank/bot/tgbot"
	"cinerank/internal/commentary"
	"cinerank/internal/config"
	"cinerank/internal/logger"
	"cinerank/internal/poster"
	"cinerank/internal/service"
	"cinerank/internal/storage/sqlite"
	"cinerank/internal/web"

	authservice "cinerank/auth/service"
	authsqlite "cinerank/auth/storage/sqlite"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfigPath, botConfigPath string
	flag.StringVar(&serverConfigPath, "server-config", "configs/server.toml", "path to the server config file")
	flag.StringVar(&botConfigPath, "bot-config", "configs/bot.toml", "path to the bot config file")
	flag.Parse()

	cfg, err := config.New(serverConfigPath, botConfigPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, err := sqlite.New(log, cfg.Server.SqliteFile)
	if err != nil {
		return err
	}
	filmService, err := service.New(storage, storage, commentary.NewPhrases(), log)
	if err != nil {
		return err
	}

	authStorage, err := authsqlite.New(log, cfg.Server.Auth.SqliteFile)
	if err != nil {
		return err
	}
	var authCfg authservice.Config
	if _, err := toml.DecodeFile(cfg.Server.Auth.ConfigPath, &authCfg); err != nil {
		return err
	}
	authService, err := authservice.New(ctx, authCfg, authStorage)
	if err != nil {
		return err
	}

	var posterService poster.Service = poster.Disabled{}
	if cfg.Poster.Enabled {
		posterService = poster.NewHTTPService(cfg.Poster.Endpoint, cfg.Poster.APIKey)
	}
	fetcher := poster.NewFetcher(posterService, filmService, log)
	go fetcher.Run(ctx)

	if cfg.TgBot.Enabled {
		botStorage, err := botsqlite.New(log, cfg.TgBot.SqliteFile)
		if err != nil {
			return err
		}
		bot, err := tgbot.New(filmService, botStorage, cfg, log)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
	}

	server, err := web.New(filmService, cfg.Server, authService, fetcher)
	if err != nil {
		return err
	}
	return server.Serve()
}
