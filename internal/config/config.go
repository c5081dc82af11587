package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type TgBot struct {
	Enabled          bool   `toml:"enabled"`
	TelegramAPIToken string `toml:"telegram_apitoken"`
	AdminPass        string `toml:"admin_pass"`
	SqliteFile       string `toml:"sqlite_file"`
}

type Poster struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
}

type Server struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	Debug            bool   `toml:"debug_mode"`
	SqliteFile       string `toml:"sqlite_file"`
	SimulationRounds int    `toml:"simulation_rounds"`

	Auth Auth `toml:"auth"`
}

type Auth struct {
	SqliteFile string `toml:"sqlite_file"`
	ConfigPath string `toml:"config_path"`
}

type Config struct {
	TgBot  TgBot
	Server Server
	Poster Poster
}

func New(serverPath string, botPath string) (Config, error) {
	var serverCfg Server
	_, err := toml.DecodeFile(serverPath, &serverCfg)
	if err != nil {
		return Config{}, err
	}
	if serverCfg.SimulationRounds <= 0 {
		serverCfg.SimulationRounds = 100
	}

	var botCfg TgBot
	_, err = toml.DecodeFile(botPath, &botCfg)
	if err != nil {
		return Config{}, err
	}
	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		botCfg.TelegramAPIToken = token
	}

	var posterCfg Poster
	// poster lookup shares the server config file
	_, err = toml.DecodeFile(serverPath, &struct {
		Poster *Poster `toml:"poster"`
	}{Poster: &posterCfg})
	if err != nil {
		return Config{}, err
	}
	if key := os.Getenv("POSTER_APIKEY"); key != "" {
		posterCfg.APIKey = key
	}

	return Config{
		TgBot:  botCfg,
		Server: serverCfg,
		Poster: posterCfg,
	}, nil
}
