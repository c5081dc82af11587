package tgbot

import (
	"errors"
	"regexp"
	"strings"

	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type NewFilmCommand struct {
	filmService *service.FilmService
}

// trailing parenthesized 4-digit year: "Сталкер (1979)"
var yearSuffix = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)$`)

func (c *NewFilmCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if args == "" {
		return errors.New("название должно быть не пустое")
	}
	title := args
	year := ""
	if m := yearSuffix.FindStringSubmatch(args); m != nil {
		title = strings.TrimSpace(m[1])
		year = m[2]
	}
	film, err := c.filmService.CreateFilm(title, year, nil)
	if err != nil {
		return err
	}
	resp.Text = "Добавлен фильм " + film.Title + " (ID " + film.ID.String() + ")"
	return nil
}

func (c *NewFilmCommand) Help() string {
	return `Добавить новый фильм. Использование: /new_film <название> или /new_film <название> (<год>)`
}

func (c *NewFilmCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *NewFilmCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
