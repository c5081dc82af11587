package tgbot

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type InfoCommand struct {
	filmService *service.FilmService
}

func (c *InfoCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	text, err := c.processInfo(args)
	if err != nil {
		return err
	}
	resp.Text = text
	return nil
}

func (c *InfoCommand) Help() string {
	return `Информация о фильме. Использование - /info и название фильма.`
}

func (c *InfoCommand) processInfo(args string) (string, error) {
	if args == "" {
		return "", errors.New(`после /info название фильма необходимо указывать в этом же сообщении. Например "/info Сталкер"`)
	}
	film, err := c.filmService.GetByTitle(args)
	if err != nil {
		return "", err
	}
	// rank comes from the sorted view
	for _, rated := range c.filmService.GetRatings() {
		if rated.ID == film.ID {
			film = rated
			break
		}
	}
	data, err := c.filmService.FilmData(film.ID)
	if err != nil {
		return "", err
	}
	data.Film.RatingRank = film.RatingRank
	return printFilm(data), nil
}

func printFilm(data service.FilmData) string {
	film := data.Film
	var buf strings.Builder
	buf.WriteString("Название: ")
	buf.WriteString(film.Title)
	if film.Year != "" {
		buf.WriteString(" (")
		buf.WriteString(film.Year)
		buf.WriteString(")")
	}
	buf.WriteString("\n")
	buf.WriteString("Место в рейтинге: ")
	buf.WriteString(prettifyRank(film.RatingRank))
	buf.WriteString("\n")
	buf.WriteString("Рейтинг: ")
	buf.WriteString(strconv.Itoa(film.Rating))
	buf.WriteString("\n")
	buf.WriteString("Дуэлей: ")
	buf.WriteString(strconv.Itoa(film.Matches))
	buf.WriteString(" (")
	buf.WriteString(strconv.Itoa(film.Wins))
	buf.WriteString(" побед)\n")
	buf.WriteString("Пик: ")
	buf.WriteString(strconv.Itoa(data.Card.Peak))
	buf.WriteString(", минимум: ")
	buf.WriteString(strconv.Itoa(data.Card.Trough))
	buf.WriteString("\n")
	buf.WriteString("Нестабильность: ")
	buf.WriteString(strconv.FormatFloat(data.Card.Volatility, 'f', 1, 64))
	buf.WriteString("%\n")
	buf.WriteString("В равных дуэлях: ")
	buf.WriteString(strconv.FormatFloat(data.Card.Clutch, 'f', 1, 64))
	buf.WriteString("%\n")
	buf.WriteString("Уверенность рейтинга: ")
	buf.WriteString(strconv.FormatFloat(data.Card.Confidence, 'f', 0, 64))
	buf.WriteString("%\n")
	buf.WriteString("Добавлен: ")
	buf.WriteString(film.AddedAt.Format(time.RFC1123))
	return buf.String()
}

func prettifyRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return strconv.Itoa(rank)
}

func (c *InfoCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *InfoCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
