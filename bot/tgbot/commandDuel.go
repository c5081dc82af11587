package tgbot

import (
	"strings"

	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type DuelCommand struct {
	filmService *service.FilmService
}

func (c *DuelCommand) Run(_ model.User, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	pair, err := c.filmService.NextDuel()
	if err != nil {
		return err
	}
	var buf strings.Builder
	buf.WriteString(pair.A.Title)
	buf.WriteString(" vs ")
	buf.WriteString(pair.B.Title)
	buf.WriteString("\n")
	if pair.Commentary != "" {
		buf.WriteString(pair.Commentary)
		buf.WriteString("\n")
	}
	buf.WriteString("Чтобы судить: /game <победитель> - <проигравший>")
	resp.Text = buf.String()
	return nil
}

func (c *DuelCommand) Help() string {
	return `Показать следующую дуэль`
}

func (c *DuelCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *DuelCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
