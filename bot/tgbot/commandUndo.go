package tgbot

import (
	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UndoCommand struct {
	filmService *service.FilmService
}

func (c *UndoCommand) Run(_ model.User, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	ok, err := c.filmService.Undo()
	if err != nil {
		return err
	}
	if !ok {
		resp.Text = "Нечего отменять"
		return nil
	}
	resp.Text = "Последняя дуэль отменена"
	return nil
}

func (c *UndoCommand) Help() string {
	return `Отменить последнюю дуэль`
}

func (c *UndoCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *UndoCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
