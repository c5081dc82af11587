package tgbot

import (
	"errors"
	"strings"

	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type JudgeCommand struct {
	filmService *service.FilmService
}

func (c *JudgeCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	result, err := c.processJudge(args)
	if err != nil {
		return err
	}
	resp.Text = formatJudgeResult(result)
	return nil
}

func (c *JudgeCommand) Help() string {
	return `Судить дуэль. Использование: /game <победитель> - <проигравший>`
}

func (c *JudgeCommand) processJudge(args string) (service.JudgeResult, error) {
	titles := strings.SplitN(args, " - ", 2)
	if len(titles) != 2 {
		return service.JudgeResult{}, errors.New(`неверный запрос. Пример: "/game Сталкер - Солярис" - победил Сталкер`)
	}
	winner, err := c.filmService.GetByTitle(strings.TrimSpace(titles[0]))
	if err != nil {
		return service.JudgeResult{}, errors.New(titles[0] + " не найден")
	}
	loser, err := c.filmService.GetByTitle(strings.TrimSpace(titles[1]))
	if err != nil {
		return service.JudgeResult{}, errors.New(titles[1] + " не найден")
	}
	return c.filmService.Judge(winner.ID, loser.ID)
}

func (c *JudgeCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *JudgeCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
