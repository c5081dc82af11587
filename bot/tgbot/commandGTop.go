package tgbot

import (
	"strconv"
	"strings"

	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Glicko2TopCommand struct {
	filmService *service.FilmService
}

func (c *Glicko2TopCommand) Run(_ model.User, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	ratings := c.filmService.GetRatings()
	glicko := c.filmService.Glicko2Ratings()
	var buffer strings.Builder
	for i := range ratings {
		if i > 9 {
			break
		}
		g := glicko[ratings[i].ID]
		buffer.WriteString(strconv.Itoa(ratings[i].RatingRank))
		buffer.WriteString(". ")
		buffer.WriteString(ratings[i].Title)
		buffer.WriteString(" - ")
		buffer.WriteString(strconv.Itoa(int(g.Rating)))
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(int(g.Interval.Min)))
		buffer.WriteString("-")
		buffer.WriteString(strconv.Itoa(int(g.Interval.Max)))
		buffer.WriteString(")\n")
	}
	resp.Text = buffer.String()
	return nil
}

func (c *Glicko2TopCommand) Help() string {
	return `Список лучших в рейтинге Glicko2 (beta)`
}

func (c *Glicko2TopCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *Glicko2TopCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
