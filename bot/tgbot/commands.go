package tgbot

import (
	"strconv"
	"strings"

	"cinerank/bot/botstorage"
	"cinerank/bot/model"
	"cinerank/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Command interface {
	Run(user model.User, args string, resp *tgbotapi.MessageConfig) error
	Help() string
	Permission() mapset.Set[model.UserRole]
	Visibility() mapset.Set[model.UserRole]
}

type Commands struct {
	list map[string]Command
}

func NewCommands(
	fs *service.FilmService,
	bs botstorage.BotStorage,
	adminPass string,
	subFn func(id int),
	unsubFn func(id int),
) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":  hc,
			"start": hc,
			"top": &TopCommand{
				filmService: fs,
			},
			"gtop": &Glicko2TopCommand{
				filmService: fs,
			},
			"duel": &DuelCommand{
				filmService: fs,
			},
			"game": &JudgeCommand{
				filmService: fs,
			},
			"undo": &UndoCommand{
				filmService: fs,
			},
			"info": &InfoCommand{
				filmService: fs,
			},
			"new_film": &NewFilmCommand{
				filmService: fs,
			},
			"role": &RoleCommand{
				adminPassword: adminPass,
				botStorage:    bs,
			},
			"sub": &SubCommand{
				botStorage: bs,
				sub:        subFn,
			},
			"unsub": &UnsubCommand{
				botStorage: bs,
				unsub:      unsubFn,
			},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) RunCommand(user model.User, message *tgbotapi.Message, resp *tgbotapi.MessageConfig) error {
	cmd := message.Command()
	for s, command := range uc.list {
		if cmd == s {
			if command.Permission().Contains(user.Role) {
				return command.Run(user, strings.TrimSpace(message.CommandArguments()), resp)
			}
		}
	}
	return ErrBadRequest
}

func formatJudgeResult(result service.JudgeResult) string {
	winner := result.Match.Winner
	loser := result.Match.FilmB
	if loser.ID == winner.ID {
		loser = result.Match.FilmA
	}
	var buf strings.Builder
	buf.WriteString("🏆")
	buf.WriteString(winner.Title)
	buf.WriteString(" vs ")
	buf.WriteString(loser.Title)
	buf.WriteString("😖\n")
	buf.WriteString("Рейтинг:\n")
	buf.WriteString(winner.Title)
	buf.WriteString(": ")
	buf.WriteString(strconv.Itoa(result.WinnerRating))
	buf.WriteString(" (+")
	buf.WriteString(strconv.Itoa(result.WinnerDelta))
	buf.WriteString(")\n")
	buf.WriteString(loser.Title)
	buf.WriteString(": ")
	buf.WriteString(strconv.Itoa(result.LoserRating))
	buf.WriteString(" (")
	buf.WriteString(strconv.Itoa(result.LoserDelta))
	buf.WriteString(")\n")
	return buf.String()
}
