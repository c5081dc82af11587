package web

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrMissingFilm = errors.New("оба фильма должны присутствовать")
var ErrSelfDuel = errors.New("фильм не может соревноваться сам с собой")

type judgeRequest struct {
	Winner uuid.UUID
	Loser  uuid.UUID
}

func parseJudgeRequest(ctx *fiber.Ctx) (judgeRequest, error) {
	winner, err := uuid.Parse(ctx.FormValue("winner"))
	if err != nil {
		return judgeRequest{}, ErrMissingFilm
	}
	loser, err := uuid.Parse(ctx.FormValue("loser"))
	if err != nil {
		return judgeRequest{}, ErrMissingFilm
	}
	req := judgeRequest{Winner: winner, Loser: loser}
	return req, req.Validate()
}

func (r judgeRequest) Validate() error {
	if r.Winner == uuid.Nil || r.Loser == uuid.Nil {
		return ErrMissingFilm
	}
	if r.Winner == r.Loser {
		return ErrSelfDuel
	}
	return nil
}

type newFilmRequest struct {
	title string
	year  string
	prior *float64
}

func parseNewFilmRequest(ctx *fiber.Ctx) (newFilmRequest, error) {
	var err error
	title := ctx.FormValue("title", "")
	if title == "" {
		err = errors.Join(err, errors.New("название фильма не должно быть пустым"))
	}
	year := ctx.FormValue("year", "")
	err = errors.Join(err, validateYear(year))

	var prior *float64
	if raw := ctx.FormValue("prior", ""); raw != "" {
		value, perr := strconv.ParseFloat(raw, 64)
		switch {
		case perr != nil:
			err = errors.Join(err, errors.New("оценка должна быть числом"))
		case value < 0.5 || value > 5:
			err = errors.Join(err, errors.New("оценка должна быть от 0.5 до 5"))
		default:
			prior = &value
		}
	}
	if err != nil {
		return newFilmRequest{}, err
	}
	return newFilmRequest{
		title: title,
		year:  year,
		prior: prior,
	}, nil
}

func validateYear(year string) error {
	if year == "" {
		return nil
	}
	if len(year) != 4 {
		return errors.New("год должен состоять из четырёх цифр")
	}
	if _, err := strconv.Atoi(year); err != nil {
		return errors.New("год должен состоять из цифр")
	}
	return nil
}
