package botstorage

import "cinerank/bot/model"

type BotStorage interface {
	NewUser(user model.User) (model.User, error)
	GetUser(id int) (model.User, error)
	ListUsers() ([]model.User, error)
	Log(model.User, string) error
	Subscribe(model.User) error
	Unsubscribe(model.User) error
	UpdateUserRole(model.User) error
}
