package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"cinerank/bot/botstorage"
	dbmodel "cinerank/bot/gen/model"
	"cinerank/bot/gen/table"
	"cinerank/bot/model"
	sqlite3 "cinerank/internal/migrate"

	"github.com/sirupsen/logrus"

	"github.com/go-jet/jet/v2/sqlite"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "bot-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpBotDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("bot storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) NewUser(user model.User) (model.User, error) {
	var dbuser dbmodel.Users
	err := table.Users.
		INSERT(table.Users.AllColumns).
		MODEL(convertUserFromDomain(user)).
		RETURNING(table.Users.AllColumns).
		Query(s.db, &dbuser)
	if err != nil {
		return model.User{}, err
	}
	return convertUserToDomain(dbuser), nil
}

type getUserModel struct {
	dbmodel.Users
	UserEvents []struct {
		dbmodel.UserEvents
	}
	UserRole struct {
		dbmodel.UserRoles
	}
}

func (s *Storage) GetUser(id int) (model.User, error) {
	var dest getUserModel
	err := table.Users.
		SELECT(table.Users.AllColumns, table.UserEvents.AllColumns, table.UserRoles.AllColumns).
		FROM(table.Users.
			FULL_JOIN(table.UserEvents, table.UserEvents.UserID.EQ(sqlite.Int(int64(id)))).
			FULL_JOIN(table.UserRoles, table.UserRoles.UserID.EQ(sqlite.Int(int64(id)))),
		).
		WHERE(table.Users.ID.EQ(sqlite.Int(int64(id)))).
		Query(s.db, &dest)
	if err != nil {
		return model.User{}, err
	}
	if dest.UserRole.RoleID == 0 {
		// first contact, everyone starts as a plain user
		dest.UserRole.RoleID = int32(model.RoleUser)
		_, err = table.UserRoles.
			INSERT(table.UserRoles.AllColumns).
			MODEL(dbmodel.UserRoles{
				UserID: int32(id),
				RoleID: int32(model.RoleUser),
			}).
			Exec(s.db)
		if err != nil {
			return model.User{}, err
		}
	}
	return convertGetUserModelToDomain(dest), nil
}

func (s *Storage) ListUsers() ([]model.User, error) {
	var dest []getUserModel
	err := table.Users.
		SELECT(table.Users.AllColumns, table.UserEvents.AllColumns).
		FROM(table.Users.
			FULL_JOIN(table.UserEvents, table.UserEvents.UserID.EQ(table.Users.ID)),
		).
		Query(s.db, &dest)
	if err != nil {
		return nil, err
	}
	converted := make([]model.User, 0, len(dest))
	for i := range dest {
		converted = append(converted, convertGetUserModelToDomain(dest[i]))
	}
	return converted, nil
}

func (s *Storage) Log(user model.User, msg string) error {
	message := dbmodel.Log{
		UserID:    int32(user.ID),
		Message:   msg,
		CreatedAt: time.Now(),
	}
	_, err := table.Log.
		INSERT(table.Log.UserID, table.Log.Message, table.Log.CreatedAt).
		MODEL(message).
		Exec(s.db)
	return err
}

func (s *Storage) Subscribe(user model.User) error {
	userEvents := dbmodel.UserEvents{
		UserID: int32(user.ID),
		Event:  string(model.NewDuel),
	}
	_, err := table.UserEvents.
		INSERT(table.UserEvents.AllColumns).
		MODEL(userEvents).
		Exec(s.db)
	if err != nil {
		if strings.HasPrefix(err.Error(), "UNIQUE constraint failed") {
			return nil
		}
		return err
	}
	return nil
}

func (s *Storage) Unsubscribe(user model.User) error {
	_, err := table.UserEvents.
		DELETE().
		WHERE(
			table.UserEvents.UserID.EQ(sqlite.Int(int64(user.ID))).
				AND(table.UserEvents.Event.EQ(sqlite.String(string(model.NewDuel)))),
		).Exec(s.db)
	return err
}

func (s *Storage) UpdateUserRole(user model.User) error {
	_, err := table.UserRoles.
		UPDATE(table.UserRoles.RoleID).
		SET(sqlite.Int(int64(user.Role))).
		WHERE(table.UserRoles.UserID.EQ(sqlite.Int(int64(user.ID)))).
		Exec(s.db)
	return err
}

func convertUserFromDomain(user model.User) dbmodel.Users {
	return dbmodel.Users{
		ID:        int32(user.ID),
		FirstName: user.FirstName,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func convertUserToDomain(user dbmodel.Users) model.User {
	return model.User{
		ID:        int(user.ID),
		FirstName: user.FirstName,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func convertGetUserModelToDomain(user getUserModel) model.User {
	converted := convertUserToDomain(user.Users)
	for i := range user.UserEvents {
		converted.Subscriptions = append(converted.Subscriptions, model.EventType(user.UserEvents[i].Event))
	}
	converted.Role = model.UserRole(user.UserRole.RoleID)
	return converted
}
