package web

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	embedded "cinerank"
	authservice "cinerank/auth/service"
	"cinerank/auth/users"
	"cinerank/internal/config"
	"cinerank/internal/poster"
	"cinerank/internal/service"
	"cinerank/internal/web/webpath"

	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
)

type Server struct {
	auth        *authservice.Service
	filmService *service.FilmService
	fetcher     *poster.Fetcher
	app         *fiber.App
	cfg         config.Server
}

func New(fs_ *service.FilmService, cfg config.Server, authService *authservice.Service, fetcher *poster.Fetcher) (*Server, error) {
	server := Server{
		filmService: fs_,
		auth:        authService,
		fetcher:     fetcher,
		cfg:         cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatPercent", formatPercent)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(webpath.Api, func(c *fiber.Ctx) error {
		tokenCookie := c.Cookies("token")
		user, err := authService.Auth(c.Context(), tokenCookie, c.Method(), c.OriginalURL())
		if err != nil {
			switch {
			case errors.Is(err, authservice.ErrForbidden):
				c.Status(fiber.StatusForbidden)
			case errors.Is(err, authservice.ErrNotAuthorized):
				c.Status(fiber.StatusUnauthorized)
			default:
				c.Status(fiber.StatusInternalServerError)
			}
			return nil
		}
		c.Context().SetUserValue(userKey, user)
		return c.Next()
	})
	app.Get(webpath.Signin, server.HandleGetSignIn)
	app.Post(webpath.Signin, server.HandlePostSignIn)
	app.Get(webpath.Signup, server.HandleGetSignup)
	app.Post(webpath.Signup, server.HandlePostSignup)
	app.Get(webpath.Signout, server.HandleSignOut)
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Api)
	})

	app.Get(webpath.ApiHome, server.handleMain)
	app.Get(webpath.ApiDuel, server.handleDuel)
	app.Post(webpath.ApiJudge, server.handleJudge)
	app.Post(webpath.ApiUndo, server.handleUndo)
	app.Get(webpath.ApiMatchesList, server.handleMatches)
	app.Get(webpath.ApiGetFilms, server.HandleFilmInfo)
	app.Get(webpath.ApiNewFilm, server.handleNewFilmGet)
	app.Post(webpath.ApiNewFilm, server.handleNewFilmPost)
	app.Get(webpath.ApiSimulation, server.handleSimulation)
	app.Get(webpath.ApiExport, server.handleExport)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

const userKey = "user"

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	d := newData("Рейтинг").
		WithUser(user).
		With("Button", "rating").
		With("Films", s.filmService.GetRatings()).
		With("Superlatives", s.filmService.Superlatives())
	return ctx.Render("index", d, "layouts/main")
}

func (s *Server) handleDuel(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	pair, err := s.filmService.NextDuel()
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughFilms) {
			d := newData("Дуэль").WithUser(user).With("Button", "duel").WithErrors(err)
			return ctx.Render("duel", d, "layouts/main")
		}
		return err
	}
	if s.fetcher != nil {
		s.fetcher.Request(pair.A)
		s.fetcher.Request(pair.B)
		for _, film := range s.filmService.Upcoming() {
			s.fetcher.Request(film)
		}
	}
	d := newData("Дуэль").
		WithUser(user).
		With("Button", "duel").
		With("Pair", pair)
	return ctx.Render("duel", d, "layouts/main")
}

func (s *Server) handleJudge(ctx *fiber.Ctx) error {
	req, err := parseJudgeRequest(ctx)
	if err != nil {
		return err
	}
	if _, err := s.filmService.Judge(req.Winner, req.Loser); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiDuel)
}

func (s *Server) handleUndo(ctx *fiber.Ctx) error {
	if _, err := s.filmService.Undo(); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiDuel)
}

func (s *Server) handleMatches(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	matches, err := s.filmService.GetMatches()
	if err != nil {
		return err
	}
	d := newData("Список дуэлей").
		WithUser(user).
		With("Button", "matches").
		With("Matches", matches)
	return ctx.Render("matches", d, "layouts/main")
}

func (s *Server) HandleFilmInfo(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return err
	}
	data, err := s.filmService.FilmData(id)
	if err != nil {
		return err
	}
	glicko := s.filmService.Glicko2Ratings()[id]
	d := newData(data.Film.Title).
		WithUser(user).
		With("Button", "filmCard").
		With("Data", data).
		With("Glicko", glicko)
	return ctx.Render("filmCard", d, "layouts/main")
}

func (s *Server) handleNewFilmGet(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	d := newData("Добавить фильм").WithUser(user)
	return ctx.Render("newFilm", d, "layouts/main")
}

func (s *Server) handleNewFilmPost(ctx *fiber.Ctx) error {
	req, err := parseNewFilmRequest(ctx)
	if err != nil {
		return err
	}
	if _, err := s.filmService.CreateFilm(req.title, req.year, req.prior); err != nil {
		return err
	}
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) handleSimulation(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	rounds := ctx.QueryInt("rounds", s.cfg.SimulationRounds)
	seed := int64(ctx.QueryInt("seed", 0))
	d := newData("Прогноз").
		WithUser(user).
		With("Button", "simulation").
		With("Rounds", rounds).
		With("Films", s.filmService.Simulate(rounds, seed))
	return ctx.Render("simulation", d, "layouts/main")
}

func (s *Server) handleExport(ctx *fiber.Ctx) error {
	data, err := s.filmService.Export()
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="cinerank-export.json"`)
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(data)
}

func (s *Server) HandleGetSignIn(ctx *fiber.Ctx) error {
	return ctx.Render("signin", newData("Войти"), "layouts/main")
}

func (s *Server) HandlePostSignIn(ctx *fiber.Ctx) error {
	req, err := parseSignInRequest(ctx)
	if err != nil {
		return ctx.Render("signin", newData("Войти").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.Login(ctx.Context(), req.name, req.password)
	if err != nil {
		return ctx.Render("signin", newData("Войти").WithErrors(err), "layouts/main")
	}
	cookie, err := s.auth.GenerateJWTCookie(user.ID, s.cfg.Host)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) HandleGetSignup(ctx *fiber.Ctx) error {
	return ctx.Render("signup", newData("Зарегистрироваться"), "layouts/main")
}

func (s *Server) HandlePostSignup(ctx *fiber.Ctx) error {
	req, err := parseSignUpRequest(ctx)
	if err != nil {
		return ctx.Render("signup", newData("Зарегистрироваться").WithErrors(err), "layouts/main")
	}
	if err := s.auth.SignUp(ctx.Context(), req.name, req.password); err != nil {
		return ctx.Render("signup", newData("Зарегистрироваться").WithErrors(err), "layouts/main")
	}
	return ctx.Redirect(webpath.Signin)
}

func (s *Server) HandleSignOut(ctx *fiber.Ctx) error {
	ctx.ClearCookie("token")
	return ctx.Redirect(webpath.ApiHome)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006г.")
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
