package webpath

const (
	Signin  = "/signin"
	Signup  = "/signup"
	Signout = "/signout"
	Home    = "/"

	Api            = "/api"
	ApiHome        = Api + Home
	ApiDuel        = Api + "/duel"
	ApiJudge       = Api + "/judge"
	ApiUndo        = Api + "/undo"
	ApiMatchesList = Api + "/matches-list"
	ApiGetFilms    = Api + "/films/:id"
	ApiNewFilm     = Api + "/films"
	ApiSimulation  = Api + "/simulation"
	ApiExport      = Api + "/export"
)

func Path() map[string]string {
	return map[string]string{
		"SignUp":        Signup,
		"SignIn":        Signin,
		"SignOut":       Signout,
		"Home":          Home,
		"Api":           Api,
		"ApiHome":       ApiHome,
		"ApiDuel":       ApiDuel,
		"ApiJudge":      ApiJudge,
		"ApiUndo":       ApiUndo,
		"ApiMatches":    ApiMatchesList,
		"ApiNewFilm":    ApiNewFilm,
		"ApiSimulation": ApiSimulation,
		"ApiExport":     ApiExport,
	}
}
