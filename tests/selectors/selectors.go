package sel

const (
	Logo = ".brand-logo"

	NewFilmFormTitle  = "#new-film-form-title"
	NewFilmFormYear   = "#new-film-form-year"
	NewFilmFormPrior  = "#new-film-form-prior"
	NewFilmFormSubmit = "#new-film-form-submit"

	FilmListRow      = "#film-list-row"
	FilmListRowTitle = "#film-list-row-title"
	FilmListRowLink  = FilmListRow + " a"

	SignInFormUsername = "#username-field"
	SignInFormPass     = "#password-field"
	SignInFormSubmit   = "#signin-form-submit"
)
