package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/i18n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FilterState echoes the submitted filter controls back into the form.
type FilterState struct {
	Sort     string
	Region   string
	MinLimit string
	MaxLimit string
	FlagMin  bool
	FlagMax  bool
}

// HomeView is everything the homepage template needs. ErrorMessage is the
// page's single shared message slot; an empty string re-asserts "no
// message" after a successful load.
type HomeView struct {
	Strings       i18n.Strings
	SortOptions   []i18n.SelectOption
	RegionOptions []i18n.SelectOption
	Filters       FilterState
	Listings      ListingsView
	ErrorMessage  string
	MapJSON       template.JS
}

// BusinessView is the business jobs list page model.
type BusinessView struct {
	Strings      i18n.Strings
	Listings     ListingsView
	ErrorMessage string
}

// LoginView renders the log-in pages. Variant is "", "applicant" or
// "business"; the non-empty variants mount the external phone-auth UI.
type LoginView struct {
	Strings i18n.Strings
	Variant string
}

// Renderer executes the embedded page templates. Every execution rebuilds
// the whole page from its view model, so repeated renders of the same
// model produce identical output.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Internal("parsing page templates", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Homepage(w io.Writer, v HomeView) error {
	return r.tmpl.ExecuteTemplate(w, "homepage.tmpl", v)
}

func (r *Renderer) BusinessJobsList(w io.Writer, v BusinessView) error {
	return r.tmpl.ExecuteTemplate(w, "business-jobs-list.tmpl", v)
}

func (r *Renderer) LogIn(w io.Writer, v LoginView) error {
	return r.tmpl.ExecuteTemplate(w, "log-in.tmpl", v)
}
