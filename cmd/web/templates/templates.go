// Package templates renders the site's pages and the fragments patched in over
// Datastar. Markup lives in embedded html/template files; every exported
// function returns a templ.Component so pages and SSE patches share one
// rendering interface.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/a-h/templ"

	"diamondband.live/site/cmd/web/viewtypes"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/inbox"
	"diamondband.live/site/pkg/carousel"
	"diamondband.live/site/pkg/forms"
	"diamondband.live/site/pkg/gallery"
	"diamondband.live/site/pkg/utils/format"
)

//go:embed html
var files embed.FS

// CSRF names shared with the client and the CSRF middleware.
const (
	CSRFField  = "csrfmiddlewaretoken"
	CSRFHeader = "X-CSRFToken"
)

var funcs = template.FuncMap{
	"comma":    format.Comma,
	"counter":  format.Counter,
	"date":     format.Date,
	"truncate": format.Truncate,
	"initials": format.Initials,
	"itoa":     format.Itoa,
	"stars":    carousel.Stars,
	"class":    viewtypes.Class,
	"lower":    strings.ToLower,
	"add":      func(a, b int) int { return a + b },
	"millis":   func(d time.Duration) int64 { return d.Milliseconds() },
	"json":     toJSON,
	"post":     action("post"),
	"get":      action("get"),
	"dict":     dict,
}

// action builds a Datastar backend action that carries the CSRF header read
// from the page-level _csrf signal.
func action(method string) func(url string, include ...string) template.JS {
	return func(url string, include ...string) template.JS {
		opts := "headers: {'" + CSRFHeader + "': $_csrf}"
		if len(include) > 0 {
			opts += ", filterSignals: {include: /" + strings.Join(include, "|") + "/}"
		}
		return template.JS(fmt.Sprintf("@%s('%s', {%s})", method, url, opts))
	}
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var (
	base  *template.Template
	pages = map[string]*template.Template{}
)

func init() {
	sub, err := fs.Sub(files, "html")
	if err != nil {
		panic(err)
	}
	base = template.Must(template.New("").Funcs(funcs).ParseFS(sub, "layout.html", "partials/*.html"))

	entries, err := fs.ReadDir(sub, "pages")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".html")
		t := template.Must(template.Must(base.Clone()).ParseFS(sub, "pages/"+e.Name()))
		pages[name] = t
	}
}

func page(name string, data any) templ.Component {
	t, ok := pages[name]
	if !ok {
		panic("templates: unknown page " + name)
	}
	return templ.FromGoHTML(t.Lookup("layout"), data)
}

func fragment(name string, data any) templ.Component {
	return templ.FromGoHTML(base.Lookup(name), data)
}

// Page is the data every full page render needs.
type Page struct {
	Title       string
	Description string
	Active      string
	CSRF        string
	Settings    *db.SiteSetting
	Flashes     []string
	Admin       string
	Year        int
}

// Signals is the page-level Datastar signal object.
func (p Page) Signals() map[string]any {
	return map[string]any{"_csrf": p.CSRF, "newsletter_email": ""}
}

// NavLink is one entry of the main navigation.
type NavLink struct {
	Key   string
	Label string
	Href  string
}

// Nav is the main navigation.
func (p Page) Nav() []NavLink {
	return []NavLink{
		{"home", "Home", "/"},
		{"about", "About", "/about/"},
		{"services", "Services", "/services/"},
		{"gallery", "Gallery", "/gallery/"},
		{"blog", "News", "/blog/"},
		{"booking", "Book Us", "/booking/"},
		{"contact", "Contact", "/contact/"},
	}
}

// HomeView is the landing page.
type HomeView struct {
	Page
	Members  []catalog.Member
	Services []catalog.Service
	Gallery  []gallery.Item
	Posts    []*db.BlogPost
	Stats    []catalog.Stat
}

func Home(v HomeView) templ.Component { return page("home", v) }

// AboutView is the band page.
type AboutView struct {
	Page
	Members []catalog.Member
	Stats   []catalog.Stat
}

func About(v AboutView) templ.Component { return page("about", v) }

// ServicesView lists every offering.
type ServicesView struct {
	Page
	Services []catalog.Service
}

func Services(v ServicesView) templ.Component { return page("services", v) }

// GalleryView is the gallery page with its filters and masonry columns.
type GalleryView struct {
	Page
	Filter     gallery.Filter
	Columns    [][]gallery.Item
	Count      int
	Years      []int
	EventTypes []forms.Choice
	MediaTypes []forms.Choice
}

// GallerySignals seeds the modal state for the Datastar widget.
func (v GalleryView) GallerySignals() map[string]any {
	return map[string]any{
		"_galleryIndex":  gallery.NoSelection,
		"_galleryFilter": v.Filter,
	}
}

func Gallery(v GalleryView) templ.Component { return page("gallery", v) }

// ModalView is the content of #gallery-modal.
type ModalView struct {
	Open  bool
	Item  gallery.Item
	Index int
	Count int
}

func GalleryModal(v ModalView) templ.Component { return fragment("gallery-modal", v) }

// SlideView is the content of #testimonial-slide.
type SlideView struct {
	View     string
	Items    []carousel.Testimonial
	Index    int
	Autoplay bool
}

// Current returns the visible testimonial.
func (v SlideView) Current() carousel.Testimonial {
	if v.Index < 0 || v.Index >= len(v.Items) {
		return carousel.Testimonial{}
	}
	return v.Items[v.Index]
}

func TestimonialSlide(v SlideView) templ.Component { return fragment("testimonial-slide", v) }

// FieldView is one rendered form field.
type FieldView struct {
	Form string
	forms.Field
	Value string
	Error string
}

// ID is the DOM id of the input.
func (f FieldView) ID() string { return f.Form + "-" + f.Name }

// ErrorID is the DOM id of the field's feedback element.
func (f FieldView) ErrorID() string { return f.ID() + "-error" }

// Validate checks the field on the server and patches its feedback element.
func (f FieldView) Validate() template.JS {
	return action("post")(fmt.Sprintf("/api/forms/%s/validate?field=%s", f.Form, f.Name))
}

// Revalidate runs Validate only while the feedback element shows an error, so
// typing clears a message as soon as the value becomes valid.
func (f FieldView) Revalidate() template.JS {
	return template.JS(fmt.Sprintf("document.getElementById('%s').textContent.trim() !== '' && %s", f.ErrorID(), f.Validate()))
}

// FormView is a booking or contact page.
type FormView struct {
	Page
	Form    string
	Action  string
	Heading string
	Intro   string
	Submit  string
	Fields  []FieldView
	Status  forms.Status
	Message string
}

// Indicator names the signal Datastar holds true while the form's request is
// in flight; the submit button is disabled on it.
func (v FormView) Indicator() string { return "_" + v.Form + "Submitting" }

// FormSignals seeds one signal per field.
func (v FormView) FormSignals() map[string]any {
	out := make(map[string]any, len(v.Fields))
	for _, f := range v.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// Field returns the named field.
func (v FormView) Field(name string) FieldView {
	for _, f := range v.Fields {
		if f.Name == name {
			return f
		}
	}
	return FieldView{Form: v.Form}
}

// NewFormView lays out schema with the given values and errors.
func NewFormView(p Page, schema forms.Schema, values, errs map[string]string) FormView {
	v := FormView{Page: p, Form: schema.Name, Action: "/" + schema.Name + "/", Status: forms.StatusIdle}
	for _, f := range schema.Fields {
		v.Fields = append(v.Fields, FieldView{Form: schema.Name, Field: f, Value: values[f.Name], Error: errs[f.Name]})
	}
	return v
}

func Booking(v FormView) templ.Component { return page("booking", v) }
func Contact(v FormView) templ.Component { return page("contact", v) }

// StatusView is the content of #<form>-status.
type StatusView struct {
	Form    string
	Status  forms.Status
	Message string
}

func FormStatus(v StatusView) templ.Component { return fragment("form-status", v) }

// FieldErrorView is the content of #<form>-<field>-error.
type FieldErrorView struct {
	Form    string
	Name    string
	Message string
}

func FieldError(v FieldErrorView) templ.Component { return fragment("field-error", v) }

// NewsletterView is the content of #newsletter-status.
type NewsletterView struct {
	OK      bool
	Message string
}

func NewsletterStatus(v NewsletterView) templ.Component { return fragment("newsletter-status", v) }

// SuccessView confirms a submission.
type SuccessView struct {
	Page
	Heading string
	Back    string
}

func Success(v SuccessView) templ.Component { return page("success", v) }

// BlogView is one page of the news index.
type BlogView struct {
	Page
	catalog.PostPage
}

func Blog(v BlogView) templ.Component { return page("blog", v) }

// PostView is a single news post.
type PostView struct {
	Page
	Post   *db.BlogPost
	Latest []*db.BlogPost
}

func BlogPost(v PostView) templ.Component { return page("post", v) }

// LoginView is the admin sign-in page.
type LoginView struct {
	Page
	Username string
	Error    string
}

func Login(v LoginView) templ.Component { return page("login", v) }

// AdminView is the admin dashboard.
type AdminView struct {
	Page
	Summary  *inbox.Summary
	Filter   db.BookingStatus
	Bookings []inbox.Booking
	Messages []inbox.Message
	Statuses []db.BookingStatus
}

// StatusCount is the number of bookings in status s.
func (v AdminView) StatusCount(s db.BookingStatus) int64 {
	if v.Summary == nil {
		return 0
	}
	return v.Summary.Bookings[s]
}

func AdminHome(v AdminView) templ.Component { return page("admin", v) }

// ErrorView is shown for HTML requests that fail.
type ErrorView struct {
	Page
	Code    int
	Message string
}

func Error(v ErrorView) templ.Component { return page("error", v) }
