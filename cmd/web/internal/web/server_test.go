package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"diamondband.live/site/cmd/web/auth"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/internal/db"
	"diamondband.live/site/internal/inbox"
	"diamondband.live/site/pkg/carousel"
	"diamondband.live/site/pkg/encryption"
	"diamondband.live/site/pkg/forms"
	"diamondband.live/site/pkg/gallery"
	"diamondband.live/site/pkg/utils/markdown"
	"diamondband.live/site/pkg/utils/passwords"
)

const adminPassword = "correct horse battery"

// siteStore backs every store interface the server needs.
type siteStore struct {
	gallery      []*db.GalleryItem
	testimonials []*db.Testimonial
	posts        []*db.BlogPost
	bookings     []*db.BookingInquiry
	messages     []*db.ContactMessage
	subscribers  map[string]bool
	admin        *db.AdminUser
}

func newID() pgtype.UUID { return pgtype.UUID{Bytes: uuid.New(), Valid: true} }

func (s *siteStore) ListPublicGalleryItems(context.Context) ([]*db.GalleryItem, error) {
	return s.gallery, nil
}

func (s *siteStore) ListFeaturedGalleryItems(context.Context, int32) ([]*db.GalleryItem, error) {
	return s.gallery, nil
}

func (s *siteStore) ListTestimonials(context.Context) ([]*db.Testimonial, error) {
	return s.testimonials, nil
}

func (s *siteStore) ListActiveBandMembers(context.Context, int32) ([]*db.BandMember, error) {
	return []*db.BandMember{{Name: "Dawit Bekele", Role: "Lead Vocals"}}, nil
}

func (s *siteStore) ListServices(context.Context, *db.ListServicesParams) ([]*db.Service, error) {
	return []*db.Service{{Name: "Live Performance", ServiceType: "live_performance", Features: "Full band\nSound check"}}, nil
}

func (s *siteStore) ListPublishedBlogPosts(context.Context, *db.ListPublishedBlogPostsParams) ([]*db.BlogPost, error) {
	return s.posts, nil
}

func (s *siteStore) CountPublishedBlogPosts(context.Context, time.Time) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *siteStore) GetPublishedBlogPostBySlug(_ context.Context, slug string, _ time.Time) (*db.BlogPost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *siteStore) CreateBookingInquiry(_ context.Context, arg *db.CreateBookingInquiryParams) (*db.BookingInquiry, error) {
	row := &db.BookingInquiry{
		ID:          newID(),
		Reference:   arg.Reference,
		ClientName:  arg.ClientName,
		ClientEmail: arg.ClientEmail,
		ClientPhone: arg.ClientPhone,
		EventType:   arg.EventType,
		EventDate:   arg.EventDate,
		Status:      db.BookingStatusPending,
	}
	s.bookings = append(s.bookings, row)
	return row, nil
}

func (s *siteStore) ListBookingInquiries(context.Context, *db.ListBookingInquiriesParams) ([]*db.BookingInquiry, error) {
	return s.bookings, nil
}

func (s *siteStore) CountBookingInquiriesByStatus(context.Context) (map[db.BookingStatus]int64, error) {
	out := map[db.BookingStatus]int64{}
	for _, b := range s.bookings {
		out[b.Status]++
	}
	return out, nil
}

func (s *siteStore) UpdateBookingInquiryStatus(_ context.Context, arg *db.UpdateBookingInquiryStatusParams) (*db.BookingInquiry, error) {
	for _, b := range s.bookings {
		if b.ID == arg.ID {
			b.Status = arg.Status
			return b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *siteStore) CreateContactMessage(_ context.Context, arg *db.CreateContactMessageParams) (*db.ContactMessage, error) {
	row := &db.ContactMessage{ID: newID(), Name: arg.Name, Email: arg.Email, Phone: arg.Phone, Subject: arg.Subject, Message: arg.Message}
	s.messages = append(s.messages, row)
	return row, nil
}

func (s *siteStore) ListContactMessages(context.Context, *db.ListContactMessagesParams) ([]*db.ContactMessage, error) {
	return s.messages, nil
}

func (s *siteStore) CountUnreadContactMessages(context.Context) (int64, error) {
	return int64(len(s.messages)), nil
}

func (s *siteStore) MarkContactMessageRead(_ context.Context, id pgtype.UUID, read bool) (int64, error) {
	for _, m := range s.messages {
		if m.ID == id {
			m.IsRead = read
			return 1, nil
		}
	}
	return 0, nil
}

func (s *siteStore) SubscribeNewsletter(_ context.Context, email string) (bool, error) {
	if s.subscribers == nil {
		s.subscribers = map[string]bool{}
	}
	if s.subscribers[email] {
		return false, nil
	}
	s.subscribers[email] = true
	return true, nil
}

func (s *siteStore) CountNewsletterSubscribers(context.Context) (int64, error) {
	return int64(len(s.subscribers)), nil
}

func (s *siteStore) GetAdminUserByUsername(_ context.Context, username string) (*db.AdminUser, error) {
	if s.admin != nil && strings.EqualFold(s.admin.Username, username) {
		return s.admin, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *siteStore) TouchAdminLogin(context.Context, *db.AdminUser) error { return nil }

type staticSettings struct{ s *db.SiteSetting }

func (s staticSettings) Get() *db.SiteSetting { return s.s }

func newTestServer(t *testing.T) (*Webserver, *siteStore) {
	t.Helper()

	hash, err := passwords.New(adminPassword)
	require.NoError(t, err)

	store := &siteStore{
		gallery: []*db.GalleryItem{
			{ID: newID(), ImageUrl: "/media/gallery/a.jpg", Height: 300, Description: "First dance", EventType: "wedding", MediaType: "image", IsPublic: true},
			{ID: newID(), ImageUrl: "/media/gallery/b.jpg", Height: 500, Description: "Gala night", EventType: "corporate", MediaType: "image", IsPublic: true},
		},
		testimonials: []*db.Testimonial{
			{ID: newID(), ClientName: "Sarah & Michael", Testimonial: "Magical.", Rating: 5},
		},
		posts: []*db.BlogPost{
			{ID: newID(), Title: "Summer Tour", Slug: "summer-tour", Content: *markdown.New("We are **touring**."), PublishedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
		admin: &db.AdminUser{ID: newID(), Username: "manager", Password: hash},
	}

	sealer, err := encryption.NewSealer(encryption.DefaultCipher, make([]byte, encryption.KeySize))
	require.NoError(t, err)

	s, err := NewWebserver(context.Background(), Deps{
		Sessions:   auth.NewSessionManager("test-secret-test-secret-test-secret"),
		Settings:   staticSettings{db.DefaultSiteSettings()},
		Catalog:    catalog.New(store),
		Inbox:      inbox.New(store, sealer),
		Admin:      inbox.NewAdmin(store, sealer),
		AdminUsers: store,
	})
	require.NoError(t, err)
	return s, store
}

func do(s *Webserver, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// csrf fetches the home page and returns the CSRF cookie and token.
func csrf(t *testing.T, s *Webserver) (*http.Cookie, string) {
	t.Helper()
	rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrftoken" {
			return c, c.Value
		}
	}
	t.Fatal("no csrf cookie")
	return nil, ""
}

func jsonRequest(t *testing.T, s *Webserver, path string, body any, datastar bool) *httptest.ResponseRecorder {
	t.Helper()
	cookie, token := csrf(t, s)
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRFToken", token)
	if datastar {
		req.Header.Set("Datastar-Request", "true")
	}
	req.AddCookie(cookie)
	return do(s, req)
}

func TestPages(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	cases := map[string]string{
		"/":                  "Diamond Band",
		"/about/":            "Dawit Bekele",
		"/about":             "Dawit Bekele",
		"/services/":         "Live Performance",
		"/gallery/":          "First dance",
		"/booking/":          "csrfmiddlewaretoken",
		"/contact/":          "Send Message",
		"/blog/":             "Summer Tour",
		"/blog/summer-tour/": "<strong>touring</strong>",
		"/booking/success/":  "Booking Request Sent",
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			rec := do(s, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Body.String(), want)
		})
	}
}

func TestGalleryPage_FilterNarrowsItems(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/gallery/?event_type=corporate", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Gala night")
	require.NotContains(t, rec.Body.String(), "First dance")
}

func TestNotFound_RendersErrorPage(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/blog/missing/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "could not be found")

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestHealthAndStatic(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = do(s, httptest.NewRequest(http.MethodGet, "/static/dist/main.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestGalleryJSON(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/gallery/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var items []gallery.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	rec = do(s, httptest.NewRequest(http.MethodGet, "/gallery/filter/?event_type=wedding", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items []gallery.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, "First dance", body.Items[0].Description)
}

func TestTestimonialsJSON(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/testimonials/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var items []carousel.Testimonial
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.NotEmpty(t, items)
	var names []string
	for _, it := range items {
		names = append(names, it.ClientName)
	}
	require.Contains(t, names, "Sarah & Michael")
}

func TestBookingFormWiring(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/booking/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// The submit button is disabled while the request is in flight.
	require.Contains(t, body, `data-indicator="_bookingSubmitting"`)
	require.Contains(t, body, `data-attr:disabled="$_bookingSubmitting"`)

	// Fields validate on blur and, once showing an error, while typing.
	require.Contains(t, body, `data-on:blur="@post(`)
	require.Contains(t, body, `data-on:input__debounce.300ms="document.getElementById(&#39;booking-email-error&#39;).textContent.trim() !== &#39;&#39; &amp;&amp; @post(&#39;/api/forms/booking/validate?field=email&#39;`)
	require.Contains(t, body, `id="booking-email-error"`)
}

func TestBooking_RequiresCSRF(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/booking/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(s, req)
	require.GreaterOrEqual(t, rec.Code, 400)
	require.Less(t, rec.Code, 500)
	require.Empty(t, store.bookings)
}

func validBookingBody() map[string]string {
	return map[string]string{
		"name":       "Sarah Johnson",
		"email":      "sarah@example.com",
		"phone":      "+15551234567",
		"event_type": "wedding",
		"event_date": "2099-09-20",
		"venue":      "Grand Ballroom",
	}
}

func TestBooking_JSON(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)

	rec := jsonRequest(t, s, "/booking/", validBookingBody(), false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, inbox.BookingThanks, resp.Message)
	require.Len(t, store.bookings, 1)
	require.Equal(t, store.bookings[0].Reference, resp.Reference)

	bad := validBookingBody()
	bad["email"] = "foo"
	rec = jsonRequest(t, s, "/booking/", bad, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var badResp struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &badResp))
	require.False(t, badResp.Success)
	require.Equal(t, forms.MsgEmail, badResp.Errors["email"])
	require.Len(t, store.bookings, 1)
}

func TestBooking_Datastar(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)

	rec := jsonRequest(t, s, "/booking/", validBookingBody(), true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "datastar-patch-elements")
	require.Contains(t, body, "booking-status")
	require.Contains(t, body, "datastar-patch-signals")
	require.Len(t, store.bookings, 1)
	require.Contains(t, body, store.bookings[0].Reference)

	bad := validBookingBody()
	bad["event_date"] = "2001-01-01"
	rec = jsonRequest(t, s, "/booking/", bad, true)
	require.Contains(t, rec.Body.String(), forms.MsgPastDate)
	require.Contains(t, rec.Body.String(), inbox.CorrectErrors)
}

func TestContact_ClassicForm(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)

	cookie, token := csrf(t, s)
	form := url.Values{
		"csrfmiddlewaretoken": {token},
		"name":                {"Abel"},
		"email":               {"abel@example.com"},
		"subject":             {"general"},
		"message":             {"Hello there"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := do(s, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/contact/success/", rec.Header().Get("Location"))
	require.Len(t, store.messages, 1)

	form.Set("email", "not-an-email")
	req = httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec = do(s, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), forms.MsgEmail)
	require.Contains(t, rec.Body.String(), "not-an-email")
}

func TestValidateField(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := jsonRequest(t, s, "/api/forms/booking/validate?field=email", map[string]string{"email": "foo"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "booking-email-error")
	require.Contains(t, rec.Body.String(), forms.MsgEmail)

	rec = jsonRequest(t, s, "/api/forms/nope/validate?field=email", map[string]string{}, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsletter_JSON(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := jsonRequest(t, s, "/newsletter/", map[string]string{"email": "fan@example.com"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), inbox.SubscribeThanks)

	rec = jsonRequest(t, s, "/newsletter/", map[string]string{"email": "FAN@example.com"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), inbox.AlreadySubscribed)

	rec = jsonRequest(t, s, "/newsletter/", map[string]string{"email": "nope"}, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGalleryModal(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)
	second := db.UUIDString(store.gallery[1].ID)

	rec := jsonRequest(t, s, "/api/gallery/open/"+second, map[string]any{"_galleryIndex": -1}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "gallery-modal")
	require.Contains(t, body, "Gala night")
	require.Contains(t, body, `"_galleryIndex":1`)

	rec = jsonRequest(t, s, "/api/gallery/next", map[string]any{"_galleryIndex": 1}, true)
	require.Contains(t, rec.Body.String(), `"_galleryIndex":0`)

	rec = jsonRequest(t, s, "/api/gallery/key?key=Escape", map[string]any{"_galleryIndex": 0}, true)
	require.Contains(t, rec.Body.String(), `"_galleryIndex":-1`)

	// The filter narrows the list the modal walks.
	rec = jsonRequest(t, s, "/api/gallery/next", map[string]any{
		"_galleryIndex":  0,
		"_galleryFilter": map[string]string{"event_type": "wedding"},
	}, true)
	require.Contains(t, rec.Body.String(), `"_galleryIndex":0`)

	rec = jsonRequest(t, s, "/api/gallery/open/"+uuid.NewString(), map[string]any{}, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTestimonialCommand_UnknownView(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t)

	rec := jsonRequest(t, s, "/api/testimonials/nope/next", map[string]any{}, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_LoginFlow(t *testing.T) {
	t.Parallel()
	s, store := newTestServer(t)
	_, err := store.CreateBookingInquiry(context.Background(), &db.CreateBookingInquiryParams{Reference: "DB-AAAAAAAA", ClientName: "Sarah"})
	require.NoError(t, err)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/admin/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin/login", rec.Header().Get("Location"))

	cookie, token := csrf(t, s)
	login := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"csrfmiddlewaretoken": {token}, "username": {"Manager"}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		return do(s, req)
	}

	rec = login("wrong password!")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid username or password")

	rec = login(adminPassword)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName {
			session = c
		}
	}
	require.NotNil(t, session)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(session)
	rec = do(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "DB-AAAAAAAA")
	require.Contains(t, rec.Body.String(), "Signed in as manager")
}
