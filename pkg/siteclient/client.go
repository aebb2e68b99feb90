// Package siteclient talks to a running site over HTTP: it lists gallery items
// and testimonials and submits the booking and contact forms the same way the
// browser does, including the CSRF handshake.
package siteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"diamondband.live/site/pkg/carousel"
	"diamondband.live/site/pkg/forms"
	"diamondband.live/site/pkg/gallery"
)

// CSRFHeader is the request header the site reads the token from.
const CSRFHeader = "X-CSRFToken"

// CSRFField is the name of the hidden form input carrying the token.
const CSRFField = "csrfmiddlewaretoken"

// ErrNoToken is returned when a page carries no CSRF marker.
var ErrNoToken = errors.New("siteclient: csrf token not found")

// SubmitError is a rejected form submission.
type SubmitError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *SubmitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("submit failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("submit failed (%d)", e.Status)
}

// SubmitResult is the JSON body returned by the form endpoints.
type SubmitResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Reference string            `json:"reference,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Client is an HTTP client for one site.
type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the site at baseURL. A cookie jar is attached so
// the CSRF cookie set by a page fetch is sent with the following POST.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		base: u,
		http: &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c, nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A jar is added if it has
// none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			// Copy so attaching a jar never touches the caller's client.
			cp := *hc
			c.http = &cp
		}
	}
}

func (c *Client) url(path string) string {
	return c.base.String() + path
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

var (
	_ gallery.Source  = (*Client)(nil)
	_ carousel.Source = (*Client)(nil)
)

// ListGallery implements gallery.Source.
func (c *Client) ListGallery(ctx context.Context) ([]gallery.Item, error) {
	var items []gallery.Item
	if err := c.getJSON(ctx, "/api/gallery/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FilterGallery queries the filter endpoint.
func (c *Client) FilterGallery(ctx context.Context, f gallery.Filter) ([]gallery.Item, error) {
	q := url.Values{}
	if f.EventType != "" {
		q.Set("event_type", f.EventType)
	}
	if f.MediaType != "" {
		q.Set("media_type", f.MediaType)
	}
	if f.Year != "" {
		q.Set("year", f.Year)
	}
	path := "/gallery/filter/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		Items []gallery.Item `json:"items"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ListTestimonials implements carousel.Source.
func (c *Client) ListTestimonials(ctx context.Context) ([]carousel.Testimonial, error) {
	var items []carousel.Testimonial
	if err := c.getJSON(ctx, "/api/testimonials/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CSRFToken loads page and returns the token of its embedded form marker.
func (c *Client) CSRFToken(ctx context.Context, page string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(page), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", page, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: %s", page, resp.Status)
	}
	return TokenFromHTML(resp.Body)
}

// SubmitBooking posts a booking inquiry.
func (c *Client) SubmitBooking(ctx context.Context, values map[string]string) (SubmitResult, error) {
	return c.submit(ctx, "/booking/", values)
}

// SubmitContact posts a contact message.
func (c *Client) SubmitContact(ctx context.Context, values map[string]string) (SubmitResult, error) {
	return c.submit(ctx, "/contact/", values)
}

// Subscribe signs an address up for the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) (SubmitResult, error) {
	return c.submit(ctx, "/newsletter/", map[string]string{"email": email})
}

func (c *Client) submit(ctx context.Context, path string, values map[string]string) (SubmitResult, error) {
	var res SubmitResult

	token, err := c.CSRFToken(ctx, pageFor(path))
	if err != nil {
		return res, fmt.Errorf("csrf: %w", err)
	}
	body, err := json.Marshal(values)
	if err != nil {
		return res, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return res, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CSRFHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return res, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	// Non-JSON bodies (e.g. a 403 page) still yield a SubmitError below.
	_ = json.Unmarshal(raw, &res)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !res.Success {
		msg := res.Message
		if msg == "" && resp.StatusCode >= 300 {
			msg = http.StatusText(resp.StatusCode)
		}
		return res, &SubmitError{Status: resp.StatusCode, Message: msg, Fields: res.Errors}
	}
	return res, nil
}

// pageFor maps a POST endpoint to the page that renders its form.
func pageFor(path string) string {
	if path == "/newsletter/" {
		return "/"
	}
	return path
}

// Booking adapts SubmitBooking to forms.Submitter.
func (c *Client) Booking() forms.Submitter {
	return forms.SubmitterFunc(func(ctx context.Context, v map[string]string) error {
		_, err := c.SubmitBooking(ctx, v)
		return err
	})
}

// Contact adapts SubmitContact to forms.Submitter.
func (c *Client) Contact() forms.Submitter {
	return forms.SubmitterFunc(func(ctx context.Context, v map[string]string) error {
		_, err := c.SubmitContact(ctx, v)
		return err
	})
}
