package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"diamondband.live/site/pkg/utils/markdown"
	"diamondband.live/site/pkg/utils/passwords"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type AdminUser struct {
	ID          pgtype.UUID
	Username    string
	Password    passwords.Hash
	CreatedAt   pgtype.Timestamptz
	LastLoginAt pgtype.Timestamptz
}

type BandMember struct {
	ID        pgtype.UUID
	Name      string
	Role      string
	Bio       string
	ImageUrl  string
	Instagram string
	Facebook  string
	Twitter   string
	SortOrder int32
	IsActive  bool
}

type Service struct {
	ID               pgtype.UUID
	Name             string
	ServiceType      string
	Description      string
	ShortDescription string
	PriceRange       string
	Duration         string
	Features         string
	Icon             string
	ImageUrl         string
	IsFeatured       bool
	SortOrder        int32
}

type GalleryItem struct {
	ID            pgtype.UUID
	Title         string
	Description   string
	MediaType     string
	EventType     string
	EventDate     pgtype.Date
	EventLocation string
	ImageUrl      string
	VideoUrl      string
	Height        int32
	IsFeatured    bool
	IsPublic      bool
	CreatedAt     pgtype.Timestamptz
}

type Testimonial struct {
	ID            pgtype.UUID
	ClientName    string
	ClientCompany string
	Testimonial   string
	Rating        int16
	EventType     string
	IsFeatured    bool
	CreatedAt     pgtype.Timestamptz
}

type BlogPost struct {
	ID            pgtype.UUID
	Title         string
	Slug          string
	Excerpt       string
	Content       markdown.Markdown
	FeaturedImage string
	Status        PostStatus
	IsFeatured    bool
	PublishedAt   time.Time
	CreatedAt     pgtype.Timestamptz
}

// BookingInquiry is a stored booking request. ClientEmail and ClientPhone are
// sealed.
type BookingInquiry struct {
	ID                  pgtype.UUID
	Reference           string
	ClientName          string
	ClientEmail         []byte
	ClientPhone         []byte
	ClientCompany       string
	EventType           string
	EventTitle          string
	EventDate           pgtype.Date
	StartTime           string
	EndTime             string
	EventLocation       string
	GuestCount          string
	BudgetRange         string
	Message             string
	SpecialRequirements string
	HowHeard            string
	Status              BookingStatus
	AdminNotes          string
	QuotedPrice         pgtype.Numeric
	CreatedAt           pgtype.Timestamptz
}

// ContactMessage is a stored contact form message. Email and Phone are sealed.
type ContactMessage struct {
	ID        pgtype.UUID
	Name      string
	Email     []byte
	Phone     []byte
	Subject   string
	Message   string
	IsRead    bool
	CreatedAt pgtype.Timestamptz
}

type NewsletterSubscriber struct {
	ID           pgtype.UUID
	Email        string
	SubscribedAt pgtype.Timestamptz
}

type SiteSetting struct {
	SiteTitle    string
	Tagline      string
	AboutText    string
	Phone        string
	Email        string
	Address      string
	FacebookUrl  string
	InstagramUrl string
	YoutubeUrl   string
	TwitterUrl   string
	Stats        string
	UpdatedAt    pgtype.Timestamptz
}
