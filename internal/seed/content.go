package seed

import (
	"diamondband.live/site/internal/db"
)

type photo struct {
	file        string
	height      int32
	description string
	eventType   string
}

var photos = []photo{
	{"WhatsApp%20Image%202025-10-14%20at%2021.24.57_3a657a25.jpg", 400, "Diamond Band performing live at a corporate event", "corporate"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.01_504db127.jpg", 350, "Live performance showcase", "concert"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.01_47426ab4.jpg", 450, "Band members in action", "concert"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.02_2dba3492.jpg", 300, "Musical performance highlight", "wedding"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.02_369f389e.jpg", 500, "Diamond Band live concert", "concert"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.02_946de9dd.jpg", 380, "Jazz and Afro-pop fusion", "festival"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.03_abdafe07.jpg", 420, "Professional band performance", "corporate"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.03_f50ad34f.jpg", 320, "Live music entertainment", "party"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.04_617031bb.jpg", 480, "Diamond Band showcase", "ceremony"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.04_f3e06a0e.jpg", 360, "Musical excellence in action", "wedding"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.05_6b2b6923.jpg", 440, "Versatile band performance", "party"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.05_73f97c91.jpg", 340, "Live event entertainment", "festival"},
	{"WhatsApp%20Image%202025-11-27%20at%2013.55.05_fb6ea21c.jpg", 390, "Diamond Band live music", "other"},
}

// FeaturedPhotos is how many of the first photos appear on the home page.
const FeaturedPhotos = 6

// Gallery returns the 13 stock photos as insert parameters.
func Gallery() []*db.CreateGalleryItemParams {
	out := make([]*db.CreateGalleryItemParams, 0, len(photos))
	for i, p := range photos {
		out = append(out, &db.CreateGalleryItemParams{
			Title:       p.description,
			Description: p.description,
			MediaType:   "image",
			EventType:   p.eventType,
			ImageUrl:    "/media/gallery/" + p.file,
			Height:      p.height,
			IsFeatured:  i < FeaturedPhotos,
			IsPublic:    true,
		})
	}
	return out
}

var Testimonials = []db.CreateTestimonialParams{
	{
		ClientName:  "Sarah & Michael",
		Testimonial: "Diamond Band made our wedding day absolutely magical! Their music was perfect and they were so professional.",
		Rating:      5,
		EventType:   "Wedding",
		IsFeatured:  true,
	},
	{
		ClientName:    "James Carter",
		ClientCompany: "Corporate Events Inc.",
		Testimonial:   "Outstanding performance at our annual gala. The band created the perfect atmosphere for our guests.",
		Rating:        5,
		EventType:     "Corporate Event",
		IsFeatured:    true,
	},
	{
		ClientName:  "Grace Fellowship Church",
		Testimonial: "Their worship set moved the whole congregation. Tight, warm and on time from sound check to the last song.",
		Rating:      5,
		EventType:   "Official Ceremony",
	},
	{
		ClientName:  "Daniel O.",
		Testimonial: "Booked them for my parents' anniversary and the dance floor never emptied. Would hire again.",
		Rating:      4,
		EventType:   "Private Party",
	},
}

var Members = []db.CreateBandMemberParams{
	{Name: "David Mensah", Role: "Lead Vocalist", Bio: "Founder of the band and its voice for over a decade.", SortOrder: 1},
	{Name: "Esther Nwosu", Role: "Keyboards & Music Director", Bio: "Arranges every set and leads rehearsals.", SortOrder: 2},
	{Name: "Samuel Okafor", Role: "Lead Guitar", Bio: "Brings the jazz and highlife colours to our sound.", SortOrder: 3},
	{Name: "Ruth Adeyemi", Role: "Saxophone", Bio: "Classically trained, happiest on a festival stage.", SortOrder: 4},
	{Name: "Peter Boateng", Role: "Drums", Bio: "Keeps the groove steady from first dance to last call.", SortOrder: 5},
}

var Services = []db.CreateServiceParams{
	{
		Name:             "Live Performance",
		ServiceType:      "live_performance",
		ShortDescription: "A full live band for weddings, galas and concerts.",
		Description:      "Our full line-up performs curated sets tailored to your event, from ceremony music to a packed dance floor.",
		PriceRange:       "Contact for a quote",
		Duration:         "2-5 hours",
		Features:         "Full band line-up\nCustom set list\nMC services\nFirst dance arrangements",
		Icon:             "fas fa-music",
		IsFeatured:       true,
		SortOrder:        1,
	},
	{
		Name:             "Studio Recording",
		ServiceType:      "studio_recording",
		ShortDescription: "Session musicians and production for your project.",
		Description:      "Book the band as session players, or let us arrange and produce your single from demo to master.",
		Duration:         "Per session",
		Features:         "Session musicians\nArrangement\nMixing and mastering",
		Icon:             "fas fa-microphone",
		IsFeatured:       true,
		SortOrder:        2,
	},
	{
		Name:             "Carpet Band",
		ServiceType:      "carpet_band",
		ShortDescription: "A roaming acoustic group to welcome your guests.",
		Description:      "A smaller acoustic ensemble for receptions, cocktail hours and red carpet arrivals.",
		Duration:         "1-2 hours",
		Features:         "Acoustic trio or quartet\nRoaming performance\nGuest requests",
		Icon:             "fas fa-guitar",
		IsFeatured:       true,
		SortOrder:        3,
	},
	{
		Name:             "Sound Setup",
		ServiceType:      "sound_setup",
		ShortDescription: "PA, lighting and an engineer for your event.",
		Description:      "Professional sound reinforcement and stage lighting, with an engineer on site for the whole event.",
		Features:         "PA system\nStage lighting\nSound engineer",
		Icon:             "fas fa-sliders-h",
		SortOrder:        4,
	},
}

// Post is a sample news post. Content is Markdown.
type Post struct {
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	Image    string
	Featured bool
}

var Posts = []Post{
	{
		Title:   "Diamond Band Announces New Album Release",
		Slug:    "diamond-band-new-album",
		Excerpt: `Diamond Band announces their new album "Harmony in the Heart" with Christian and jazz influences.`,
		Content: `Diamond Band is excited to announce the release of our latest album, **"Harmony in the Heart"**, featuring our signature blend of Christian and jazz influences.

The album includes 12 tracks, each telling a story of faith, love, and perseverance. Standout tracks include "Grace Notes" and "Rhythm of Redemption".

Pre-order now available on our website. Release date: December 15, 2025.`,
		Image:    "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800",
		Featured: true,
	},
	{
		Title:   "First Love Music Streaming Now Available",
		Slug:    "first-love-music-streaming",
		Excerpt: `First Love Music's "Eternal Flame" now streaming on all major platforms.`,
		Content: `First Love Music's debut single "Eternal Flame" is now available on all major streaming platforms.

Stream on:

- [Spotify](https://spotify.com)
- [Apple Music](https://apple.com/music)
- [YouTube Music](https://youtube.com)
- [Deezer](https://deezer.com)
- [Tidal](https://tidal.com)

Follow us on social media for updates on upcoming releases and live performances.`,
		Image:    "https://images.unsplash.com/photo-1471478331149-c72f17e33c73?w=800",
		Featured: true,
	},
	{
		Title:   "Upcoming Diamond Band Christmas Concert - Book Now!",
		Slug:    "diamond-band-christmas-concert",
		Excerpt: "Book tickets for Diamond Band's Christmas concert on December 20, 2025.",
		Content: `Join Diamond Band for a special Christmas concert featuring holiday classics and original songs celebrating the season.

**Event Details:**

- Date: December 20, 2025
- Time: 7:00 PM
- Venue: Community Center Auditorium
- Tickets: $25 (includes holiday refreshments)

Book your tickets now through our [booking page](/booking/). Limited seats available!`,
		Image:    "https://images.unsplash.com/photo-1540039155733-5bb30b53aa14?w=800",
		Featured: true,
	},
	{
		Title:   "Diamond Band Featured in Local Music Magazine",
		Slug:    "diamond-band-magazine-feature",
		Excerpt: "Diamond Band featured in Harmony Magazine for our jazz and Christian music fusion.",
		Content: `Diamond Band has been featured in the latest issue of *Harmony Magazine*, highlighting our unique blend of jazz and Christian music.

The feature includes interviews with band members and insights into our creative process.`,
		Image: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=800",
	},
	{
		Title:   "First Love Music Collaborates with Local Artists",
		Slug:    "first-love-music-collaboration",
		Excerpt: "First Love Music collaborates with local gospel choir for upcoming performances.",
		Content: `First Love Music is excited to announce a collaboration with local gospel choir "Heaven's Voices" for an upcoming joint performance.

The collaboration will debut at our spring concert series. Stay tuned for more details and ticket information.`,
		Image: "https://images.unsplash.com/photo-1516280440614-37939bbacd81?w=800",
	},
	{
		Title:   "Diamond Band Summer Tour Dates Announced",
		Slug:    "diamond-band-summer-tour",
		Excerpt: "Diamond Band announces summer tour dates with booking available now.",
		Content: `Diamond Band is hitting the road this summer with the "Faith & Rhythm" tour.

Tour Dates:

- June 15: City Park Amphitheater
- June 22: Downtown Music Hall
- July 5: Riverside Festival Grounds
- July 12: Community Church

Tickets available through our [booking system](/booking/).`,
	},
}

// Settings is the initial site settings row.
func Settings() *db.SiteSetting {
	s := db.DefaultSiteSettings()
	s.Tagline = "Premium Live Music Experience"
	s.AboutText = "Professional Christian band for all occasions"
	s.Phone = "+1 (234) 567-890"
	s.Email = "info@diamondband.com"
	s.Address = "Available Nationwide"
	return s
}
