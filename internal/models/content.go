package models

import "time"

type Banner struct {
	Model
	Title       string  `json:"title" gorm:"not null;size:200"`
	Subtitle    *string `json:"subtitle" gorm:"size:500"`
	MediaURL    string  `json:"mediaUrl" gorm:"not null;size:1000"`
	MediaType   string  `json:"mediaType" gorm:"not null;size:100"`
	Button1Text *string `json:"button1Text" gorm:"size:100"`
	Button1Link *string `json:"button1Link" gorm:"size:500"`
	Button2Text *string `json:"button2Text" gorm:"size:100"`
	Button2Link *string `json:"button2Link" gorm:"size:500"`
	Order       int     `json:"order" gorm:"column:display_order;index;not null"`
	Audit
}

func (Banner) TableName() string {
	return "banners"
}

// Testimonial is one cached review from the external place listing.
type Testimonial struct {
	Model
	Author         string     `json:"author" gorm:"size:200"`
	AuthorPhotoURL *string    `json:"authorPhotoUrl" gorm:"size:1000"`
	Text           string     `json:"text" gorm:"type:text;not null"`
	Rating         int        `json:"rating"`
	RelativeTime   string     `json:"relativeTime" gorm:"size:100"`
	PublishedAt    *time.Time `json:"publishedAt" gorm:"index"`
	PlaceName      string     `json:"placeName" gorm:"size:200"`
	PlaceRating    float64    `json:"placeRating"`
	SyncedAt       time.Time  `json:"syncedAt"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
