// Package directory provides the public catalogue of chamber services.
package directory

import (
	"strings"
	"time"

	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/gosimple/slug"
)

// ChannelType is how a service is delivered.
type ChannelType string

// ChannelType values.
const (
	ChannelOnline   ChannelType = "ONLINE"
	ChannelInPerson ChannelType = "IN_PERSON"
	ChannelHybrid   ChannelType = "HYBRID"
)

// ParseChannelType returns the channel for s, accepting any case and "-" separators.
func ParseChannelType(s string) (ChannelType, bool) {
	c := ChannelType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	switch c {
	case ChannelOnline, ChannelInPerson, ChannelHybrid:
		return c, true
	default:
		return "", false
	}
}

// Service is a directory entry. Entries are seeded and read-only at runtime.
type Service struct {
	id           string
	name         locale.Text
	description  locale.Text
	department   string
	platform     string
	channel      ChannelType
	url          string
	tags         []string
	featured     bool
	goldenVendor bool
	sortOrder    int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewService creates a service whose ID is the slug of its English name.
func NewService(name, description locale.Text, department, platform string, channel ChannelType, url string) Service {
	now := time.Now().UTC()
	return Service{
		id:          Slug(name.En),
		name:        name,
		description: description,
		department:  department,
		platform:    platform,
		channel:     channel,
		url:         url,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructService recreates a service from persistence.
func ReconstructService(
	id string,
	name, description locale.Text,
	department, platform string,
	channel ChannelType,
	url string,
	tags []string,
	featured, goldenVendor bool,
	sortOrder int,
	createdAt, updatedAt time.Time,
) Service {
	return Service{
		id:           id,
		name:         name,
		description:  description,
		department:   department,
		platform:     platform,
		channel:      channel,
		url:          url,
		tags:         append([]string(nil), tags...),
		featured:     featured,
		goldenVendor: goldenVendor,
		sortOrder:    sortOrder,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Slug derives a stable identifier from a display name.
func Slug(name string) string {
	return slug.Make(name)
}

// ID returns the service slug.
func (s Service) ID() string { return s.id }

// Name returns the bilingual name.
func (s Service) Name() locale.Text { return s.name }

// Description returns the bilingual description.
func (s Service) Description() locale.Text { return s.description }

// Department returns the owning chamber department.
func (s Service) Department() string { return s.department }

// Platform returns the system the service is delivered through.
func (s Service) Platform() string { return s.platform }

// Channel returns the delivery channel.
func (s Service) Channel() ChannelType { return s.channel }

// URL returns the external link for the service.
func (s Service) URL() string { return s.url }

// Tags returns a copy of the search tags.
func (s Service) Tags() []string { return append([]string(nil), s.tags...) }

// Featured reports whether the service is highlighted on the landing page.
func (s Service) Featured() bool { return s.featured }

// GoldenVendor reports whether the service carries the preferred-partner badge.
func (s Service) GoldenVendor() bool { return s.goldenVendor }

// SortOrder returns the display position.
func (s Service) SortOrder() int { return s.sortOrder }

// CreatedAt returns when the entry was created.
func (s Service) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns when the entry was last changed.
func (s Service) UpdatedAt() time.Time { return s.updatedAt }

// SearchText returns all searchable text in both languages, name first.
func (s Service) SearchText() []string {
	return []string{
		s.name.En, s.name.Ar,
		strings.Join(s.tags, " "),
		s.description.En, s.description.Ar,
		s.department, s.platform,
	}
}

// EmbeddingText returns the text used to embed the service for matching.
func (s Service) EmbeddingText() string {
	return strings.Join([]string{s.name.En, s.description.En, strings.Join(s.tags, ", "), s.name.Ar, s.description.Ar}, "\n")
}

// WithTags returns a copy with the given tags.
func (s Service) WithTags(tags ...string) Service {
	s.tags = append([]string(nil), tags...)
	return s
}

// WithFeatured returns a copy with the featured flag set.
func (s Service) WithFeatured(featured bool) Service {
	s.featured = featured
	return s
}

// WithGoldenVendor returns a copy with the golden vendor flag set.
func (s Service) WithGoldenVendor(golden bool) Service {
	s.goldenVendor = golden
	return s
}

// WithSortOrder returns a copy with the given display position.
func (s Service) WithSortOrder(order int) Service {
	s.sortOrder = order
	return s
}
