// Package enrich derives the avatar and futbin reference URLs for a record.
//
// Enrichment is fill-only: a URL field that is already non-empty is never
// recomputed, so the pass is idempotent and safe to re-run over data that
// was enriched before or edited by hand. Both URLs are deterministic
// functions of the name; the template parameters are configuration, not
// data.
package enrich

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// Default URL template configuration.
const (
	defaultAvatarBaseURL = "https://ui-avatars.com/api/"
	defaultFutbinBaseURL = "https://www.futbin.com/search"
	defaultBackground    = "random"
	defaultFormat        = "png"
	defaultSize          = 256
	defaultRounded       = true
)

// Option applies a configuration option to the Enricher.
type Option func(*Enricher)

// WithAvatarBaseURL sets the avatar endpoint.
func WithAvatarBaseURL(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.avatarBase = base
		}
	}
}

// WithFutbinBaseURL sets the futbin search endpoint.
func WithFutbinBaseURL(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.futbinBase = base
		}
	}
}

// WithAvatarStyle sets the avatar template parameters.
func WithAvatarStyle(rounded bool, background string, size int, format string) Option {
	return func(e *Enricher) {
		e.rounded = rounded
		if background != "" {
			e.background = background
		}
		if size > 0 {
			e.size = size
		}
		if format != "" {
			e.format = format
		}
	}
}

// Enricher computes the derived URLs for canonical records.
type Enricher struct {
	avatarBase string
	futbinBase string
	rounded    bool
	background string
	size       int
	format     string
}

// New creates an Enricher with configuration options.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		avatarBase: defaultAvatarBaseURL,
		futbinBase: defaultFutbinBaseURL,
		rounded:    defaultRounded,
		background: defaultBackground,
		size:       defaultSize,
		format:     defaultFormat,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enrich fills the URL fields of rec iff they are empty. A record with an
// empty name is returned unchanged; there is nothing to derive from.
func (e *Enricher) Enrich(rec model.Enriched) model.Enriched {
	if rec.Name == "" {
		return rec
	}
	if rec.ImageURL == "" {
		rec.ImageURL = e.AvatarURL(rec.Name)
	}
	if rec.FutbinURL == "" {
		rec.FutbinURL = e.FutbinURL(rec.Name)
	}
	return rec
}

// AvatarURL returns the templated avatar reference for name.
func (e *Enricher) AvatarURL(name string) string {
	var b strings.Builder
	b.WriteString(e.avatarBase)
	b.WriteString("?name=")
	b.WriteString(url.QueryEscape(strings.TrimSpace(name)))
	b.WriteString("&rounded=")
	b.WriteString(strconv.FormatBool(e.rounded))
	b.WriteString("&background=")
	b.WriteString(url.QueryEscape(e.background))
	b.WriteString("&size=")
	b.WriteString(strconv.Itoa(e.size))
	b.WriteString("&format=")
	b.WriteString(url.QueryEscape(e.format))
	return b.String()
}

// FutbinURL returns the templated search reference for name.
func (e *Enricher) FutbinURL(name string) string {
	return e.futbinBase + "?query=" + url.QueryEscape(strings.TrimSpace(name))
}
