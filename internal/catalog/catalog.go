// Package catalog holds the static list of bookable event types and the host profile.
package catalog

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"booking-wizard/internal/model"
)

var ErrUnknownEvent = errors.New("unknown event type")

var host = model.Profile{
	Name:     "Sanskar Yadav",
	Email:    "sanskar.yadav@onehash.ai",
	Headline: "Head of Growth @OneHash | Building the craziest tools on the Internet 🚀",
	Location: "Google Meet",
}

var events = []model.EventType{
	{
		Title:       "Product Hunt Chats",
		Description: "The essence of Product Hunt reflects in communities- Select a time suitable for you, and let's talk products!",
		Durations:   []string{"15m", "30m", "45m", "60m"},
	},
	{
		Title:       "Interviews",
		Description: "Let's chat about how your skills can be an asset for our team. No stress, just good vibes and great questions!",
		Durations:   []string{"30m", "60m"},
	},
	{
		Title:       "Product Demo",
		Description: "Witness innovation in action! Reserve a time for a personalized demo of our next-gen scheduler (THIS SITE)",
		Durations:   []string{"30m", "45m"},
	},
	{
		Title:       "Everything Else",
		Description: "Open Agenda! Let's brainstorm over coffee or talk about your favorite singer. Whatever it is, I'm all ears! 🎵",
		Durations:   []string{"15m", "30m", "60m"},
	},
	{
		Title:       "Recurring Event",
		Description: "Testing out the recurring feature",
		Durations:   []string{"15m"},
	},
}

// raw HTML in descriptions stays escaped (no WithUnsafe)
var md = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// Catalog is an immutable set of event types plus the host they belong to.
type Catalog struct {
	host   model.Profile
	events []model.EventType
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(host, events)
}

// New copies the given entries so later mutation by the caller has no effect.
func New(p model.Profile, evs []model.EventType) *Catalog {
	out := make([]model.EventType, len(evs))
	for i, e := range evs {
		e.Durations = append([]string(nil), e.Durations...)
		out[i] = e
	}
	return &Catalog{host: p, events: out}
}

func (c *Catalog) Profile() model.Profile { return c.host }

// Events returns a copy of the catalog in display order.
func (c *Catalog) Events() []model.EventType {
	out := make([]model.EventType, len(c.events))
	for i, e := range c.events {
		e.Durations = append([]string(nil), e.Durations...)
		out[i] = e
	}
	return out
}

// Lookup finds an event type by its exact title.
func (c *Catalog) Lookup(title string) (model.EventType, error) {
	for _, e := range c.events {
		if e.Title == title {
			e.Durations = append([]string(nil), e.Durations...)
			return e, nil
		}
	}
	return model.EventType{}, ErrUnknownEvent
}

// RenderMarkdown turns a description into safe HTML.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(strings.TrimSpace(buf.String()))
}
