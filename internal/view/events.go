package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const eventDateLayout = "January 2, 2006"

// Raw HTML in descriptions is dropped; goldmark escapes it by default.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// EventCard is one catalog entry as shown on a category page.
type EventCard struct {
	ID          int64
	Title       string
	Category    string
	Description template.HTML
	When        string
	Venue       string
	Price       string
	ImageURL    string
	// BookHref preselects the event on the booking form.
	BookHref string
}

// EventCards renders catalog events, converting Markdown descriptions.
func EventCards(events []model.Event) ([]EventCard, error) {
	cards := make([]EventCard, 0, len(events))
	for _, e := range events {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(e.Description), &buf); err != nil {
			return nil, fmt.Errorf("render description of event %d: %w", e.ID, err)
		}
		cards = append(cards, EventCard{
			ID:          e.ID,
			Title:       e.Title,
			Category:    catalog.Label(e.Category),
			Description: template.HTML(buf.String()),
			When:        e.Date.Format(eventDateLayout) + " at " + e.Time,
			Venue:       e.Venue,
			Price:       e.Price,
			ImageURL:    e.ImageURL,
			BookHref:    "#" + e.Category,
		})
	}
	return cards, nil
}
