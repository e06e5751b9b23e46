package repository

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/taehan09/studio/internal/content"
	"github.com/taehan09/studio/internal/storage"
	"github.com/taehan09/studio/internal/watch"
)

// Repository aggregates one typed Section per content path.
type Repository struct {
	Hero     *Section[content.HeroText]
	About    *Section[content.AboutText]
	Artists  *Section[[]content.Artist]
	Gallery  *Section[[]content.GalleryImage]
	FAQ      *Section[[]content.FaqItem]
	Location *Section[content.LocationInfo]
	Footer   *Section[content.FooterInfo]

	byName map[string]RawSection
}

func New(store storage.DocumentStore, hub *watch.Hub, logger *slog.Logger) *Repository {
	r := &Repository{
		Hero:     NewSection(content.PathHero, content.DefaultHeroText, validateHero, store, hub, logger),
		About:    NewSection(content.PathAbout, content.DefaultAboutText, validateAbout, store, hub, logger),
		Artists:  NewSection(content.PathArtists, content.DefaultArtists, validateArtists, store, hub, logger),
		Gallery:  NewSection(content.PathGallery, content.DefaultGallery, validateGallery, store, hub, logger),
		FAQ:      NewSection(content.PathFAQ, content.DefaultFAQ, validateFAQ, store, hub, logger),
		Location: NewSection(content.PathLocation, content.DefaultLocationInfo, validateLocation, store, hub, logger),
		Footer:   NewSection(content.PathFooter, content.DefaultFooterInfo, validateFooter, store, hub, logger),
	}
	r.byName = map[string]RawSection{
		"hero":     r.Hero,
		"about":    r.About,
		"artists":  r.Artists,
		"gallery":  r.Gallery,
		"faq":      r.FAQ,
		"location": r.Location,
		"footer":   r.Footer,
	}
	return r
}

// Section returns the untyped section registered under name.
func (r *Repository) Section(name string) (RawSection, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// --- Validators ---
//
// Collection validators also normalize: members submitted without an id get a
// generated one, so editors can add locally-created members and persist the
// whole collection in a single save.

func validateHero(h *content.HeroText) *ValidationError {
	e := &ValidationError{}
	if strings.TrimSpace(h.Title) == "" {
		e.add("title", "title is required")
	}
	if strings.TrimSpace(h.Subtitle) == "" {
		e.add("subtitle", "subtitle is required")
	}
	return e.orNil()
}

func validateAbout(a *content.AboutText) *ValidationError {
	e := &ValidationError{}
	if strings.TrimSpace(a.Title) == "" {
		e.add("title", "title is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		e.add("description", "description is required")
	}
	return e.orNil()
}

func validateArtists(artists *[]content.Artist) *ValidationError {
	e := &ValidationError{}
	seen := make(map[string]bool, len(*artists))
	for i := range *artists {
		a := &(*artists)[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if seen[a.ID] {
			e.add(fmt.Sprintf("artists[%d].id", i), "duplicate id "+a.ID)
		}
		seen[a.ID] = true
		if strings.TrimSpace(a.Name) == "" {
			e.add(fmt.Sprintf("artists[%d].name", i), "name is required")
		}
	}
	return e.orNil()
}

func validateGallery(images *[]content.GalleryImage) *ValidationError {
	e := &ValidationError{}
	seen := make(map[string]bool, len(*images))
	for i := range *images {
		img := &(*images)[i]
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		if seen[img.ID] {
			e.add(fmt.Sprintf("images[%d].id", i), "duplicate id "+img.ID)
		}
		seen[img.ID] = true
		if strings.TrimSpace(img.Src) == "" {
			e.add(fmt.Sprintf("images[%d].src", i), "src is required")
		}
		if strings.TrimSpace(img.Category) == "" {
			e.add(fmt.Sprintf("images[%d].category", i), "category is required")
		}
	}
	return e.orNil()
}

func validateFAQ(items *[]content.FaqItem) *ValidationError {
	e := &ValidationError{}
	seen := make(map[string]bool, len(*items))
	for i := range *items {
		item := &(*items)[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] {
			e.add(fmt.Sprintf("items[%d].id", i), "duplicate id "+item.ID)
		}
		seen[item.ID] = true
		if strings.TrimSpace(item.Question) == "" {
			e.add(fmt.Sprintf("items[%d].question", i), "question is required")
		}
		if strings.TrimSpace(item.Answer) == "" {
			e.add(fmt.Sprintf("items[%d].answer", i), "answer is required")
		}
	}
	return e.orNil()
}

func validateLocation(l *content.LocationInfo) *ValidationError {
	e := &ValidationError{}
	if strings.TrimSpace(l.Title) == "" {
		e.add("title", "title is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		e.add("address", "address is required")
	}
	return e.orNil()
}

func validateFooter(f *content.FooterInfo) *ValidationError {
	e := &ValidationError{}
	if strings.TrimSpace(f.CopyrightName) == "" {
		e.add("copyrightName", "copyright name is required")
	}
	return e.orNil()
}
