package main

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/format"
	"finitefield.org/stays-web/internal/handlers"
	"finitefield.org/stays-web/internal/listing"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/notify"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/prefs"
	"finitefield.org/stays-web/internal/seo"
	"finitefield.org/stays-web/internal/storefront"
)

// pageData builds the layout view model. Notifications raised so far are embedded for
// display after load, so call it once the visitor's commands have run.
func (a *app) pageData(r *http.Request, v *storefront.Visitor, notes *notify.Collector, page string, state storefront.ViewState) handlers.PageData {
	logger := observability.FromContext(r.Context())
	theme, err := prefs.LoadTheme(r.Context(), v.Store)
	if err != nil {
		logger.Warn("load theme", zap.Error(err))
	}
	toasts, err := notify.JSON(notes.Items())
	if err != nil {
		logger.Warn("encode notifications", zap.Error(err))
		toasts = "[]"
	}
	brand := a.svc.Brand()
	data := handlers.PageData{
		Page:          page,
		Title:         brand,
		Brand:         brand,
		Lang:          "en",
		Analytics:     a.cfg.Analytics,
		Path:          r.URL.Path,
		Dev:           a.cfg.Dev,
		Theme:         theme,
		CSRFToken:     mw.CSRFToken(r),
		Notifications: template.JS(toasts),
		Search:        handlers.SearchForm{State: state},
		Filters:       handlers.BuildFilters(state),
		Footer:        handlers.BuildFooter(),
		Account:       storefront.Topics(storefront.GroupAccount),
		Settings:      storefront.Topics(storefront.GroupSettings),
		Social:        storefront.Topics(storefront.GroupSocial),
		Year:          time.Now().Year(),
	}
	base := baseURL(r)
	data.SEO.Title = brand + " | Vacation rentals, cabins, beach houses & more"
	data.SEO.Description = "Find unique places to stay with local hosts in " + format.Count(a.svc.Catalog().Len(), "destination", "destinations") + "."
	data.SEO.Canonical = base + r.URL.Path
	data.SEO.Robots = "index,follow"
	data.SEO.OG.SiteName = brand
	data.SEO.OG.Type = "website"
	data.SEO.OG.URL = data.SEO.Canonical
	data.SEO.OG.Title = data.SEO.Title
	data.SEO.OG.Description = data.SEO.Description
	data.SEO.JSONLD = []template.JS{template.JS(seo.JSON(seo.WebSite(brand, base+"/", "")))}
	if a.cfg.Dev {
		data.SEO.Robots = "noindex,nofollow"
	}
	return data
}

// lodgingJSONLD describes the rendered cards as a schema.org item list.
func (a *app) lodgingJSONLD(base string, cards []listing.Card) template.JS {
	items := make([]seo.Lodging, 0, len(cards))
	for _, c := range cards {
		p, ok := a.svc.Catalog().Get(c.ID)
		if !ok {
			continue
		}
		items = append(items, seo.Lodging{
			Name:     c.Title,
			URL:      base + c.DetailHref,
			Image:    base + c.Image,
			Locality: c.Location,
			Rating:   c.Rating,
			Reviews:  p.Reviews,
			Price:    p.Price,
		})
	}
	return template.JS(seo.JSON(seo.LodgingList(items)))
}

func detailJSONLD(base string, d listing.Detail) template.JS {
	img := ""
	if len(d.Images) > 0 {
		img = base + d.Images[0].Src
	}
	return template.JS(seo.JSON(seo.LodgingList([]seo.Lodging{{
		Name:     d.Title,
		URL:      base + listing.DetailPath(d.ID),
		Image:    img,
		Locality: d.Location,
		Rating:   d.Rating,
		Reviews:  d.Reviews,
		Price:    d.Breakdown.Nightly,
	}})))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
