package listing

import (
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/format"
)

const (
	// StayNights is the fixed stay length the booking summary is quoted for.
	StayNights = 5
	// CleaningFee is charged once per stay, in dollars.
	CleaningFee = 50
	// ServiceFeePercent is applied to the stay subtotal.
	ServiceFeePercent = 12
)

// PriceBreakdown is the quoted cost of a StayNights stay, in whole dollars.
type PriceBreakdown struct {
	Nightly     int
	Nights      int
	Subtotal    int
	CleaningFee int
	ServiceFee  int
	Total       int
}

// PriceFor quotes a stay at the given nightly price.
func PriceFor(nightly int) PriceBreakdown {
	subtotal := nightly * StayNights
	service := ServiceFee(subtotal)
	return PriceBreakdown{
		Nightly:     nightly,
		Nights:      StayNights,
		Subtotal:    subtotal,
		CleaningFee: CleaningFee,
		ServiceFee:  service,
		Total:       subtotal + CleaningFee + service,
	}
}

// ServiceFee is ServiceFeePercent of subtotal rounded half-up to a whole dollar.
func ServiceFee(subtotal int) int {
	return (subtotal*ServiceFeePercent + 50) / 100
}

// SummaryLine is one row of the booking summary.
type SummaryLine struct {
	Label  string
	Amount string
	Total  bool
}

// Lines lays the breakdown out as the booking card shows it.
func (b PriceBreakdown) Lines() []SummaryLine {
	return []SummaryLine{
		{Label: fmt.Sprintf("%s x %d nights", format.Money(b.Nightly), b.Nights), Amount: format.Money(b.Subtotal)},
		{Label: "Cleaning fee", Amount: format.Money(b.CleaningFee)},
		{Label: "Service fee", Amount: format.Money(b.ServiceFee)},
		{Label: "Total", Amount: format.Money(b.Total), Total: true},
	}
}

// GuestOption is one entry of the party size selector.
type GuestOption struct {
	Value int
	Label string
}

// GuestOptions lists party sizes 1..max.
func GuestOptions(max int) []GuestOption {
	if max < 1 {
		return nil
	}
	out := make([]GuestOption, 0, max)
	for n := 1; n <= max; n++ {
		out = append(out, GuestOption{Value: n, Label: format.Count(n, "guest", "guests")})
	}
	return out
}

// Image is a gallery picture.
type Image struct {
	Src  string
	Alt  string
	Main bool
}

// Feature is a highlighted trait of the stay.
type Feature struct {
	Icon  string
	Title string
	Text  string
}

// Detail is the property detail view.
type Detail struct {
	ID          int
	Title       string
	Rating      string
	Reviews     int
	Location    string
	Heading     string
	Host        string
	HostLabel   string
	Images      []Image
	Features    []Feature
	Description template.HTML
	Amenities   []string
	Price       string
	Breakdown   PriceBreakdown
	Summary     []SummaryLine
	Guests      []GuestOption
	MaxGuests   int
	ReserveHref string
}

var titleCaser = cases.Title(language.English)

// gallery pictures shared by every listing after its own primary image
var sharedGallery = []Image{
	{Src: "/assets/images/interior.jpg", Alt: "Interior"},
	{Src: "/assets/images/bedroom.jpg", Alt: "Bedroom"},
	{Src: "/assets/images/bathroom.jpg", Alt: "Bathroom"},
	{Src: "/assets/images/kitchen.jpg", Alt: "Kitchen"},
}

// RenderDetails projects one record into its detail view.
func RenderDetails(p catalog.Property) Detail {
	hostLabel := p.BadgeLabel()
	if !p.HasBadge() {
		hostLabel = "Host"
	}
	images := make([]Image, 0, len(sharedGallery)+1)
	images = append(images, Image{Src: ImagePath(p.ID), Alt: p.Title, Main: true})
	images = append(images, sharedGallery...)

	kind := string(p.Type)
	amenities := make([]string, len(p.Amenities))
	copy(amenities, p.Amenities)
	breakdown := PriceFor(p.Price)

	return Detail{
		ID:        p.ID,
		Title:     p.Title,
		Rating:    format.Rating(p.Rating),
		Reviews:   p.Reviews,
		Location:  p.Location,
		Heading:   TypeLabel(p.Type) + " hosted by " + p.Host,
		Host:      p.Host,
		HostLabel: hostLabel,
		Images:    images,
		Features: []Feature{
			{Icon: "home", Title: "Entire " + kind, Text: "You'll have the " + kind + " to yourself"},
			{Icon: "lock", Title: "Enhanced Clean", Text: "This host committed to an enhanced cleaning protocol"},
			{Icon: "check", Title: "Great check-in experience", Text: "100% of recent guests gave the check-in process a 5-star rating"},
		},
		Description: DescriptionHTML(p.Description),
		Amenities:   amenities,
		Price:       format.Money(p.Price),
		Breakdown:   breakdown,
		Summary:     breakdown.Lines(),
		Guests:      GuestOptions(p.Guests),
		MaxGuests:   p.Guests,
		ReserveHref: DetailPath(p.ID) + "/reserve",
	}
}

// TypeLabel capitalizes a dwelling type for headings.
func TypeLabel(t catalog.PropertyType) string {
	return titleCaser.String(string(t))
}

// ReviewsLabel renders the review count.
func (d Detail) ReviewsLabel() string {
	return strconv.Itoa(d.Reviews) + " " + format.Plural(d.Reviews, "review", "reviews")
}
