package content

// Section document paths. One readable/writable path per public site section.
const (
	PathHero     = "site_content/hero_section"
	PathAbout    = "site_content/about_section"
	PathArtists  = "site_content/artists_section"
	PathGallery  = "site_content/gallery_section"
	PathFAQ      = "site_content/faq_section"
	PathLocation = "site_content/location_section"
	PathFooter   = "site_content/footer_section"
)

// SectionNames maps the public API section name to its document path.
var SectionNames = map[string]string{
	"hero":     PathHero,
	"about":    PathAbout,
	"artists":  PathArtists,
	"gallery":  PathGallery,
	"faq":      PathFAQ,
	"location": PathLocation,
	"footer":   PathFooter,
}

// HeroText is the singleton headline block at the top of the site.
type HeroText struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// AboutText is the singleton studio introduction.
type AboutText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Artist is a member of the ordered artist roster.
type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl"`
	ImageHint string `json:"imageHint"`
}

// GalleryImage is a member of the ordered gallery collection. Category is a
// free-text tag matched case-insensitively against GalleryFilters.
type GalleryImage struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Hint     string `json:"hint"`
	Category string `json:"category"`
}

// FaqItem is a member of the ordered FAQ collection.
type FaqItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LocationInfo is the singleton studio location block.
type LocationInfo struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Address        string `json:"address"`
	Hours          string `json:"hours"`
	ContactEmail   string `json:"contactEmail"`
	BookingEmail   string `json:"bookingEmail"`
	Phone          string `json:"phone"`
	DirectionsNote string `json:"directionsNote"`
	TransitNote    string `json:"transitNote"`
	ImageURL       string `json:"imageUrl"`
	ImageHint      string `json:"imageHint"`
}

// FooterInfo is the singleton footer block.
type FooterInfo struct {
	CopyrightName   string `json:"copyrightName"`
	InstagramLabel  string `json:"instagramLabel"`
	ContactLabel    string `json:"contactLabel"`
	PrivacyLabel    string `json:"privacyLabel"`
	LegalDisclaimer string `json:"legalDisclaimer"`
}

// GalleryFilters is the fixed filter set the public gallery offers. Image
// categories are matched against these case-insensitively.
var GalleryFilters = []string{
	"All",
	"Traditional",
	"Minimalist",
	"Watercolor",
	"Geometric",
	"Blackwork",
	"Realism",
}
