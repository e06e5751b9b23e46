package content

// Hard-coded defaults written back on first read of an empty path and used by
// clients as the fallback while a subscription is pending.

func DefaultHeroText() HeroText {
	return HeroText{
		Title:    "Ashgray Ink",
		Subtitle: "Experience world-class tattoo art in Toronto with internationally recognized artists.",
	}
}

func DefaultAboutText() AboutText {
	return AboutText{
		Title:       "About the Studio",
		Description: "Ashgray Ink is a private tattoo studio in downtown Toronto. Every piece is drawn custom for the client, from fine-line minimalism to large-scale traditional work.",
		ImageURL:    "https://picsum.photos/seed/studio/800/600",
	}
}

func DefaultArtists() []Artist {
	return []Artist{
		{
			ID:        "1",
			Name:      "TK_ASHGRAYINK",
			Specialty: "Traditional & Neo-Traditional",
			Bio:       "Specializing in bold traditional and neo-traditional designs with a modern twist.",
			ImageURL:  "https://picsum.photos/seed/tk/400/500",
			ImageHint: "tattoo artist working",
		},
		{
			ID:        "2",
			Name:      "OLIVIA",
			Specialty: "Fine-line & Realism & Watercolor",
			Bio:       "Master of fine-line and realism, creating delicate and detailed masterpieces.",
			ImageURL:  "https://picsum.photos/seed/olivia/400/500",
			ImageHint: "person in cafe",
		},
		{
			ID:        "3",
			Name:      "NOAH",
			Specialty: "Geometric & Blackwork & Tribal",
			Bio:       "Expert in geometric and blackwork, focusing on symmetry and abstract patterns.",
			ImageURL:  "https://picsum.photos/seed/noah/400/500",
			ImageHint: "winding road mountain",
		},
		{
			ID:        "4",
			Name:      "EMMA",
			Specialty: "Watercolor & New School & Japanese",
			Bio:       "Loves vibrant colors and expressive art, focusing on watercolor and new school styles.",
			ImageURL:  "https://picsum.photos/seed/emma/400/500",
			ImageHint: "spiderweb foggy field",
		},
	}
}

func DefaultGallery() []GalleryImage {
	return []GalleryImage{
		{ID: "1", Src: "https://picsum.photos/seed/g1/600/600", Alt: "Traditional rose on a forearm", Hint: "rose tattoo", Category: "Traditional"},
		{ID: "2", Src: "https://picsum.photos/seed/g2/600/600", Alt: "Minimalist wave on a wrist", Hint: "small wave tattoo", Category: "Minimalist"},
		{ID: "3", Src: "https://picsum.photos/seed/g3/600/600", Alt: "Watercolor hummingbird on a shoulder", Hint: "colorful bird tattoo", Category: "Watercolor"},
		{ID: "4", Src: "https://picsum.photos/seed/g4/600/600", Alt: "Geometric wolf on a thigh", Hint: "geometric animal tattoo", Category: "Geometric"},
		{ID: "5", Src: "https://picsum.photos/seed/g5/600/600", Alt: "Blackwork mandala on a back", Hint: "mandala tattoo", Category: "Blackwork"},
		{ID: "6", Src: "https://picsum.photos/seed/g6/600/600", Alt: "Black and grey realism tiger", Hint: "tiger portrait tattoo", Category: "Realism"},
	}
}

func DefaultFAQ() []FaqItem {
	return []FaqItem{
		{ID: "1", Question: "How do I book an appointment?", Answer: "Submit the appointment form with a description of your idea and our team will reach out within 2 business days."},
		{ID: "2", Question: "Do you take walk-ins?", Answer: "The studio is appointment-only. All work is custom drawn, so we need lead time before your session."},
		{ID: "3", Question: "How much will my tattoo cost?", Answer: "Pricing depends on size, placement, and detail. Include a budget range in your request and the artist will confirm a quote before booking."},
		{ID: "4", Question: "How should I prepare for my session?", Answer: "Sleep well, eat beforehand, stay hydrated, and avoid alcohol for 24 hours before your appointment."},
	}
}

func DefaultLocationInfo() LocationInfo {
	return LocationInfo{
		Title:          "Visit the Studio",
		Subtitle:       "Downtown Toronto, steps from Queen West",
		Address:        "123 Queen St W, Toronto, ON",
		Hours:          "Tue-Sat 11:00-19:00, closed Sun-Mon",
		ContactEmail:   "hello@ashgrayink.com",
		BookingEmail:   "booking@ashgrayink.com",
		Phone:          "+1 (416) 555-0188",
		DirectionsNote: "Street parking on Queen St W; Green P lot one block north.",
		TransitNote:    "501 Queen streetcar stops at the corner; Osgoode station is a 5 minute walk.",
		ImageURL:       "https://picsum.photos/seed/location/800/600",
		ImageHint:      "studio storefront",
	}
}

func DefaultFooterInfo() FooterInfo {
	return FooterInfo{
		CopyrightName:   "Ashgray Ink",
		InstagramLabel:  "Instagram",
		ContactLabel:    "Contact",
		PrivacyLabel:    "Privacy Policy",
		LegalDisclaimer: "All designs are the property of Ashgray Ink and their artists. Do not reproduce without permission.",
	}
}
