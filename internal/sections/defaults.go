package sections

// Section keys used by the bundled default tables. Hosts may register
// additional sections; keys are flat, stable strings.
const (
	KeyAboutPage      = "about_page"
	KeyContactPage    = "contact_page"
	KeyFooter         = "footer"
	KeyNavbarMenu     = "navbar_menu"
	KeyNavigation     = "navigation"
	KeySchoolSection  = "school_section"
	KeyLeadership     = "leadership"
	KeyAnnualFunction = "annual_function"
	KeyGridSection    = "grid_section"
	KeyInfrastructure = "infrastructure"
	KeyHomeBanners    = "home_banners"
	KeyPrincipalPage  = "principal_page"
	KeyFacilitiesPage = "facilities_page"
	KeyRulesPage      = "rules_page"
	KeyAffiliation    = "affiliation_page"
	KeyMissionVision  = "mission_vision"
	KeyNewsEvents     = "news_events"
	KeyDossier        = "dossier"
)

// DefaultRegistry returns a registry seeded with the fallback tables for the
// stock site sections. Hosts can re-register any key to override the copy.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(KeyAboutPage, map[string]any{
		"schoolName":  "Adarsh Senior Secondary Public School, Nahra",
		"schoolImage": "/assets/banner1.jpg",
		"aboutTitle":  "A Tradition of Excellence Since 1995",
		"aboutText": []any{
			"Since 1995 the school has offered a safe and nurturing environment for students from preschool to senior secondary level.",
			"Located in rural Haryana, the school is co-educational, English-medium for classes Nursery to XII and affiliated with C.B.S.E., New Delhi.",
		},
		"chairman": map[string]any{
			"name":        "Dr. T.P. Singh",
			"designation": "Chairman",
			"credentials": "Educationist, Mathematician & Researcher",
			"image":       "/assets/chairman.jpg",
			"message":     "Education is the passport to the future; tomorrow belongs to those who prepare for it today.",
			"welcomeNote": "A warm welcome to our new principal, staff team and students.",
		},
	})

	r.Register(KeyContactPage, map[string]any{
		"title":    "Get In Touch",
		"address":  "Village Nahra, Barara, District Ambala (Hr)",
		"phone":    "79882-12029",
		"email":    "info.adarshschool@gmail.com",
		"mapEmbed": "",
		"hours":    "Mon-Sat, 8:00 AM - 2:00 PM",
	})

	r.Register(KeyFooter, map[string]any{
		"description":  "Co-educational, English-medium school for classes Nursery to XII, affiliated with C.B.S.E., New Delhi.",
		"addressLine1": "Village - Nahra",
		"addressLine2": ", Barara District Ambala(Hr)",
		"phone1":       "79882-12029",
		"phone2":       "9996985239",
		"email":        "info.adarshschool@gmail.com",
	})

	r.Register(KeyNavbarMenu, map[string]any{
		"menu": []any{
			map[string]any{"title": "Home", "path": "/"},
			map[string]any{"title": "About", "path": "/about"},
			map[string]any{"title": "Facilities", "path": "/facilities"},
			map[string]any{"title": "Activities", "path": "/activities"},
			map[string]any{"title": "Contact", "path": "/contact"},
		},
	})

	r.Register(KeyNavigation, map[string]any{
		"activities": []any{
			map[string]any{"name": "Sports", "path": "/activities/sports"},
			map[string]any{"name": "Annual Function", "path": "/activities/annual-function"},
		},
	})

	r.Register(KeySchoolSection, map[string]any{
		"heading":    "Welcome to Adarsh School",
		"subheading": "Shaping young minds since 1995",
		"body": []any{
			"The school strives to provide first-class education so every student achieves excellence.",
		},
		"image": "/assets/school.jpg",
	})

	r.Register(KeyLeadership, map[string]any{
		"cards": []any{
			map[string]any{
				"name":        "Dr. T.P. Singh",
				"designation": "Chairman",
				"image":       "/assets/chairman.jpg",
				"message":     "Quality education prepares students to face the challenges of the future.",
			},
			map[string]any{
				"name":        "Ms. Anju Batra",
				"designation": "Principal",
				"image":       "/assets/principal.jpg",
				"message":     "Discipline and curiosity go hand in hand.",
			},
		},
	})

	r.Register(KeyAnnualFunction, map[string]any{
		"title":       "Annual Function",
		"description": "A celebration of the year's achievements in academics, sports and culture.",
		"images":      []any{},
	})

	r.Register(KeyGridSection, map[string]any{
		"stats": []any{
			map[string]any{"label": "Students", "value": "1200+"},
			map[string]any{"label": "Faculty", "value": "60+"},
			map[string]any{"label": "Years", "value": "30"},
		},
	})

	r.Register(KeyInfrastructure, map[string]any{
		"title": "Our Infrastructure",
		"items": []any{
			map[string]any{"name": "Science Labs", "image": "/assets/labs.jpg"},
			map[string]any{"name": "Library", "image": "/assets/library.jpg"},
			map[string]any{"name": "Sports Ground", "image": "/assets/ground.jpg"},
		},
	})

	r.Register(KeyHomeBanners, map[string]any{
		"images": []any{"/assets/banner1.jpg"},
	})

	r.Register(KeyPrincipalPage, map[string]any{
		"name":        "Ms. Anju Batra",
		"designation": "Principal",
		"image":       "/assets/principal.jpg",
		"message": []any{
			"It gives me immense pleasure to lead this institution.",
			"We remain committed to delivering positive results for every child.",
		},
	})

	r.Register(KeyFacilitiesPage, map[string]any{
		"title": "Facilities",
		"facilities": []any{
			map[string]any{"name": "Transport", "description": "Bus routes cover the surrounding villages.", "image": "/assets/transport.jpg"},
			map[string]any{"name": "Smart Classes", "description": "Digital boards in every senior classroom.", "image": "/assets/smart.jpg"},
		},
	})

	r.Register(KeyRulesPage, map[string]any{
		"title": "Rules & Policies",
		"rules": []any{
			"Students must be punctual and attend school in proper uniform.",
			"Leave applications must be submitted in advance.",
		},
	})

	r.Register(KeyMissionVision, map[string]any{
		"sectionTag": "Our Core Values",
		"mission": map[string]any{
			"title": "Our Mission",
			"text": []any{
				"The school prepares students to understand, contribute to, and succeed in a rapidly changing society.",
				"We ensure students develop both the skills a sound education provides and the competencies essential for leadership.",
			},
		},
		"vision": map[string]any{
			"title": "Our Vision",
			"intro": "Our vision aligns with shifts in the global economy, society, and environment:",
			"points": []any{
				"Creativity, innovation, and a desire to challenge the status quo in what and how we teach.",
				"Social engagement, helping students become critically engaged citizens contributing to the public good.",
			},
		},
		"images": map[string]any{
			"img1": "/assets/assembly.jpg",
			"img2": "/assets/2.jpg",
		},
	})

	r.Register(KeyNewsEvents, map[string]any{
		"sectionTitle": "Latest Events & News",
		"subtitle":     "Glimpses of activities and achievements at Adarsh School.",
		"events": []any{
			map[string]any{
				"image":       "/assets/sm1.jpg",
				"date":        "Dec 02, 2025",
				"title":       "Annual Sports Day 2025",
				"description": "A display of strength, stamina, and sportsmanship across track and field events.",
			},
			map[string]any{
				"image":       "/assets/sm2.jpg",
				"date":        "Nov 28, 2025",
				"title":       "Science Exhibition Winners",
				"description": "Students secured 1st place at the state level exhibition with a model on renewable energy.",
			},
			map[string]any{
				"image":       "/assets/sm6.jpg",
				"date":        "Sep 05, 2025",
				"title":       "Teachers' Day Tribute",
				"description": "Students organized a special assembly for the staff.",
			},
		},
	})

	r.Register(KeyDossier, map[string]any{
		"items": []any{
			map[string]any{"name": "Affiliation", "path": "/Affiliation-Copy.pdf"},
			map[string]any{"name": "Society", "path": "/Society.pdf"},
			map[string]any{"name": "Fire Safety Certificate", "path": "/Fire-Safety-Certificate.pdf"},
			map[string]any{"name": "Building Safety", "path": "/Building-Safety.pdf"},
			map[string]any{"name": "Academic Calendar", "path": "/Academic-calender.pdf"},
			map[string]any{"name": "Three Year Result", "path": "/Three-year-result.pdf"},
		},
	})

	r.Register(KeyAffiliation, map[string]any{
		"board":            "C.B.S.E., New Delhi",
		"affiliationNo":    "530123",
		"status":           "Senior Secondary",
		"documents":        []any{},
		"mandatoryLinks":   []any{},
		"disclosureNotice": "Mandatory public disclosure documents are available on request.",
	})

	return r
}
