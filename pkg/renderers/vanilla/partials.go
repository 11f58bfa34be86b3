package vanilla

// Partial keys a theme may override through its template map.
const (
	PartialHero       = "sections.hero"
	PartialAbout      = "sections.about"
	PartialExperience = "sections.experience"
	PartialProjects   = "sections.projects"
	PartialContact    = "sections.contact"
	PartialFooter     = "sections.footer"
	PartialField      = "contact.field"
)

// DefaultPartials maps partial keys to the embedded templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialHero:       "templates/sections/hero.tmpl",
		PartialAbout:      "templates/sections/about.tmpl",
		PartialExperience: "templates/sections/experience.tmpl",
		PartialProjects:   "templates/sections/projects.tmpl",
		PartialContact:    "templates/sections/contact.tmpl",
		PartialFooter:     "templates/sections/footer.tmpl",
		PartialField:      "templates/contact/field.tmpl",
	}
}

// templateKey converts "sections.hero" to "sections_hero" so templates can
// address it as a plain attribute.
func templateKey(partial string) string {
	out := []byte(partial)
	for i, c := range out {
		if c == '.' || c == '-' {
			out[i] = '_'
		}
	}
	return string(out)
}
