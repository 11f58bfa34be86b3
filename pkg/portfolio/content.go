package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

// Content is the full page content.
type Content struct {
	Owner      string            `yaml:"owner" json:"owner"`
	Title      string            `yaml:"title" json:"title"`
	Hero       Hero              `yaml:"hero" json:"hero"`
	About      About             `yaml:"about" json:"about"`
	Experience ExperienceSection `yaml:"experience" json:"experience"`
	Projects   ProjectsSection   `yaml:"projects" json:"projects"`
	Contact    ContactSection    `yaml:"contact" json:"contact"`
	Social     []Link            `yaml:"social" json:"social"`
	Footer     Footer            `yaml:"footer" json:"footer"`
}

// Heading is the eyebrow/title/subtitle block each section opens with.
// Highlight is the gradient part appended to Title.
type Heading struct {
	Eyebrow   string `yaml:"eyebrow" json:"eyebrow"`
	Title     string `yaml:"title" json:"title"`
	Highlight string `yaml:"highlight" json:"highlight"`
	Suffix    string `yaml:"suffix" json:"suffix,omitempty"`
	Subtitle  string `yaml:"subtitle" json:"subtitle,omitempty"`
}

// Link is an anchor with an optional built-in icon name.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
	Icon  string `yaml:"icon" json:"icon,omitempty"`
}

// External reports whether the link leaves the page.
func (l Link) External() bool {
	return strings.HasPrefix(l.Href, "http://") || strings.HasPrefix(l.Href, "https://")
}

type Hero struct {
	Badge    string `yaml:"badge" json:"badge"`
	Greeting string `yaml:"greeting" json:"greeting"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Actions  []Link `yaml:"actions" json:"actions"`
	Links    []Link `yaml:"links" json:"links"`
}

type About struct {
	Heading Heading `yaml:"heading" json:"heading"`
	// Body is markdown.
	Body   string  `yaml:"body" json:"body"`
	Skills []Skill `yaml:"skills" json:"skills"`
}

type Skill struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type ExperienceSection struct {
	Heading Heading      `yaml:"heading" json:"heading"`
	Items   []Experience `yaml:"items" json:"items"`
}

type Experience struct {
	Role         string   `yaml:"role" json:"role"`
	Company      string   `yaml:"company" json:"company"`
	Period       string   `yaml:"period" json:"period"`
	Description  string   `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

type ProjectsSection struct {
	Heading    Heading   `yaml:"heading" json:"heading"`
	OtherTitle string    `yaml:"otherTitle" json:"otherTitle"`
	Items      []Project `yaml:"items" json:"items"`
}

// Featured returns the featured projects in declaration order.
func (s ProjectsSection) Featured() []Project {
	return s.filter(true)
}

// Other returns the non-featured projects in declaration order.
func (s ProjectsSection) Other() []Project {
	return s.filter(false)
}

func (s ProjectsSection) filter(featured bool) []Project {
	var out []Project
	for _, project := range s.Items {
		if project.Featured == featured {
			out = append(out, project)
		}
	}
	return out
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	DemoURL     string   `yaml:"demoUrl" json:"demoUrl,omitempty"`
	GithubURL   string   `yaml:"githubUrl" json:"githubUrl,omitempty"`
	Featured    bool     `yaml:"featured" json:"featured"`
}

type ContactSection struct {
	Heading     Heading       `yaml:"heading" json:"heading"`
	Info        []ContactInfo `yaml:"info" json:"info"`
	CV          Link          `yaml:"cv" json:"cv"`
	SocialTitle string        `yaml:"socialTitle" json:"socialTitle"`
	SubmitLabel string        `yaml:"submitLabel" json:"submitLabel"`
	// PendingLabel replaces SubmitLabel while a submission is in flight.
	PendingLabel string `yaml:"pendingLabel" json:"pendingLabel"`
}

// ContactInfo is a labelled contact detail; Href is optional.
type ContactInfo struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Href  string `yaml:"href" json:"href,omitempty"`
}

// Footer lines may reference {year} and {owner}.
type Footer struct {
	Copyright string `yaml:"copyright" json:"copyright"`
	Credit    string `yaml:"credit" json:"credit"`
}

var errOwnerMissing = errors.New("portfolio: owner is required")

// Validate checks the content is renderable.
func (c Content) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return errOwnerMissing
	}
	for i, item := range c.Experience.Items {
		if strings.TrimSpace(item.Role) == "" {
			return fmt.Errorf("portfolio: experience %d: role is required", i)
		}
	}
	for i, project := range c.Projects.Items {
		if strings.TrimSpace(project.Title) == "" {
			return fmt.Errorf("portfolio: project %d: title is required", i)
		}
	}
	for _, link := range append(append([]Link(nil), c.Social...), c.Hero.Links...) {
		if link.Icon != "" && !HasIcon(link.Icon) {
			return fmt.Errorf("portfolio: link %q: unknown icon %q", link.Label, link.Icon)
		}
	}
	return nil
}
