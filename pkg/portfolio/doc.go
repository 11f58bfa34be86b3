// Package portfolio holds the page content rendered around the contact form:
// hero banner, about blurb with skills, experience timeline, projects,
// contact details, social links and footer. Content is loaded from YAML or
// JSON; the embedded default is the pt-BR site. Long-form text fields accept
// markdown and are sanitised before they reach a template.
package portfolio
