package views

import (
	"context"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/folio-dev/folio/internal/content"
)

const (
	htmxScript   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSScript = "https://unpkg.com/htmx-ext-ws@2.0.2"
)

func page(ctx context.Context, m *markup, c *content.Content, surfaceID string) {
	m.raw(`<!DOCTYPE html><html lang="en"><head>`)
	m.raw(`<meta charset="utf-8">`)
	m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	m.element("title", c.Name)
	m.raw(`<link rel="stylesheet" href="/static/site.css">`)
	m.raw(`<script src="` + htmxScript + `" defer></script>`)
	m.raw(`<script src="` + htmxWSScript + `" defer></script>`)
	m.raw(`</head><body>`)

	m.raw(`<nav class="nav"><div class="nav-inner">`)
	m.element("span", c.Name, "class", "logo")
	m.raw(`<div class="nav-links">`)
	m.raw(`<a href="#projects">Projects</a><a href="#skills">Skills</a><a href="#contact">Contact</a>`)
	m.raw(`</div></div></nav>`)

	m.raw(`<main>`)
	hero(ctx, m, c)
	projects(m, c.Projects)
	skills(m, c.Skills)
	contactSection(m, c.Contact, surfaceID)
	m.raw(`</main>`)

	m.raw(`<div`)
	m.attr("id", ModalID)
	m.raw(`></div>`)

	m.raw(`<footer>&copy; `)
	m.text(strconv.Itoa(time.Now().Year()) + " " + c.Name + ". All rights reserved.")
	m.raw(`</footer></body></html>`)
}

func hero(ctx context.Context, m *markup, c *content.Content) {
	m.raw(`<section class="hero">`)
	m.element("h1", c.Tagline)

	// AboutHTML is sanitized when the content is parsed.
	m.raw(`<div class="about">`)
	m.component(ctx, templ.Raw(c.AboutHTML))
	m.raw(`</div>`)

	if len(c.Links) > 0 {
		m.raw(`<div class="links">`)
		for _, l := range c.Links {
			m.raw(`<a`)
			m.href("href", l.URL)
			if l.External() {
				m.raw(` target="_blank" rel="noopener noreferrer"`)
			}
			m.raw(`>`)
			m.text(l.Label)
			m.raw(`</a>`)
		}
		m.raw(`</div>`)
	}
	m.raw(`<a class="button" href="#projects">View My Work</a>`)
	m.raw(`</section>`)
}

func projects(m *markup, list []content.Project) {
	m.raw(`<section id="projects" class="projects"><h2>Projects</h2><div class="cards">`)
	for _, p := range list {
		m.raw(`<article class="card">`)
		m.element("h3", p.Title)
		m.element("p", p.Description)
		if p.Link != "" {
			m.raw(`<a`)
			m.href("href", p.Link)
			m.raw(` target="_blank" rel="noopener noreferrer">View Project</a>`)
		}
		m.raw(`</article>`)
	}
	m.raw(`</div></section>`)
}

func skills(m *markup, list []string) {
	m.raw(`<section id="skills" class="skills"><h2>Skills</h2><ul>`)
	for _, s := range list {
		m.element("li", s)
	}
	m.raw(`</ul></section>`)
}

func contactSection(m *markup, c content.Contact, surfaceID string) {
	m.raw(`<section id="contact" class="contact">`)
	m.element("h2", c.Heading)
	if c.Blurb != "" {
		m.element("p", c.Blurb)
	}
	m.element("button", c.Button,
		"class", "button",
		"hx-post", "/contact/"+surfaceID+"/open",
		"hx-target", "#"+ModalID,
		"hx-swap", "innerHTML",
	)
	m.raw(`</section>`)
}
