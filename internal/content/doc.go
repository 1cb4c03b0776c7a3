// Package content loads the portfolio text shown on the home page: owner
// name, tagline, about text, links, projects and skills.
//
// Content is read from a YAML file. The about text is markdown, rendered
// once at load time and sanitized. A built-in default is used when no file
// is configured. Store.Watch reloads the file when it changes on disk and
// keeps the previous content if the new version does not parse.
package content
