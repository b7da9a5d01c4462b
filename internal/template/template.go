// Package template expands {{variable}} placeholders in output file names
// and hook commands.
package template

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// DefaultOutputName names the output file after the profile.
const DefaultOutputName = "{{slug}}{{ext}}"

// DefaultProfile is used when no profile answer is given.
const DefaultProfile = "default"

// Variables holds the data to be injected into template placeholders.
type Variables struct {
	Profile string // Profile answer as entered
	Output  string // Path of the written file
	Format  string // Output format (yaml, toml)
	Ext     string // File extension including the dot
}

// Slug returns the profile as a file-name-safe token.
func (v Variables) Slug() string {
	if s := slug.Make(v.Profile); s != "" {
		return s
	}
	return DefaultProfile
}

// Render replaces {{variable}} placeholders in template with actual values.
// Supports the following variables:
// - {{profile}} - Profile answer
// - {{slug}} - Profile slug, "default" when empty
// - {{output}} - Output path
// - {{format}} - Output format
// - {{ext}} - Output file extension
//
// Unknown placeholders are left as they are.
func Render(template string, vars Variables) string {
	return strings.NewReplacer(
		"{{profile}}", vars.Profile,
		"{{slug}}", vars.Slug(),
		"{{output}}", vars.Output,
		"{{format}}", vars.Format,
		"{{ext}}", vars.Ext,
	).Replace(template)
}

// FileName renders a file name template. The result must be a bare name.
func FileName(template string, vars Variables) (string, error) {
	if template == "" {
		template = DefaultOutputName
	}
	name := Render(template, vars)
	switch {
	case strings.Contains(name, "{{"):
		return "", fmt.Errorf("output name %q has an unknown placeholder", template)
	case name == "" || name == "." || name == "..":
		return "", fmt.Errorf("output name %q renders to an empty name", template)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("output name %q must not contain a path separator", name)
	}
	return name, nil
}
