package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template base names.
const (
	ResetPassword = "reset_password"
)

// ResetPasswordData feeds the reset_password templates.
type ResetPasswordData struct {
	Username    string
	ResetURL    string
	ExpiresIn   string
	CompanyName string
	SupportURL  string
}

// NewResetPasswordData fills the template payload, formatting the TTL the
// way the email shows it ("30 minutes", "1 hour").
func NewResetPasswordData(username, resetURL, companyName, supportURL string, ttl time.Duration) ResetPasswordData {
	expires := fmt.Sprintf("%d minutes", int(ttl.Minutes()))
	if ttl >= time.Hour {
		expires = fmt.Sprintf("%d hour(s)", int(ttl.Hours()))
	}
	return ResetPasswordData{
		Username:    username,
		ResetURL:    resetURL,
		ExpiresIn:   expires,
		CompanyName: companyName,
		SupportURL:  supportURL,
	}
}

// Render loads and renders subject, text, and html templates for the given
// base name. Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

// renderFile loads and renders a single template file from the embedded FS.
// isHTML selects html/template (escaping) over text/template.
func renderFile(filename string, isHTML bool, data any) (string, error) {
	var buf bytes.Buffer
	if isHTML {
		tpl, err := htmpl.ParseFS(FS, filename)
		if err != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, err)
		}
		if err := tpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("exec %q: %w", filename, err)
		}
		return buf.String(), nil
	}
	tpl, err := texttpl.ParseFS(FS, filename)
	if err != nil {
		return "", fmt.Errorf("parse text %q: %w", filename, err)
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}
