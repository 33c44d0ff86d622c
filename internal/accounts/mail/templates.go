package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

const (
	activationSubject = "Activate your FlowMerce account"
	resetSubject      = "Reset your FlowMerce password"
)

var (
	activationTmpl = template.Must(template.New("activation").Parse(`<h2>Welcome to FlowMerce!</h2>
<p>Please click the link below to activate your account:</p>
<a href="{{.Link}}">Activate Account</a>
<p>This link expires in {{.Expiry}}.</p>
<p>If you did not register, please ignore this email.</p>
`))

	resetTmpl = template.Must(template.New("reset").Parse(`<h2>Password Reset Request</h2>
<p>Click the link below to reset your password:</p>
<a href="{{.Link}}">Reset Password</a>
<p>This link expires in {{.Expiry}}.</p>
<p>If you did not request this, please ignore this email.</p>
`))
)

// Composer renders account emails with links rooted at BaseURL.
type Composer struct {
	BaseURL string

	// ActivationExpiry and ResetExpiry are the human readable lifetimes
	// printed in the emails, e.g. "24 hours".
	ActivationExpiry string
	ResetExpiry      string
}

// Activation renders the account activation email.
func (c Composer) Activation(to, token string) (Message, error) {
	link := c.link("/api/auth/activate", token)
	body, err := render(activationTmpl, link, orDefault(c.ActivationExpiry, "24 hours"))
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: activationSubject, HTML: body, Link: link}, nil
}

// PasswordReset renders the password reset email.
func (c Composer) PasswordReset(to, token string) (Message, error) {
	link := c.link("/api/auth/reset-password", token)
	body, err := render(resetTmpl, link, orDefault(c.ResetExpiry, "1 hour"))
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: resetSubject, HTML: body, Link: link}, nil
}

func (c Composer) link(path, token string) string {
	return strings.TrimRight(c.BaseURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func render(t *template.Template, link, expiry string) (string, error) {
	var buf bytes.Buffer
	err := t.Execute(&buf, struct {
		Link   template.URL
		Expiry string
	}{template.URL(link), expiry})
	if err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// HumanDuration formats a token lifetime the way the emails print it, in
// hours and minutes, e.g. "24 hours", "30 minutes" or "1 hour 30 minutes".
// Anything under a minute prints as "1 minute".
func HumanDuration(d time.Duration) string {
	d = max(d.Round(time.Minute), time.Minute)
	hours, minutes := int(d/time.Hour), int(d%time.Hour/time.Minute)

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
