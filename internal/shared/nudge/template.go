// Package nudge holds the reminder email templates shared by the synchronous
// sender and the broadcast consumer.
package nudge

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrUnknownKind indicates a nudge kind with no template.
var ErrUnknownKind = errors.New("nudge: unknown kind")

type definition struct {
	subject string
	body    string
}

var definitions = map[string]definition{
	"incomplete_profile": {
		subject: "Finish setting up your partner profile",
		body: `<p>Hi {{.Name}},</p>
<p>Your partner profile is almost there. Complete the remaining fields on
<a href="{{.DashboardURL}}/profile">your dashboard</a> so we can activate your account.</p>
<p>&mdash; The Partner Team</p>`,
	},
	"missing_payout": {
		subject: "Add your payout details to receive commissions",
		body: `<p>Hi {{.Name}},</p>
<p>You have commissions waiting, but we have no payout destination on file.
Add one on <a href="{{.DashboardURL}}/payout">your dashboard</a> to get paid.</p>
<p>&mdash; The Partner Team</p>`,
	},
	"dormant_account": {
		subject: "We miss you on the partner dashboard",
		body: `<p>Hi {{.Name}},</p>
<p>Your account has been quiet lately. Log in to
<a href="{{.DashboardURL}}">your dashboard</a> to see what changed while you were away.</p>
<p>&mdash; The Partner Team</p>`,
	},
}

// Data feeds a nudge template.
type Data struct {
	// Name is the recipient display name; a blank name renders as "there".
	Name string
	// DashboardURL is the public web root, from config.
	DashboardURL string
}

// Render produces the subject and HTML body for a nudge kind.
func Render(kind string, data Data) (subject, body string, err error) {
	def, ok := definitions[kind]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	if strings.TrimSpace(data.Name) == "" {
		data.Name = "there"
	}

	tpl, err := template.New(kind).Parse(def.body)
	if err != nil {
		return "", "", err
	}

	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", "", err
	}

	return def.subject, sb.String(), nil
}
