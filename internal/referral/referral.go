// Package referral builds referral codes, links and share messages.
package referral

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const codeLength = 8

// Referral is a generated code with its share targets.
type Referral struct {
	Code         string `json:"code"`
	Link         string `json:"link"`
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`
	SMSBody      string `json:"smsBody"`
	MailtoURL    string `json:"mailtoUrl"`
	SMSURL       string `json:"smsUrl"`
}

// Generator issues referral codes under a base URL.
type Generator struct {
	baseURL    string
	subject    string
	fixedCodes map[string]string
	newID      func() string
}

func NewGenerator(baseURL, subject string, fixedCodes map[string]string) *Generator {
	return &Generator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		subject:    subject,
		fixedCodes: fixedCodes,
		newID:      uuid.NewString,
	}
}

// Generate returns the fixed code for businessSlug when one is configured,
// otherwise a fresh random code.
func (g *Generator) Generate(businessSlug string) Referral {
	code, ok := g.fixedCodes[businessSlug]
	if !ok || code == "" {
		code = RandomCode(g.newID())
	}
	return g.Build(code)
}

// Build fills the link and share messages for code.
func (g *Generator) Build(code string) Referral {
	link := g.baseURL + "/signup?ref=" + url.QueryEscape(code)
	body := fmt.Sprintf(`Hi there,

I'd like to invite you to join Lunoa, a business verification platform that helps build trust between companies.

Use my referral link to get started: %s

With your referral code %s, you'll get priority verification processing.

Best regards`, link, code)
	sms := fmt.Sprintf("Join Lunoa for business verification! Use my link: %s with code %s for priority processing.", link, code)

	return Referral{
		Code:         code,
		Link:         link,
		EmailSubject: g.subject,
		EmailBody:    body,
		SMSBody:      sms,
		MailtoURL:    "mailto:?subject=" + escape(g.subject) + "&body=" + escape(body),
		SMSURL:       "sms:?body=" + escape(sms),
	}
}

// RandomCode takes the first eight alphanumerics of id, upper-cased.
func RandomCode(id string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(id) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == codeLength {
				break
			}
		}
	}
	return b.String()
}

// escape encodes like a browser's encodeURIComponent, with spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
