package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInquiryResponseComposition(t *testing.T) {
	p := InquiryResponseMail{
		To:              "user@example.com",
		InquirySubject:  "Signature stuck",
		InquiryContent:  "The <signer> never got it.",
		ResponseMessage: "Use the new link & retry.",
	}

	assert.Equal(t, "[insign] Re: Signature stuck", p.subject("insign"))

	body := p.body()
	assert.Contains(t, body, "Use the new link &amp; retry.")
	assert.Contains(t, body, "Signature stuck")
	assert.Contains(t, body, "The &lt;signer&gt; never got it.")
	assert.NotContains(t, body, "<signer>")
}

func TestContractSignatureComposition(t *testing.T) {
	p := ContractSignatureMail{
		To:           "signer@example.com",
		ContractName: "NDA <v2>",
		Link:         "https://app.example.com/contracts/view/abc123",
	}

	assert.Equal(t, "[insign] Signature requested: NDA <v2>", p.subject("insign"))

	body := p.body()
	assert.Contains(t, body, "NDA &lt;v2&gt;")
	assert.Contains(t, body, p.Link)
	assert.NotContains(t, body, "<v2>")
}

func TestSubjectNeutralizesLineBreaks(t *testing.T) {
	p := InquiryResponseMail{InquirySubject: "help\r\nBcc: spam@example.com"}

	subject := p.subject("insign")
	assert.NotContains(t, subject, "\r")
	assert.NotContains(t, subject, "\n")
	// a single encoded header value, not a second header
	assert.False(t, strings.Contains(subject, "Bcc: spam@example.com"))

	c := ContractSignatureMail{ContractName: "NDA\r\nBcc: spam@example.com"}
	cs := c.subject("insign")
	assert.NotContains(t, cs, "\r")
	assert.NotContains(t, cs, "\n")
}

func TestFromHeader(t *testing.T) {
	assert.Equal(t, `"insign" <no-reply@example.com>`, fromHeader("insign", "no-reply@example.com"))

	// sender display names are caller-supplied; line breaks must not survive
	crafted := fromHeader("Mallory\r\nBcc: spam@example.com", "no-reply@example.com")
	assert.NotContains(t, crafted, "\r")
	assert.NotContains(t, crafted, "\n")
	assert.Contains(t, crafted, "<no-reply@example.com>")

	// non-ASCII names come out RFC 2047 encoded, unquoted
	encoded := fromHeader("인사인", "no-reply@example.com")
	assert.True(t, strings.HasPrefix(encoded, "=?utf-8?q?"))
}
