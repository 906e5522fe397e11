package mail

import (
	"fmt"
	"html"
	"mime"

	"go.uber.org/zap"
)

// ContractSignatureMail is the payload for a signature-request notification.
type ContractSignatureMail struct {
	To           string
	ContractName string
	Link         string
	SenderName   string // optional display name of the requesting party
}

// InquiryResponseMail is the payload for an inquiry-response notification.
type InquiryResponseMail struct {
	To              string
	InquirySubject  string
	InquiryContent  string
	ResponseMessage string
}

// headerValue makes user-controlled text safe to place in a mail header.
// RFC 2047 encoding covers non-ASCII, and control characters (CR/LF
// included) also force encoding, so embedded line breaks cannot terminate
// the header and smuggle in new ones.
func headerValue(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}

// fromHeader builds a From header value with a display name. An encoded-word
// display name is emitted bare; plain ASCII is quoted.
func fromHeader(name, addr string) string {
	encoded := headerValue(name)
	if encoded != name {
		return fmt.Sprintf("%s <%s>", encoded, addr)
	}
	return fmt.Sprintf("%q <%s>", name, addr)
}

// Subject and body composition is split from dispatch so the rendered
// message can be asserted without a relay.

func (p ContractSignatureMail) subject(product string) string {
	return headerValue(fmt.Sprintf("[%s] Signature requested: %s", product, p.ContractName))
}

func (p ContractSignatureMail) body() string {
	name := html.EscapeString(p.ContractName)
	return fmt.Sprintf(`
<p>Hello,</p>
<p>A signature request for the contract <strong>%s</strong> has arrived.</p>
<p>Use the button below to review the contract and sign it.</p>
<p><a href="%s" style="display:inline-block;padding:12px 20px;background:#4F46E5;color:#fff;border-radius:8px;text-decoration:none;">Review contract</a></p>
<p>If the link does not open, copy the following address into your browser.<br />%s</p>
`, name, p.Link, p.Link)
}

func (p InquiryResponseMail) subject(product string) string {
	return headerValue(fmt.Sprintf("[%s] Re: %s", product, p.InquirySubject))
}

func (p InquiryResponseMail) body() string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4F46E5;">Your inquiry has been answered</h2>
  <p>Hello,</p>
  <p>We have reviewed your inquiry and here is our response:</p>
  <div style="margin: 20px 0; padding: 16px; background: #F5F5F7; border-radius: 8px; white-space: pre-wrap;">%s</div>
  <p style="color: #666; font-size: 14px; margin-top: 30px; border-top: 1px solid #eee; padding-top: 16px;">
    Your original inquiry:<br />
    <strong>%s</strong><br />
    <span style="white-space: pre-wrap;">%s</span>
  </p>
</div>
`, html.EscapeString(p.ResponseMessage), html.EscapeString(p.InquirySubject), html.EscapeString(p.InquiryContent))
}

// SendContractSignatureMail notifies a signer that a contract awaits their
// signature. The From header carries the requesting party's display name
// when present.
func (m *Mailer) SendContractSignatureMail(p ContractSignatureMail) error {
	name := m.cfg.FromName
	if p.SenderName != "" {
		name = p.SenderName + " (" + m.cfg.FromName + ")"
	}
	if err := m.send(fromHeader(name, m.cfg.From()), p.To, p.subject(m.cfg.FromName), p.body()); err != nil {
		return err
	}
	m.logger.Info("signature request mail sent", zap.String("to", p.To), zap.String("contract", p.ContractName))
	return nil
}

// SendInquiryResponseMail delivers an admin's answer to the inquiry owner,
// quoting the original inquiry beneath the response.
func (m *Mailer) SendInquiryResponseMail(p InquiryResponseMail) error {
	from := fromHeader(m.cfg.FromName, m.cfg.From())
	if err := m.send(from, p.To, p.subject(m.cfg.FromName), p.body()); err != nil {
		return err
	}
	m.logger.Info("inquiry response mail sent", zap.String("to", p.To))
	return nil
}
