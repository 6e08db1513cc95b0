package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/resendlabs/resend-go"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

var ErrEmailNotConfigured = errors.New("email transport not configured")

// Message is one outgoing HTML email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Transport delivers a composed message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

type EmailService struct {
	appContext.DefaultService

	transport Transport
	appName   string
	baseURL   string
}

const EMAIL_SVC = "email_svc"

// NewEmailServiceFromEnv picks Resend when RESEND_API_KEY is set, SMTP when
// SMTP_HOST is set, and no transport otherwise.
func NewEmailServiceFromEnv() *EmailService {
	svc := &EmailService{
		appName: getEnv("APP_NAME", "Ven Shop"),
		baseURL: strings.TrimRight(getEnv("APP_ORIGIN", "http://localhost:3000"), "/"),
	}

	from := getEnv("FROM_EMAIL", "shop@localhost")
	fromName := getEnv("FROM_NAME", svc.appName)

	switch {
	case os.Getenv("RESEND_API_KEY") != "":
		svc.transport = &resendTransport{
			client: resend.NewClient(os.Getenv("RESEND_API_KEY")),
			from:   fmt.Sprintf("%s <%s>", fromName, from),
		}
	case os.Getenv("SMTP_HOST") != "":
		svc.transport = &smtpTransport{
			host:     os.Getenv("SMTP_HOST"),
			port:     getEnv("SMTP_PORT", "587"),
			username: os.Getenv("SMTP_USERNAME"),
			password: os.Getenv("SMTP_PASSWORD"),
			from:     from,
			fromName: fromName,
		}
	}

	return svc
}

// NewEmailService builds the service around an explicit transport.
func NewEmailService(transport Transport, appName, baseURL string) *EmailService {
	return &EmailService{
		transport: transport,
		appName:   appName,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *appContext.Context) error {
	configured := NewEmailServiceFromEnv()
	svc.transport = configured.transport
	svc.appName = configured.appName
	svc.baseURL = configured.baseURL
	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	if svc.transport == nil {
		log.Warn("No email transport configured, reminders and notifications will not be sent")
		return nil
	}
	log.WithField("transport", svc.transport.Name()).Info("Email transport ready")
	return nil
}

func (svc *EmailService) Enabled() bool {
	return svc.transport != nil
}

type reminderLine struct {
	Title    string
	Quantity int
	Price    string
}

type reminderData struct {
	AppName string
	CartURL string
	Lines   []reminderLine
	Total   string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`
<h2 style="margin:0 0 16px">You left something behind</h2>
<p>Your cart at {{.AppName}} is still waiting for you:</p>
<table role="presentation" cellpadding="6" cellspacing="0" style="width:100%;border-collapse:collapse">
{{- range .Lines}}
  <tr><td>{{.Title}}</td><td align="right">&times; {{.Quantity}}</td><td align="right">{{.Price}}</td></tr>
{{- end}}
  <tr><td colspan="2"><strong>Total</strong></td><td align="right"><strong>{{.Total}}</strong></td></tr>
</table>
<p><a href="{{.CartURL}}" style="display:inline-block;padding:12px 24px;background:#1f2937;color:#fff;text-decoration:none;border-radius:4px">Return to your cart</a></p>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2 style="margin:0 0 16px">Thanks for subscribing</h2>
<p>You will hear from {{.AppName}} when new pieces come out of the kiln.</p>
<p><a href="{{.ShopURL}}">Visit the shop</a></p>
`))

var layoutTemplate = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family:Helvetica,Arial,sans-serif;line-height:1.5;color:#333;background:#f4f5f6;margin:0;padding:24px">
<div style="max-width:600px;margin:0 auto;background:#fff;padding:24px;border-radius:6px">
{{.Content}}
</div>
<p style="text-align:center;color:#888;font-size:12px">&copy; {{.AppName}}</p>
</body>
</html>`))

func (svc *EmailService) render(tmpl *template.Template, title string, data interface{}) (string, error) {
	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return svc.wrap(title, template.HTML(content.String()))
}

func (svc *EmailService) wrap(title string, content template.HTML) (string, error) {
	var page bytes.Buffer
	err := layoutTemplate.Execute(&page, struct {
		Title   string
		AppName string
		Content template.HTML
	}{title, svc.appName, content})
	if err != nil {
		return "", fmt.Errorf("failed to execute layout template: %w", err)
	}
	return page.String(), nil
}

// SendCartReminder mails the abandoned cart summary to to.
func (svc *EmailService) SendCartReminder(ctx context.Context, to string, cart *model.AbandonedCart) error {
	if svc.transport == nil {
		return ErrEmailNotConfigured
	}

	data := reminderData{
		AppName: svc.appName,
		CartURL: svc.baseURL + "/cart",
		Total:   formatMoney(cart.TotalAmount),
	}
	for _, item := range cart.Items {
		data.Lines = append(data.Lines, reminderLine{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    formatMoney(item.Price * float64(item.Quantity)),
		})
	}

	subject := "Your cart is waiting - " + svc.appName
	body, err := svc.render(reminderTemplate, subject, data)
	if err != nil {
		return err
	}

	return svc.send(ctx, Message{To: []string{to}, Subject: subject, HTML: body})
}

func (svc *EmailService) SendNewsletterWelcome(ctx context.Context, to string) error {
	if svc.transport == nil {
		return ErrEmailNotConfigured
	}

	subject := "Welcome to the " + svc.appName + " newsletter"
	body, err := svc.render(welcomeTemplate, subject, struct {
		AppName string
		ShopURL string
	}{svc.appName, svc.baseURL})
	if err != nil {
		return err
	}

	return svc.send(ctx, Message{To: []string{to}, Subject: subject, HTML: body})
}

// SendContactNotification forwards a sanitized contact form to the shop inbox.
// Every user-supplied value is escaped before it is placed in the body.
func (svc *EmailService) SendContactNotification(ctx context.Context, inbox string, req dto.ContactRequest) error {
	if svc.transport == nil {
		return ErrEmailNotConfigured
	}
	if inbox == "" {
		return fmt.Errorf("contact inbox: %w", ErrEmailNotConfigured)
	}

	var b strings.Builder
	b.WriteString(`<h2 style="margin:0 0 16px">New contact message</h2><table role="presentation" cellpadding="4">`)
	fmt.Fprintf(&b, "<tr><td><strong>Name</strong></td><td>%s</td></tr>", shared.EscapeHTML(req.Name))
	fmt.Fprintf(&b, "<tr><td><strong>Email</strong></td><td>%s</td></tr>", shared.EscapeHTML(req.Email))
	if req.Phone != "" {
		fmt.Fprintf(&b, "<tr><td><strong>Phone</strong></td><td>%s</td></tr>", shared.EscapeHTML(req.Phone))
	}
	if req.Subject != "" {
		fmt.Fprintf(&b, "<tr><td><strong>Subject</strong></td><td>%s</td></tr>", shared.EscapeHTML(req.Subject))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, `<p style="white-space:pre-wrap">%s</p>`, shared.EscapeHTML(req.Message))

	subject := "Contact form: " + req.Name
	if req.Subject != "" {
		subject = "Contact form: " + req.Subject
	}

	body, err := svc.wrap(subject, template.HTML(b.String()))
	if err != nil {
		return err
	}

	return svc.send(ctx, Message{To: []string{inbox}, ReplyTo: req.Email, Subject: subject, HTML: body})
}

func (svc *EmailService) send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := svc.transport.Send(ctx, msg); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"transport": svc.transport.Name(),
			"subject":   msg.Subject,
		}).Error("Failed to send email")
		return err
	}

	log.WithFields(log.Fields{
		"transport": svc.transport.Name(),
		"subject":   msg.Subject,
	}).Debug("Email sent")
	return nil
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

type resendTransport struct {
	client *resend.Client
	from   string
}

func (t *resendTransport) Name() string { return "resend" }

func (t *resendTransport) Send(_ context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    t.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	if _, err := t.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	return nil
}

type smtpTransport struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

func (t *smtpTransport) Name() string { return "smtp" }

func (t *smtpTransport) Send(_ context.Context, msg Message) error {
	auth := smtp.PlainAuth("", t.username, t.password, t.host)

	var headers strings.Builder
	fmt.Fprintf(&headers, "From: %s <%s>\r\n", t.fromName, t.from)
	fmt.Fprintf(&headers, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", msg.Subject)
	headers.WriteString("MIME-Version: 1.0\r\n")
	headers.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")

	body := []byte(headers.String() + msg.HTML)
	if err := smtp.SendMail(t.host+":"+t.port, auth, t.from, msg.To, body); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}
