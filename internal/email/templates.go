package email

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

// TemplateData feeds both the HTML and plain-text confirmation bodies.
type TemplateData struct {
	OrderID  string
	FullName string
	Amount   float64
	SentAt   string
	OrderURL string
	IsFree   bool
}

const confirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 24px;">
	<div style="max-width: 560px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
		<h2 style="color: #1a1a2e; margin-top: 0;">
			{{if .IsFree}}Your free ticket is confirmed 🎟{{else}}Thanks for your order 🎟{{end}}
		</h2>
		<p style="font-size: 15px; color: #444;">Hi {{.FullName}},</p>
		{{if .IsFree}}
		<p style="font-size: 15px; color: #444;">
			Your order <strong>{{.OrderID}}</strong> is complete. No payment is required for this ticket.
		</p>
		{{else}}
		<p style="font-size: 15px; color: #444;">
			We received your order <strong>{{.OrderID}}</strong>. Please complete the payment
			of <strong>{{printf "%.2f" .Amount}}</strong> to secure your ticket.
		</p>
		{{end}}
		<div style="text-align: center; margin: 28px 0;">
			<a href="{{.OrderURL}}" style="background-color: #FF6600; color: #ffffff; text-decoration: none; padding: 12px 28px; border-radius: 6px; font-size: 15px;">
				View your order
			</a>
		</div>
		<p style="font-size: 13px; color: #888;">Sent at {{.SentAt}}. If you did not place this order, you can ignore this email.</p>
	</div>
</body>
</html>`

const confirmationText = `Hi {{.FullName}},

{{if .IsFree}}Your order {{.OrderID}} is complete. No payment is required for this ticket.
{{else}}We received your order {{.OrderID}}. Please complete the payment of {{printf "%.2f" .Amount}} to secure your ticket.
{{end}}
View your order: {{.OrderURL}}

Sent at {{.SentAt}}. If you did not place this order, you can ignore this email.
`

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.New("confirmation_html").Parse(confirmationHTML))
	textTemplate = texttemplate.Must(texttemplate.New("confirmation_text").Parse(confirmationText))
)
