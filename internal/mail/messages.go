package mail

import (
	"fmt"
	"html"

	"github.com/aiopscouncil/council-backend/internal/models"
)

// AdminApplicationNotice is sent to the review distribution list when a new
// application lands.
func AdminApplicationNotice(app models.Application, recipient string) Message {
	orNotSpecified := func(s string) string {
		if s == "" {
			return "Not specified"
		}
		return html.EscapeString(s)
	}
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #2c3e50;">New Council Application</h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px;">
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Role:</strong> %s</p>
    <p><strong>Company:</strong> %s</p>
    <p><strong>Experience:</strong> %s</p>
    <h3>War Story:</h3>
    <p style="background: white; padding: 15px; border-left: 4px solid #3498db;">%s</p>
  </div>
  <p style="color: #7f8c8d; margin-top: 20px;">
    Reply to this email or visit the admin panel to review this application.
  </p>
</div>`,
		html.EscapeString(app.Name), html.EscapeString(app.Email),
		orNotSpecified(app.Role), orNotSpecified(app.Company),
		html.EscapeString(app.Experience), html.EscapeString(app.WarStory))

	return Message{
		To:      []string{recipient},
		Subject: fmt.Sprintf("[AI Ops Council] New Application: %s", app.Name),
		HTML:    body,
	}
}

// ApplicantConfirmation acknowledges a received application.
func ApplicantConfirmation(app models.Application) Message {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #2c3e50;">Thank You for Applying, %s!</h2>
  <p>We've received your application to join the AI Ops Council.</p>
  <p>Our members review applications weekly. If approved, you'll receive an invitation to complete your membership ($500/year) and gain access to:</p>
  <ul>
    <li>Private channels with top AI operators</li>
    <li>Exclusive war stories &amp; architecture reviews</li>
    <li>Early access to council-built tools</li>
    <li>Monthly office hours with Council Fellows</li>
  </ul>
  <p>We typically respond within 5-7 business days.</p>
  <p style="color: #7f8c8d; margin-top: 30px;">
    Best,<br>
    The AI Ops Council
  </p>
</div>`, html.EscapeString(app.Name))

	return Message{
		To:      []string{app.Email},
		Subject: "AI Ops Council - Application Received",
		HTML:    body,
	}
}

// Welcome is sent once checkout completes and the membership activates.
func Welcome(email string) Message {
	return Message{
		To:      []string{email},
		Subject: "Welcome to AI Ops Council!",
		HTML: `
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h1 style="color: #2c3e50;">Welcome to the AI Ops Council!</h1>
  <p>Your membership is now active. You're now part of an exclusive community of AI operators building the future.</p>

  <h2>Getting Started</h2>
  <ul>
    <li><strong>Discord:</strong> You'll receive a separate invite to our private Discord server</li>
    <li><strong>Office Hours:</strong> Join our monthly sessions with Council Fellows</li>
    <li><strong>ClawAPI Access:</strong> Get early access to our AI tools at <a href="https://dev.clawapi.io">dev.clawapi.io</a></li>
  </ul>

  <h2>Community Guidelines</h2>
  <ul>
    <li>100% Signal, 0% Noise</li>
    <li>Share real production experiences</li>
    <li>Help others solve hard problems</li>
    <li>No sales pitches or self-promotion</li>
  </ul>

  <p style="margin-top: 30px;">
    Questions? Reply to this email or reach out at <a href="mailto:contact@aiopscouncil.io">contact@aiopscouncil.io</a>
  </p>

  <p style="color: #7f8c8d;">
    Best,<br>
    The AI Ops Council
  </p>
</div>`,
	}
}

// PaymentFailed nudges a member whose renewal charge was declined.
func PaymentFailed(email string) Message {
	return Message{
		To:      []string{email},
		Subject: "AI Ops Council - Payment Failed",
		HTML: `
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2 style="color: #e74c3c;">Payment Failed</h2>
  <p>We couldn't process your AI Ops Council membership payment.</p>
  <p>Please update your payment method to continue your membership:</p>
  <p><a href="https://aiopscouncil.io/membership" style="background: #3498db; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Update Payment Method</a></p>
  <p style="color: #7f8c8d; margin-top: 30px;">
    If you have questions, contact us at <a href="mailto:contact@aiopscouncil.io">contact@aiopscouncil.io</a>
  </p>
</div>`,
	}
}
