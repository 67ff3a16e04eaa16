// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// CongregationRequestData holds data for the reviewer notification sent
// when a new congregation request is filed.
type CongregationRequestData struct {
	CongName   string
	CongNumber int
	Username   string
}

// BuildCongregationRequest creates the email sent to the reviewer channel
// when a congregation request awaits manual approval.
func BuildCongregationRequest(data CongregationRequestData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("New congregation request: %s (%d)", data.CongName, data.CongNumber),
		TextBody: buildRequestText(data),
		HTMLBody: buildRequestHTML(data),
	}
}

func buildRequestText(data CongregationRequestData) string {
	var buf bytes.Buffer
	buf.WriteString("A new congregation account has been requested.\n\n")
	buf.WriteString(fmt.Sprintf("Congregation: %s\n", data.CongName))
	buf.WriteString(fmt.Sprintf("Number: %d\n", data.CongNumber))
	buf.WriteString(fmt.Sprintf("Requested by: %s\n\n", data.Username))
	buf.WriteString("Review and approve the request in the administration console.\n")
	return buf.String()
}

func buildRequestHTML(data CongregationRequestData) string {
	tmpl := template.Must(template.New("request").Parse(requestHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// AccountCreatedData holds data for the confirmation sent to a requestor
// whose congregation account was created.
type AccountCreatedData struct {
	Username   string
	CongName   string
	CongNumber int
}

// BuildAccountCreated creates the email confirming a congregation account.
func BuildAccountCreated(data AccountCreatedData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Congregation account created: %s", data.CongName),
		TextBody: buildCreatedText(data),
		HTMLBody: buildCreatedHTML(data),
	}
}

func buildCreatedText(data AccountCreatedData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hello %s,\n\n", data.Username))
	buf.WriteString(fmt.Sprintf("The account for congregation %s (%d) has been created.\n\n", data.CongName, data.CongNumber))
	buf.WriteString("You can now sign in and start managing your congregation.\n")
	return buf.String()
}

func buildCreatedHTML(data AccountCreatedData) string {
	tmpl := template.Must(template.New("created").Parse(createdHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const requestHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #374151;">
  <h2 style="margin: 0 0 16px; color: #4f46e5;">New congregation request</h2>
  <p>A new congregation account has been requested.</p>
  <table role="presentation" cellpadding="4">
    <tr><td><strong>Congregation</strong></td><td>{{.CongName}}</td></tr>
    <tr><td><strong>Number</strong></td><td>{{.CongNumber}}</td></tr>
    <tr><td><strong>Requested by</strong></td><td>{{.Username}}</td></tr>
  </table>
  <p>Review and approve the request in the administration console.</p>
</body>
</html>`

const createdHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #374151;">
  <h2 style="margin: 0 0 16px; color: #4f46e5;">Congregation account created</h2>
  <p>Hello {{.Username}},</p>
  <p>The account for congregation <strong>{{.CongName}} ({{.CongNumber}})</strong> has been created.</p>
  <p>You can now sign in and start managing your congregation.</p>
</body>
</html>`
