package cli

const signedTemplate = `
=== Signed Message ===

Scheme:     {{.Scheme}}
Public key: {{.PublicKey}}
Signature:  {{.Signature}}
{{- if .Checked }}
Verified:   {{if .Valid}}yes{{else}}NO{{end}}
{{- end}}
`

const healthTemplate = `Status:  {{.Status}}
Version: {{.Version}}
Scheme:  {{.Scheme}}
`
