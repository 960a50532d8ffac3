// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// html.go renders the "preview before print" document. It approximates
// the PDF output with plain HTML/CSS and embeds the QR and logo as data
// URIs; it is not required to pixel-match the printed badge.

package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"

	"badgepress/internal/models"
)

var previewTmpl = template.Must(template.New("preview").Parse(previewHTML))

// previewData is the field set substituted into the preview template.
type previewData struct {
	Name         string
	Role         string
	Department   string
	Organization string
	IssueDate    string
	ExpiryDate   string

	WidthMM  float64
	HeightMM float64

	TextColor     string
	PrimaryColor  string
	BorderCSS     template.CSS
	BackgroundCSS template.CSS

	TitleFont models.FontSpec
	NameFont  models.FontSpec

	QRDataURI   template.URL
	QRSizeMM    float64
	LogoDataURI template.URL
	LogoSizeMM  float64
}

// RenderHTML produces the HTML preview for one badge.
func RenderHTML(theme models.Theme, format models.Format, subj models.BadgeSubject) (string, error) {
	theme.Normalize()
	w, h := format.CanvasSize()

	data := previewData{
		Name:          models.FieldOrNA(subj.Name),
		Role:          models.FieldOrNA(subj.Role),
		Department:    models.FieldOrNA(subj.Department),
		Organization:  models.FieldOrNA(subj.Organization),
		IssueDate:     models.DateOrNA(subj.IssueDate),
		ExpiryDate:    models.DateOrNA(subj.ExpiryDate),
		WidthMM:       w,
		HeightMM:      h,
		TextColor:     theme.TextColor,
		PrimaryColor:  theme.PrimaryColor,
		BackgroundCSS: backgroundCSS(theme),
		TitleFont:     theme.TitleFont,
		NameFont:      theme.NameFont,
		QRSizeMM:      theme.QRSizeMM,
		LogoSizeMM:    theme.LogoSizeMM,
	}

	if theme.ShowBorder {
		data.BorderCSS = template.CSS(fmt.Sprintf("border: 1px solid %s;", safeColor(theme.BorderColor)))
	}

	if subj.QRImageB64 != "" {
		if raw, err := base64.StdEncoding.DecodeString(subj.QRImageB64); err == nil {
			data.QRDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
		} else {
			slog.Warn("preview qr undecodable, omitting", "subject", subj.ID, "error", err)
		}
	}

	if theme.ShowLogo && subj.LogoPath != "" {
		if raw, err := os.ReadFile(subj.LogoPath); err == nil {
			if png, err := normalizePNG(raw); err == nil {
				data.LogoDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
			}
		} else {
			slog.Warn("preview logo unavailable, omitting", "path", subj.LogoPath, "error", err)
		}
	}

	var sb strings.Builder
	if err := previewTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return sb.String(), nil
}

// backgroundCSS translates the theme background into a CSS declaration.
// Unlike the PDF path, CSS has a real gradient primitive, so the preview
// uses it directly.
func backgroundCSS(t models.Theme) template.CSS {
	switch t.BackgroundKind {
	case models.BackgroundGradient:
		return template.CSS(fmt.Sprintf("background: linear-gradient(%s, %s); opacity: %.2f;",
			safeColor(t.BackgroundColor), safeColor(t.GradientColor), t.Opacity))
	case models.BackgroundImage:
		if t.BackgroundImageURL != "" {
			return template.CSS(fmt.Sprintf("background-image: url('%s'); background-size: cover;",
				template.URLQueryEscaper(t.BackgroundImageURL)))
		}
		fallthrough
	default:
		return template.CSS(fmt.Sprintf("background-color: %s; opacity: %.2f;",
			safeColor(t.BackgroundColor), t.Opacity))
	}
}

// safeColor keeps only values that look like hex colors; anything else
// falls back to black so malformed rows cannot inject CSS.
func safeColor(s string) string {
	if len(s) != 7 || s[0] != '#' {
		return "#000000"
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "#000000"
		}
	}
	return s
}

const previewHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Pré-visualização do crachá — {{.Name}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; background: #e5e5e5; display: flex; justify-content: center; padding: 24px; }
  .cracha {
    position: relative;
    width: {{.WidthMM}}mm;
    height: {{.HeightMM}}mm;
    {{.BackgroundCSS}}
    {{.BorderCSS}}
    border-radius: 2mm;
    box-shadow: 0 2px 8px rgba(0,0,0,.25);
    overflow: hidden;
    color: {{.TextColor}};
  }
  .titulo { text-align: center; margin-top: 2mm; font-size: {{.TitleFont.Size}}pt; color: {{.PrimaryColor}}; font-weight: bold; }
  .campos { margin: 2mm 0 0 4mm; max-width: 60%; }
  .campos div { white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
  .nome { font-size: {{.NameFont.Size}}pt; font-weight: bold; }
  .qr { position: absolute; top: 3mm; right: 3mm; width: {{.QRSizeMM}}mm; height: {{.QRSizeMM}}mm; }
  .logo { position: absolute; top: 2mm; left: 2mm; width: {{.LogoSizeMM}}mm; }
  .datas { position: absolute; bottom: 1.5mm; left: 3mm; right: 3mm; display: flex; justify-content: space-between; font-size: 6pt; }
</style>
</head>
<body>
  <div class="cracha">
    {{if .LogoDataURI}}<img class="logo" src="{{.LogoDataURI}}" alt="logo">{{end}}
    <div class="titulo">{{.Organization}}</div>
    <div class="campos">
      <div class="nome">{{.Name}}</div>
      <div>{{.Role}}</div>
      <div>{{.Department}}</div>
    </div>
    {{if .QRDataURI}}<img class="qr" src="{{.QRDataURI}}" alt="QR">{{end}}
    <div class="datas">
      <span>Emissão: {{.IssueDate}}</span>
      <span>Validade: {{.ExpiryDate}}</span>
    </div>
  </div>
</body>
</html>
`
