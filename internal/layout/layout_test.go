// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"badgepress/internal/models"
	"badgepress/internal/qr"
)

// flatMeasurer charges a fixed width per rune, proportional to the font
// size, so truncation behavior is deterministic in tests.
type flatMeasurer struct{}

func (flatMeasurer) TextWidth(text, _ string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.5 * PtToMM
}

func testSubject(t *testing.T) models.BadgeSubject {
	t.Helper()
	b64, err := qr.EncodeBase64("CRACHA|7|Maria|Analista|TI|2026-08-28", 128)
	if err != nil {
		t.Fatalf("encode qr: %v", err)
	}
	return models.BadgeSubject{
		ID:           "7",
		Name:         "Maria Silva",
		Role:         "Analista",
		Department:   "TI",
		Organization: "Empresa Exemplo",
		QRImageB64:   b64,
		IssueDate:    time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   time.Date(2027, 8, 28, 0, 0, 0, 0, time.UTC),
	}
}

func cr80() models.Format {
	f := models.DefaultFormat()
	return f
}

func TestComposeParametricOrder(t *testing.T) {
	theme := models.DefaultTheme()
	ops := Compose(theme, cr80(), testSubject(t), flatMeasurer{})

	if len(ops) == 0 {
		t.Fatal("no ops produced")
	}
	if _, ok := ops[0].(FillRect); !ok {
		t.Errorf("first op = %T, want background FillRect", ops[0])
	}
	if _, ok := ops[1].(StrokeRect); !ok {
		t.Errorf("second op = %T, want border StrokeRect (ShowBorder default)", ops[1])
	}

	// The QR image must come after every text op so it occludes overflow.
	lastText, qrIdx := -1, -1
	for i, op := range ops {
		switch o := op.(type) {
		case Text:
			lastText = i
		case Image:
			if strings.HasPrefix(o.Ref, "qr:") {
				qrIdx = i
			}
		}
	}
	if qrIdx == -1 {
		t.Fatal("qr image op missing")
	}
	if qrIdx < lastText {
		t.Errorf("qr op at %d precedes text op at %d", qrIdx, lastText)
	}
}

func TestComposeGradientBackground(t *testing.T) {
	theme := models.DefaultTheme()
	theme.BackgroundKind = models.BackgroundGradient
	theme.BackgroundColor = "#FF0000"
	theme.GradientColor = "#0000FF"
	theme.Opacity = 0.7

	ops := Compose(theme, cr80(), testSubject(t), flatMeasurer{})

	top, ok := ops[0].(FillRect)
	if !ok {
		t.Fatalf("first op = %T, want FillRect", ops[0])
	}
	bottom, ok := ops[1].(FillRect)
	if !ok {
		t.Fatalf("second op = %T, want FillRect", ops[1])
	}

	w, h := cr80().CanvasSize()
	if top.H != h/2 || bottom.Y != h/2 || top.W != w {
		t.Errorf("gradient halves misplaced: top %+v bottom %+v", top, bottom)
	}
	if top.Color != (RGB{R: 255}) || bottom.Color != (RGB{B: 255}) {
		t.Errorf("gradient colors: top %+v bottom %+v", top.Color, bottom.Color)
	}
	if top.Alpha != 0.7 || bottom.Alpha != 0.7 {
		t.Errorf("gradient alpha: top %v bottom %v, want 0.7", top.Alpha, bottom.Alpha)
	}
}

func TestComposeNoBorderWhenDisabled(t *testing.T) {
	theme := models.DefaultTheme()
	theme.ShowBorder = false

	for _, op := range Compose(theme, cr80(), testSubject(t), flatMeasurer{}) {
		if _, ok := op.(StrokeRect); ok {
			t.Fatal("border drawn with ShowBorder=false")
		}
	}
}

func TestComposeQRDecodeFailurePlaceholder(t *testing.T) {
	subj := testSubject(t)
	subj.QRImageB64 = "%%%not-base64%%%"

	ops := Compose(models.DefaultTheme(), cr80(), subj, flatMeasurer{})

	var gotBox, gotLabel bool
	for _, op := range ops {
		switch o := op.(type) {
		case Image:
			if strings.HasPrefix(o.Ref, "qr:") {
				t.Fatal("qr image emitted for undecodable payload")
			}
		case Text:
			if o.Value == "QR" {
				gotLabel = true
			}
		}
	}
	// The placeholder box is the last StrokeRect (after the card border).
	for _, op := range ops[2:] {
		if _, ok := op.(StrokeRect); ok {
			gotBox = true
		}
	}
	if !gotBox || !gotLabel {
		t.Errorf("placeholder incomplete: box=%v label=%v", gotBox, gotLabel)
	}
}

func TestComposeValidBase64ButNotPNG(t *testing.T) {
	subj := testSubject(t)
	subj.QRImageB64 = base64.StdEncoding.EncodeToString([]byte("plain text, not an image"))

	ops := Compose(models.DefaultTheme(), cr80(), subj, flatMeasurer{})

	var gotLabel bool
	for _, op := range ops {
		if txt, ok := op.(Text); ok && txt.Value == "QR" {
			gotLabel = true
		}
	}
	if !gotLabel {
		t.Error("placeholder label missing for non-PNG payload")
	}
}

func TestComposeMissingLogoSkipped(t *testing.T) {
	theme := models.DefaultTheme()
	theme.ShowLogo = true
	subj := testSubject(t)
	subj.LogoPath = "/nonexistent/logo.png"

	ops := Compose(theme, cr80(), subj, flatMeasurer{})

	for _, op := range ops {
		if img, ok := op.(Image); ok && strings.HasPrefix(img.Ref, "logo:") {
			t.Fatal("logo op emitted for missing file")
		}
	}
}

func TestComposeTruncatesLongName(t *testing.T) {
	subj := testSubject(t)
	subj.Name = strings.Repeat("Maximiliano ", 8)

	theme := models.DefaultTheme()
	m := flatMeasurer{}
	ops := Compose(theme, cr80(), subj, m)

	var name string
	for _, op := range ops {
		if txt, ok := op.(Text); ok && strings.HasPrefix(subj.Name, strings.TrimSuffix(txt.Value, ellipsis)) && txt.Align == AlignLeft {
			name = txt.Value
			break
		}
	}
	if name == "" {
		t.Fatal("name op not found")
	}
	if !strings.HasSuffix(name, ellipsis) {
		t.Fatalf("long name not truncated: %q", name)
	}

	w, _ := cr80().CanvasSize()
	avail := w - theme.MarginLeft - theme.MarginRight - theme.QRSizeMM - qrGap
	if got := m.TextWidth(name, theme.NameFont.Family, theme.NameFont.Size); got > avail {
		t.Errorf("truncated name width %v exceeds available %v", got, avail)
	}
}

func TestComposeDesignDocumentOverrides(t *testing.T) {
	theme := models.DefaultTheme()
	theme.Design = &models.DesignDocument{
		Elements: []models.Element{
			models.BackgroundElement{Color: "#102030"},
			models.TextElement{X: 5, Y: 5, Field: "nome", FontSize: 11},
			models.TextElement{X: 5, Y: 12, Content: "Visitante"},
			models.QRElement{X: 60, Y: 20, Size: 20},
		},
	}

	subj := testSubject(t)
	ops := Compose(theme, cr80(), subj, flatMeasurer{})

	bg, ok := ops[0].(FillRect)
	if !ok || bg.Color != (RGB{R: 0x10, G: 0x20, B: 0x30}) {
		t.Fatalf("design background not honored: %+v", ops[0])
	}

	var sawName, sawLiteral, sawQR, sawOrg bool
	for _, op := range ops {
		switch o := op.(type) {
		case Text:
			switch o.Value {
			case subj.Name:
				sawName = true
			case "Visitante":
				sawLiteral = true
			case "Empresa Exemplo":
				sawOrg = true
			}
		case Image:
			if strings.HasPrefix(o.Ref, "qr:") {
				sawQR = true
				if o.X != 60 || o.Y != 20 || o.W != 20 {
					t.Errorf("qr element misplaced: %+v", o)
				}
			}
		}
	}
	if !sawName || !sawLiteral || !sawQR {
		t.Errorf("design elements missing: name=%v literal=%v qr=%v", sawName, sawLiteral, sawQR)
	}
	if sawOrg {
		t.Error("parametric title rendered despite design document")
	}
}

func TestQRAnchorPositions(t *testing.T) {
	theme := models.DefaultTheme()
	w, _ := cr80().CanvasSize()

	theme.QRPosition = models.QRLeft
	if got := qrAnchorX(theme, w); got != theme.MarginLeft {
		t.Errorf("left anchor = %v, want %v", got, theme.MarginLeft)
	}
	theme.QRPosition = models.QRCenter
	if got := qrAnchorX(theme, w); got != (w-theme.QRSizeMM)/2 {
		t.Errorf("center anchor = %v", got)
	}
	theme.QRPosition = models.QRRight
	if got := qrAnchorX(theme, w); got != w-theme.MarginRight-theme.QRSizeMM {
		t.Errorf("right anchor = %v", got)
	}
}
