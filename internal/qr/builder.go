// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package qr builds the two QR payload conventions the badge system
// carries: the signed verification URL scanned by the legacy
// "verify by badge" flow, and the pipe-delimited descriptive payload
// baked into the badge's printed QR image. Both are pure functions over
// their inputs (plus the wall clock for the descriptive variant).
package qr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"badgepress/internal/models"
)

// VerificationPath is the fixed route the verification URL points at.
const VerificationPath = "/verificar-cracha"

// Builder produces QR payloads and integrity signatures.
type Builder struct {
	secret []byte
	now    func() time.Time
}

// New returns a Builder. When secret is empty the builder falls back to
// the legacy name-derived key so signatures stay bit-compatible with
// codes already in the field; any non-empty secret switches signing to
// the server-held key.
func New(secret string) *Builder {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &Builder{secret: key, now: time.Now}
}

// WithClock overrides the wall clock. Used by tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Signature computes the hex HMAC-SHA256 signature for a display name.
//
// Legacy scheme: the key is sha256(name) — derived from the very value it
// protects, so anyone who knows the name can forge it. Kept only for wire
// compatibility with previously issued codes; configure a server secret
// to sign with a real key.
func (b *Builder) Signature(name string) string {
	key := b.secret
	if len(key) == 0 {
		sum := sha256.Sum256([]byte(name))
		key = sum[:]
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(name))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the one computed for name.
// A mismatch is an authorization failure at the HTTP layer, not an error.
func (b *Builder) Verify(name, signature string) bool {
	want := b.Signature(name)
	return hmac.Equal([]byte(want), []byte(signature))
}

// VerificationURL builds the URL encoded into verification QR codes.
// Subject ids and signatures are hex digests and integers, so no extra
// URL escaping is applied.
func (b *Builder) VerificationURL(subjectID, signature, domain, port string) string {
	return fmt.Sprintf("http://%s:%s%s?id=%s&assinatura=%s",
		domain, port, VerificationPath, subjectID, signature)
}

// BadgePayload builds the descriptive pipe-delimited payload printed on
// the badge itself: id, name, role, department and the issue date. This
// is independent of the verification-URL convention above.
func (b *Builder) BadgePayload(s models.BadgeSubject) string {
	return strings.Join([]string{
		"CRACHA",
		s.ID,
		s.Name,
		s.Role,
		s.Department,
		b.now().Format("2006-01-02"),
	}, "|")
}

// EncodePNG renders a payload as a QR PNG with medium error recovery.
func EncodePNG(payload string, sizePx int) ([]byte, error) {
	if sizePx <= 0 {
		sizePx = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, sizePx)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// EncodeBase64 renders a payload as a base64 PNG, the form the layout
// engine embeds into a badge subject.
func EncodeBase64(payload string, sizePx int) (string, error) {
	png, err := EncodePNG(payload, sizePx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// DataURI wraps PNG bytes for direct use in an <img> tag.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
