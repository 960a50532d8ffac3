// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package qr

import (
	"strings"
	"testing"
	"time"

	"badgepress/internal/models"
)

func TestSignatureLegacyDerivation(t *testing.T) {
	b := New("")

	sig := b.Signature("Maria Silva")
	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64 hex chars", len(sig))
	}
	for _, r := range sig {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("signature contains non-hex rune %q", r)
		}
	}

	// Deterministic for the same name, distinct across names.
	if b.Signature("Maria Silva") != sig {
		t.Error("signature not deterministic")
	}
	if b.Signature("Maria Souza") == sig {
		t.Error("distinct names produced the same signature")
	}
}

func TestSignatureServerSecret(t *testing.T) {
	legacy := New("")
	secret := New("per-deployment-secret")

	if legacy.Signature("Maria Silva") == secret.Signature("Maria Silva") {
		t.Error("server secret did not change the signature")
	}

	other := New("another-secret")
	if secret.Signature("Maria Silva") == other.Signature("Maria Silva") {
		t.Error("different secrets produced the same signature")
	}
}

func TestVerify(t *testing.T) {
	b := New("s3cret")
	sig := b.Signature("Maria Silva")

	if !b.Verify("Maria Silva", sig) {
		t.Error("valid signature rejected")
	}
	if b.Verify("Maria Souza", sig) {
		t.Error("signature accepted for a different name")
	}
	if b.Verify("Maria Silva", sig[:63]+"0") {
		t.Error("tampered signature accepted")
	}
}

func TestVerificationURL(t *testing.T) {
	b := New("")
	got := b.VerificationURL("42", "abc123", "rh.example.com", "8080")
	want := "http://rh.example.com:8080/verificar-cracha?id=42&assinatura=abc123"
	if got != want {
		t.Errorf("VerificationURL = %q, want %q", got, want)
	}
}

func TestBadgePayload(t *testing.T) {
	fixed := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	b := New("").WithClock(func() time.Time { return fixed })

	s := models.BadgeSubject{
		ID:         "7",
		Name:       "Maria Silva",
		Role:       "Analista",
		Department: "TI",
	}

	got := b.BadgePayload(s)
	want := "CRACHA|7|Maria Silva|Analista|TI|2026-08-28"
	if got != want {
		t.Errorf("BadgePayload = %q, want %q", got, want)
	}
}

func TestEncodeBase64(t *testing.T) {
	b64, err := EncodeBase64("CRACHA|7|Maria|Analista|TI|2026-08-28", 128)
	if err != nil {
		t.Fatalf("EncodeBase64: %v", err)
	}
	if b64 == "" {
		t.Fatal("empty base64 output")
	}

	png, err := EncodePNG("payload", 0)
	if err != nil {
		t.Fatalf("EncodePNG with default size: %v", err)
	}
	// PNG magic bytes.
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}
