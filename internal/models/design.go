// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// design.go models the optional free-form visual design document a theme
// may carry. It is produced by an external visual editor and stored as a
// JSON blob inside the theme row; when present, its elements override the
// parametric layout for the fields they cover.

package models

import (
	"encoding/json"
	"fmt"
)

// ElementKind tags the concrete type of a design element.
type ElementKind string

const (
	ElementText       ElementKind = "texto"
	ElementImage      ElementKind = "imagem"
	ElementQR         ElementKind = "qr"
	ElementBackground ElementKind = "fundo"
)

// Element is one positioned drawable primitive of a design document.
type Element interface {
	Kind() ElementKind
}

// TextElement draws a text run. Field names a subject attribute whose
// value replaces Content at render time ("nome", "cargo", "departamento",
// "organizacao", "data_emissao", "data_validade", "id"); an empty or
// unknown Field renders Content literally.
type TextElement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Family   string  `json:"familia,omitempty"`
	FontSize float64 `json:"tamanho_fonte,omitempty"`
	Color    string  `json:"cor,omitempty"`
	Content  string  `json:"conteudo,omitempty"`
	Field    string  `json:"associacao,omitempty"`
}

func (TextElement) Kind() ElementKind { return ElementText }

// ImageElement draws a raster image. Field may associate the element with
// a subject attribute carrying a file path ("foto", "logo"); otherwise
// Source is used as-is.
type ImageElement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"largura"`
	Height float64 `json:"altura"`
	Source string  `json:"origem,omitempty"`
	Field  string  `json:"associacao,omitempty"`
}

func (ImageElement) Kind() ElementKind { return ElementImage }

// QRElement places the subject's QR code.
type QRElement struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"tamanho"`
}

func (QRElement) Kind() ElementKind { return ElementQR }

// BackgroundElement fills the whole card before other elements paint.
type BackgroundElement struct {
	Color   string  `json:"cor"`
	Opacity float64 `json:"opacidade,omitempty"`
}

func (BackgroundElement) Kind() ElementKind { return ElementBackground }

// DesignDocument is an ordered list of drawable elements.
type DesignDocument struct {
	Elements []Element
}

// designEnvelope is the on-disk shape of one element: the concrete fields
// plus a discriminator.
type designEnvelope struct {
	Kind ElementKind     `json:"tipo"`
	Rest json.RawMessage `json:"-"`
}

// MarshalJSON serializes the document as {"elementos": [...]}, injecting
// the "tipo" discriminator into each element object.
func (d DesignDocument) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(d.Elements))
	for _, el := range d.Elements {
		body, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		// Splice the discriminator into the marshaled object.
		tagged := append([]byte(fmt.Sprintf(`{"tipo":%q,`, el.Kind())), body[1:]...)
		if len(body) == 2 { // element marshaled to "{}"
			tagged = []byte(fmt.Sprintf(`{"tipo":%q}`, el.Kind()))
		}
		out = append(out, tagged)
	}
	wrapper := struct {
		Elements []json.RawMessage `json:"elementos"`
	}{Elements: out}
	return json.Marshal(wrapper)
}

// UnmarshalJSON parses {"elementos": [...]}, dispatching each object on
// its "tipo" discriminator. An unknown discriminator is an error; the
// store treats any parse error as "no design document".
func (d *DesignDocument) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Elements []json.RawMessage `json:"elementos"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	elements := make([]Element, 0, len(wrapper.Elements))
	for _, raw := range wrapper.Elements {
		var head struct {
			Kind ElementKind `json:"tipo"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}

		var el Element
		switch head.Kind {
		case ElementText:
			var e TextElement
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			el = e
		case ElementImage:
			var e ImageElement
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			el = e
		case ElementQR:
			var e QRElement
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			el = e
		case ElementBackground:
			var e BackgroundElement
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			el = e
		default:
			return fmt.Errorf("design element: unknown tipo %q", head.Kind)
		}
		elements = append(elements, el)
	}

	d.Elements = elements
	return nil
}

// ParseDesign decodes a stored design blob. A structurally invalid or
// empty document is treated as absent, never as an error: a broken design
// must not make its theme unloadable.
func ParseDesign(raw []byte) *DesignDocument {
	if len(raw) == 0 {
		return nil
	}
	var doc DesignDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	if len(doc.Elements) == 0 {
		return nil
	}
	return &doc
}
