// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

// ellipsis is appended to truncated text.
const ellipsis = "..."

// minTruncatedRunes is the floor below which truncation stops shortening.
const minTruncatedRunes = 4

// Truncate fits text into maxWidth millimeters by stripping trailing
// runes and appending an ellipsis. The result is always the original
// string or a strict prefix of it plus "...". Below the length floor the
// floored prefix is returned even if it still overflows.
func Truncate(text string, maxWidth float64, family string, size float64, m Measurer) string {
	if m.TextWidth(text, family, size) <= maxWidth {
		return text
	}

	runes := []rune(text)
	for n := len(runes) - 1; n >= minTruncatedRunes; n-- {
		candidate := string(runes[:n]) + ellipsis
		if m.TextWidth(candidate, family, size) <= maxWidth {
			return candidate
		}
	}

	if len(runes) < minTruncatedRunes {
		return text
	}
	return string(runes[:minTruncatedRunes]) + ellipsis
}
