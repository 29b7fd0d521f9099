// Copyright 2026 Krambot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// repairJSON attempts to fix common defects in model-produced JSON:
// unquoted object keys and trailing commas before a closing brace or bracket.
func repairJSON(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes)+16)

	inString := false
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out = append(out, ch)
			if ch == '\\' && i+1 < len(runes) {
				i++
				out = append(out, runes[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out = append(out, ch)

		case ch == ',':
			// Drop the comma when only whitespace separates it from } or ].
			j := i + 1
			for j < len(runes) && isSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue
			}
			out = append(out, ch)

		case isKeyStart(ch) && keyFollows(runes, i) && colonAhead(runes, i):
			// Unquoted key: wrap it in quotes up to the colon.
			start := i
			for runes[i] != ':' && runes[i] != '"' {
				i++
			}
			key := strings.TrimSpace(string(runes[start:i]))
			out = append(out, '"')
			out = append(out, []rune(key)...)
			out = append(out, '"')
			if runes[i] == '"' {
				// Key was missing only its opening quote; skip the stray
				// closing quote.
				continue
			}
			i--

		default:
			out = append(out, ch)
		}
	}

	return string(out)
}

// keyFollows reports whether the run starting at i looks like an object key,
// meaning the previous non-space output character opened an object or ended
// the previous member.
func keyFollows(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if isSpace(runes[j]) {
			continue
		}
		return runes[j] == '{' || runes[j] == ','
	}
	return false
}

// colonAhead reports whether a ':' (optionally preceded by a stray closing
// quote) terminates the run starting at i before any other structural
// character, which is what distinguishes a key from a bare value.
func colonAhead(runes []rune, i int) bool {
	for j := i; j < len(runes); j++ {
		switch runes[j] {
		case ':':
			return true
		case '"':
			return j+1 < len(runes) && runes[j+1] == ':'
		case ',', '{', '}', '[', ']':
			return false
		}
	}
	return false
}

func isKeyStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
