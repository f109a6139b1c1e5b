package cache

// globMatch implements the Redis glob syntax used by KEYS and SCAN MATCH:
// '*', '?', '[abc]', '[^a-z]' and '\\' escapes. There is no path separator.
func globMatch(pattern, s string) bool {
	px, sx := 0, 0
	starPx, starSx := -1, -1

	for px < len(pattern) || sx < len(s) {
		if px < len(pattern) {
			switch c := pattern[px]; c {
			case '*':
				// try the empty match first, come back here on mismatch
				starPx, starSx = px, sx
				px++
				continue

			case '?':
				if sx < len(s) {
					px++
					sx++
					continue
				}

			case '[':
				matched, width := matchClass(pattern[px:], s, sx)
				if width == 0 {
					// unterminated class: literal '['
					if sx < len(s) && s[sx] == '[' {
						px++
						sx++
						continue
					}
				} else if matched {
					px += width
					sx++
					continue
				}

			case '\\':
				lit, width := byte('\\'), 1
				if px+1 < len(pattern) {
					lit, width = pattern[px+1], 2
				}
				if sx < len(s) && s[sx] == lit {
					px += width
					sx++
					continue
				}

			default:
				if sx < len(s) && s[sx] == c {
					px++
					sx++
					continue
				}
			}
		}

		// backtrack: let the last '*' swallow one more byte
		if starPx >= 0 && starSx < len(s) {
			starSx++
			px, sx = starPx+1, starSx
			continue
		}
		return false
	}
	return true
}

// matchClass matches s[sx] against the class opening class[0] == '['.
// width is the class length including brackets, 0 when it is unterminated.
func matchClass(class, s string, sx int) (matched bool, width int) {
	i := 1
	negate := false
	if i < len(class) && class[i] == '^' {
		negate = true
		i++
	}

	var b byte
	if sx < len(s) {
		b = s[sx]
	}

	for ; i < len(class); i++ {
		c := class[i]
		switch {
		case c == ']':
			if sx >= len(s) {
				return false, i + 1
			}
			return matched != negate, i + 1
		case c == '\\' && i+1 < len(class):
			i++
			if class[i] == b {
				matched = true
			}
		case i+2 < len(class) && class[i+1] == '-' && class[i+2] != ']':
			lo, hi := c, class[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			if b >= lo && b <= hi {
				matched = true
			}
			i += 2
		default:
			if c == b {
				matched = true
			}
		}
	}
	return false, 0
}
