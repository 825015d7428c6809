package lexer

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// isNameStart: может ли байт начинать имя тега.
// Всё, что >= 0x80, считаем частью имени (UTF-8 не декодируем).
func isNameStart(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z':
		return true
	case b == '_' || b == ':' || b == '$' || b == '@':
		return true
	}
	return b >= 0x80
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func trimRightSpace(b []byte) []byte {
	for len(b) > 0 && isSpace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}
