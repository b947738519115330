package compiler

import (
	"fmt"
	"strings"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/zone"
)

// formatName expands an era name format for one set of offsets.
func formatName(pattern, letter string, standard, savings zone.Offset) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: empty format", errs.ErrInvalidNameFormat)
	}
	if letter == "-" {
		letter = ""
	}

	if strings.Contains(pattern, "/") {
		std, dst, ok := strings.Cut(pattern, "/")
		if !ok || strings.Contains(dst, "/") || std == "" || dst == "" {
			return "", fmt.Errorf("%w: %q", errs.ErrInvalidNameFormat, pattern)
		}
		if savings == 0 {
			return std, nil
		}

		return dst, nil
	}

	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch != '%' {
			sb.WriteByte(ch)
			continue
		}

		i++
		if i == len(pattern) {
			return "", fmt.Errorf("%w: trailing %% in %q", errs.ErrInvalidNameFormat, pattern)
		}
		switch pattern[i] {
		case 's':
			sb.WriteString(letter)
		case 'z':
			sb.WriteString(numericOffset(standard + savings))
		case '%':
			sb.WriteByte('%')
		default:
			return "", fmt.Errorf("%w: unknown directive %%%c in %q", errs.ErrInvalidNameFormat, pattern[i], pattern)
		}
	}

	return sb.String(), nil
}

// numericOffset renders an offset the way %z does: +05, +0530, -033045.
func numericOffset(o zone.Offset) string {
	sign := '+'
	v := int(o)
	if v < 0 {
		sign = '-'
		v = -v
	}

	h, m, s := v/3600, v/60%60, v%60
	switch {
	case s != 0:
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%c%02d", sign, h)
	}
}
