package logging

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	tokenText = iota
	tokenTime
	tokenLevel
	tokenLevelName
	tokenName
	tokenMessage
)

type templateToken struct {
	kind int
	text string
}

// template is a parsed LOG_FORMAT string. Supported tokens:
//
//	${time}       record timestamp, rendered with the configured date layout
//	${level}      one-letter severity code (D, I, W, E, C)
//	${levelname}  full severity name
//	${name}       logger name
//	${message}    record message
type template struct {
	tokens []templateToken
}

func parseTemplate(format string) (*template, error) {
	var tokens []templateToken
	rest := format

	for len(rest) > 0 {
		start := strings.Index(rest, "${")
		if start < 0 {
			tokens = append(tokens, templateToken{kind: tokenText, text: rest})
			break
		}

		if start > 0 {
			tokens = append(tokens, templateToken{kind: tokenText, text: rest[:start]})
		}

		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return nil, fmt.Errorf("unclosed token at position %d in %q", start, format)
		}

		name := rest[start+2 : start+end]
		rest = rest[start+end+1:]

		switch name {
		case "time":
			tokens = append(tokens, templateToken{kind: tokenTime})
		case "level":
			tokens = append(tokens, templateToken{kind: tokenLevel})
		case "levelname":
			tokens = append(tokens, templateToken{kind: tokenLevelName})
		case "name":
			tokens = append(tokens, templateToken{kind: tokenName})
		case "message":
			tokens = append(tokens, templateToken{kind: tokenMessage})
		default:
			return nil, fmt.Errorf("unknown token %q in %q", name, format)
		}
	}

	return &template{tokens: tokens}, nil
}

func (t *template) render(sb *strings.Builder, ts time.Time, level slog.Level, name, message, dateLayout string) {
	for _, tok := range t.tokens {
		switch tok.kind {
		case tokenText:
			sb.WriteString(tok.text)
		case tokenTime:
			sb.WriteString(ts.Format(dateLayout))
		case tokenLevel:
			sb.WriteString(levelCode(level))
		case tokenLevelName:
			sb.WriteString(levelName(level))
		case tokenName:
			sb.WriteString(name)
		case tokenMessage:
			sb.WriteString(message)
		}
	}
}
