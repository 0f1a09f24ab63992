package wire

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidFrame is returned by Parse for any frame that cannot be
// interpreted as a well-formed message: out-of-range/non-numeric type,
// too few pipe-delimited segments, or a tail field missing its '='.
// Parse is total — it never panics — so the router can always convert this
// into the disconnect-signalling error reply required by spec.md §4.2.
var ErrInvalidFrame = errors.New("wire: invalid frame")

// Parse decodes one LF-stripped line into a Message (spec.md §4.1).
func Parse(line string) (*Message, error) {
	line = strings.TrimSuffix(line, "\r")
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil, ErrInvalidFrame
	}

	typeNum, err := strconv.Atoi(parts[0])
	if err != nil || typeNum < 0 || typeNum > 200 {
		return nil, ErrInvalidFrame
	}

	msg := &Message{
		Type:   MessageType(typeNum),
		Player: parts[1],
		Room:   parts[2],
	}

	for _, raw := range parts[3:] {
		if raw == "" {
			continue
		}
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return nil, ErrInvalidFrame
		}
		key := expandKey(raw[:eq])
		value := raw[eq+1:]
		msg.Fields = append(msg.Fields, Field{Key: key, Value: value})
	}

	return msg, nil
}

// Serialize encodes a Message back to its single-line wire form, applying
// the compact-code substitution to keys (never to values).
func Serialize(m *Message) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(m.Type)))
	b.WriteByte('|')
	b.WriteString(m.Player)
	b.WriteByte('|')
	b.WriteString(m.Room)

	for _, f := range m.Fields {
		b.WriteByte('|')
		b.WriteString(compactKey(f.Key))
		b.WriteByte('=')
		b.WriteString(f.Value)
	}

	return b.String()
}
