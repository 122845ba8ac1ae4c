package gesture

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Gesture входное событие хоста (здесь только аккорды клавиатуры).
type Gesture interface {
	// Identifiers нормализованные идентификаторы, например "kb:control+c".
	Identifiers() []string
	// Send повторно отправляет исходное событие в обычный конвейер ввода.
	Send() error
}

var ErrEmptyChord = errors.New("gesture: empty chord")

var modifierAliases = map[string]string{
	"ctrl":    "control",
	"control": "control",
	"alt":     "alt",
	"shift":   "shift",
	"win":     "windows",
	"windows": "windows",
}

// NormalizeChord приводит запись аккорда к каноническому виду:
// нижний регистр, префикс "kb:", модификаторы по алфавиту, клавиша последней.
func NormalizeChord(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "kb:")
	if s == "" {
		return "", ErrEmptyChord
	}
	parts := strings.Split(s, "+")
	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return "", fmt.Errorf("gesture: chord %q has no key", s)
	}
	mods := make([]string, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		m, ok := modifierAliases[p]
		if !ok {
			return "", fmt.Errorf("gesture: unknown modifier %q in %q", p, s)
		}
		mods = append(mods, m)
	}
	sort.Strings(mods)
	return "kb:" + strings.Join(append(mods, key), "+"), nil
}

// Chord простая реализация Gesture для одного аккорда.
// send вызывается при повторной отправке; nil означает «некуда отправлять».
type Chord struct {
	id   string
	send func() error
}

// NewChord создаёт жест из записи аккорда.
func NewChord(spec string, send func() error) (*Chord, error) {
	id, err := NormalizeChord(spec)
	if err != nil {
		return nil, err
	}
	return &Chord{id: id, send: send}, nil
}

func (c *Chord) Identifiers() []string { return []string{c.id} }

func (c *Chord) Send() error {
	if c.send == nil {
		return nil
	}
	return c.send()
}

func (c *Chord) String() string { return c.id }
