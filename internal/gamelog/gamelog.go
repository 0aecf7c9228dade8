// Package gamelog is the player-facing message log.
package gamelog

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Log is a bounded list of formatted messages, newest last. Every entry is
// mirrored to zap at debug level.
type Log struct {
	entries []string
	limit   int
	printer *message.Printer
	log     *zap.Logger
}

// New creates a log keeping at most limit entries. lang is a BCP 47 tag used
// for number formatting; an unparsable tag falls back to English.
func New(limit int, lang string, log *zap.Logger) *Log {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	if limit <= 0 {
		limit = 64
	}
	return &Log{
		entries: make([]string, 0, limit),
		limit:   limit,
		printer: message.NewPrinter(tag),
		log:     log,
	}
}

// Addf formats and appends a message.
func (l *Log) Addf(format string, args ...any) {
	l.Add(l.printer.Sprintf(format, args...))
}

// Add appends a preformatted message.
func (l *Log) Add(msg string) {
	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, msg)
	l.log.Debug("game log", zap.String("msg", msg))
}

// Entries returns all messages, oldest first.
func (l *Log) Entries() []string { return l.entries }

// Recent returns up to n newest messages, oldest first.
func (l *Log) Recent(n int) []string {
	if n >= len(l.entries) {
		return l.entries
	}
	return l.entries[len(l.entries)-n:]
}

// Last returns the newest message or "".
func (l *Log) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

func (l *Log) Len() int { return len(l.entries) }

func (l *Log) Clear() { l.entries = l.entries[:0] }
