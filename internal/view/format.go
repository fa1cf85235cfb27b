package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
)

var translators = map[string]func() locales.Translator{
	"en": en.New,
	"fr": fr.New,
	"de": de.New,
	"es": es.New,
}

// Formatter renders comment timestamps for one locale and time zone
type Formatter struct {
	trans locales.Translator
	loc   *time.Location
}

// NewFormatter creates a formatter. Unknown locales fall back to English and
// a nil location to UTC.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	newTrans, ok := translators[strings.ToLower(locale)]
	if !ok {
		newTrans = en.New
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{trans: newTrans(), loc: loc}
}

// Locale returns the translator's locale name
func (f *Formatter) Locale() string {
	return f.trans.Locale()
}

// FormatDate returns a relative label for recent comments and a short
// locale date for anything a day or older
func (f *Formatter) FormatDate(created, now time.Time) string {
	hours := now.Sub(created).Hours()
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", int(hours))
	}
	return f.trans.FmtDateShort(created.In(f.loc))
}
