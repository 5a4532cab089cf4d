// Package messages holds the user-facing validation messages of the modeler,
// registered in an x/text catalog so they can be printed in other locales.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MultipleTables   = "The analysis schema must reference exactly one table but references %d."
	MultipleCubes    = "The analysis schema must contain exactly one cube but contains %d."
	ColumnsNotFound  = "The following columns were not found in table %s: %s"
	ColumnsWrongType = "The following columns have a type incompatible with their declared type: %s"
	NoData           = "Table %s has no columns to model."
	ColumnMismatch   = "Column %s (%s) no longer matches any column of table %s."
	MultipleTablesIn = "Logical model %s spans %d tables; updating star schemas is not supported."
	CubeCount        = "Logical model %s must contain exactly one cube but contains %d."
)

var german = map[string]string{
	MultipleTables:   "Das Analyseschema muss genau eine Tabelle referenzieren, referenziert aber %d.",
	MultipleCubes:    "Das Analyseschema muss genau einen Cube enthalten, enthält aber %d.",
	ColumnsNotFound:  "Die folgenden Spalten wurden in Tabelle %s nicht gefunden: %s",
	ColumnsWrongType: "Die folgenden Spalten haben einen Typ, der nicht zum deklarierten Typ passt: %s",
	NoData:           "Tabelle %s hat keine Spalten zum Modellieren.",
	ColumnMismatch:   "Spalte %s (%s) passt zu keiner Spalte der Tabelle %s mehr.",
	MultipleTablesIn: "Das logische Modell %s umfasst %d Tabellen; Sternschemata können nicht aktualisiert werden.",
	CubeCount:        "Das logische Modell %s muss genau einen Cube enthalten, enthält aber %d.",
}

var cat = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		MultipleTables, MultipleCubes, ColumnsNotFound, ColumnsWrongType,
		NoData, ColumnMismatch, MultipleTablesIn, CubeCount,
	} {
		_ = b.SetString(language.English, key, key)
	}
	for key, msg := range german {
		_ = b.SetString(language.German, key, msg)
	}
	return b
}

// Supported lists the locales with translations.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

// NewPrinter returns a printer for the closest supported locale to tag.
func NewPrinter(tag language.Tag) *message.Printer {
	_, idx, _ := matcher.Match(tag)
	return message.NewPrinter(Supported[idx], message.Catalog(cat))
}

// ParseLocale resolves a locale string such as "de_DE" or "en-US".
// Unparseable locales fall back to English.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

var english = NewPrinter(language.English)

// Sprintf formats key in English.
func Sprintf(key string, args ...any) string {
	return english.Sprintf(key, args...)
}

// FromAcceptLanguage returns a printer for the best supported match of an
// HTTP Accept-Language header, or English.
func FromAcceptLanguage(header string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return english
	}
	_, idx, _ := matcher.Match(tags...)
	return message.NewPrinter(Supported[idx], message.Catalog(cat))
}
