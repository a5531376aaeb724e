package course

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// Slugify turns a title into a lowercase, hyphen-separated URL slug.
// German umlauts are transliterated; other diacritics are dropped.
func Slugify(title string) string {
	s := umlauts.Replace(norm.NFC.String(title))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SetTitle updates the title. The slug follows the title as long as it has not
// been edited by hand.
func (c *Course) SetTitle(title string) {
	if c.Slug == "" || c.Slug == Slugify(c.Title) {
		c.Slug = Slugify(title)
	}
	c.Title = title
}

// EffectiveLicense returns the course license, or DefaultLicense when unset.
func (c Course) EffectiveLicense() string {
	if c.License == "" {
		return DefaultLicense
	}
	return c.License
}

// AddAuthor appends name unless it is already listed. It reports whether the
// author was added.
func (c *Course) AddAuthor(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(c.Authors, name) {
		return false
	}
	c.Authors = append(c.Authors, name)
	return true
}

// RemoveAuthor removes name and reports whether it was listed.
func (c *Course) RemoveAuthor(name string) bool {
	i := slices.Index(c.Authors, name)
	if i < 0 {
		return false
	}
	c.Authors = slices.Delete(c.Authors, i, i+1)
	return true
}

// AttachModule links a module by ID. It reports whether the module was added.
func (c *Course) AttachModule(id int) bool {
	if slices.Contains(c.ModuleIDs, id) {
		return false
	}
	c.ModuleIDs = append(c.ModuleIDs, id)
	return true
}

// DetachModule unlinks a module and reports whether it was linked.
func (c *Course) DetachModule(id int) bool {
	i := slices.Index(c.ModuleIDs, id)
	if i < 0 {
		return false
	}
	c.ModuleIDs = slices.Delete(c.ModuleIDs, i, i+1)
	return true
}
