package importer

import (
	"strings"
	"unicode"

	"github.com/aanand-mishra/students-roster/internal/rows"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical field names, matching the JSON names of types.Student.
const (
	FieldName    = "name"
	FieldNIM     = "nim"
	FieldProgram = "program"
	FieldCohort  = "cohortYear"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldGPA     = "gpa"
	FieldNotes   = "notes"
	FieldGender  = "gender"
	FieldPhoto   = "photo"
)

// aliases maps folded header spellings to canonical fields.
var aliases = map[string]string{
	"nama":          FieldName,
	"name":          FieldName,
	"namalengkap":   FieldName,
	"fullname":      FieldName,
	"studentname":   FieldName,
	"namamahasiswa": FieldName,

	"nim":                 FieldNIM,
	"studentid":           FieldNIM,
	"npm":                 FieldNIM,
	"nomorindukmahasiswa": FieldNIM,

	"program":      FieldProgram,
	"prodi":        FieldProgram,
	"programstudi": FieldProgram,
	"jurusan":      FieldProgram,
	"departemen":   FieldProgram,
	"department":   FieldProgram,
	"major":        FieldProgram,

	"angkatan":      FieldCohort,
	"cohort":        FieldCohort,
	"cohortyear":    FieldCohort,
	"tahunangkatan": FieldCohort,
	"tahunmasuk":    FieldCohort,
	"entryyear":     FieldCohort,
	"year":          FieldCohort,

	"alamat":   FieldAddress,
	"address":  FieldAddress,
	"domisili": FieldAddress,

	"email":        FieldEmail,
	"surel":        FieldEmail,
	"emailaddress": FieldEmail,

	"ipk": FieldGPA,
	"gpa": FieldGPA,

	"catatan":    FieldNotes,
	"notes":      FieldNotes,
	"note":       FieldNotes,
	"keterangan": FieldNotes,
	"remarks":    FieldNotes,

	"jeniskelamin": FieldGender,
	"gender":       FieldGender,
	"sex":          FieldGender,
	"jk":           FieldGender,
	"kelamin":      FieldGender,

	"foto":     FieldPhoto,
	"photo":    FieldPhoto,
	"photourl": FieldPhoto,
	"avatar":   FieldPhoto,
	"picture":  FieldPhoto,
	"image":    FieldPhoto,
}

// fold reduces a header to lowercase ASCII letters and digits: accents are
// stripped ("Angkatàn" -> "angkatan") and spaces, underscores and other
// punctuation dropped ("Jenis Kelamin", "jenis_kelamin" -> "jeniskelamin").
func fold(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, header)
	if err != nil {
		stripped = header
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonical resolves an import column header to its canonical field name.
func Canonical(header string) (string, bool) {
	field, ok := aliases[fold(header)]
	return field, ok
}

// resolve maps a raw row onto canonical fields. Unknown columns are dropped;
// when two columns resolve to the same field, the first non-blank one wins.
func resolve(fields map[string]any, keys []string) map[string]string {
	out := make(map[string]string, len(aliases))
	for _, key := range keys {
		field, ok := Canonical(key)
		if !ok {
			continue
		}
		value := strings.TrimSpace(rows.String(fields[key]))
		if value == "" {
			continue
		}
		if _, seen := out[field]; !seen {
			out[field] = value
		}
	}
	return out
}
