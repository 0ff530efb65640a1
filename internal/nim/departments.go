package nim

import "sort"

// departments maps the 3-character department code (characters 2–4 of the
// NIM) to the program name. Some programs are reachable through more than
// one code.
var departments = map[string]string{
	"041": "Teknik Elektro",
	"021": "Teknik Mesin",
	"521": "Teknik Mesin",
	"621": "Teknik Pertambangan",
	"111": "Teknik Pertambangan",
	"061": "Teknik Geologi",
	"071": "Teknik Industri",
	"033": "Teknologi Kebumian dan Lingkungan",
	"031": "Teknik Perkapalan",
	"091": "Teknik Sistem Perkapalan",
	"101": "Teknik Perencanaan Wilayah dan Kota",
	"011": "Teknik Sipil",
	"121": "Teknik Informatika",
	"131": "Teknik Lingkungan",
	"522": "Arsitektur",
	"511": "Arsitektur",
	"012": "S2 Teknik Sipil",
	"072": "S2 Teknik Industri",
	"022": "S2 Teknik Mesin",
	"052": "S2 Teknik Perkapalan",
	"042": "S2 Ilmu Arsitektur",
	"053": "S3 - Teknik Elektro",
	"013": "S3 Teknik Sipil",
}

// Department is one entry of the department table.
type Department struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Departments returns the department table sorted by code.
func Departments() []Department {
	out := make([]Department, 0, len(departments))
	for code, name := range departments {
		out = append(out, Department{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LookupDepartment returns the program name for a department code.
func LookupDepartment(code string) (string, bool) {
	name, ok := departments[code]
	return name, ok
}
