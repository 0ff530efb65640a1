package store

import "github.com/aanand-mishra/students-roster/internal/types"

// DefaultSeed returns the demo roster installed when nothing is saved yet.
func DefaultSeed() []types.Student {
	seed := []types.Student{
		{ID: 1, Name: "Andi Saputra", StudentID: "D121231038", Program: "Teknik Informatika", CohortYear: "2023", Address: "Makassar"},
		{ID: 2, Name: "Budi Santoso", StudentID: "D021231039", Program: "Teknik Mesin", CohortYear: "2023", Address: "Jakarta"},
		{ID: 3, Name: "Citra Dewi", StudentID: "D041221040", Program: "Teknik Elektro", CohortYear: "2022", Address: "Bandung"},
		{ID: 4, Name: "Dewi Lestari", StudentID: "D011231041", Program: "Teknik Sipil", CohortYear: "2023", Address: "Surabaya"},
		{ID: 5, Name: "Eko Prasetyo", StudentID: "D071221042", Program: "Teknik Industri", CohortYear: "2022", Address: "Yogyakarta"},
		{ID: 6, Name: "Farhan Ahmad", StudentID: "D031231043", Program: "Teknik Perkapalan", CohortYear: "2023", Address: "Medan"},
		{ID: 7, Name: "Gita Putri", StudentID: "D522221044", Program: "Arsitektur", CohortYear: "2022", Address: "Palembang"},
		{ID: 8, Name: "Hariyanto", StudentID: "D061211045", Program: "Teknik Geologi", CohortYear: "2021", Address: "Balikpapan"},
		{ID: 9, Name: "Intan Permata", StudentID: "D131221046", Program: "Teknik Lingkungan", CohortYear: "2022", Address: "Makassar"},
		{ID: 10, Name: "Joko Susilo", StudentID: "D621201047", Program: "Teknik Pertambangan", CohortYear: "2020", Address: "Semarang"},
	}
	for i := range seed {
		seed[i].Photo = types.DefaultPhoto
	}
	return seed
}
