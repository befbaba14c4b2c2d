// Package seed provides demo profile fixtures shared by the seed command and
// the seed endpoint.
package seed

import (
	"github.com/google/uuid"

	"bouncer/internal/model"
)

// Profiles returns the demo fixture set. Every profile carries the
// needs-scoring sentinel so a fresh database immediately exercises the batch
// pipeline; one row has no searchable data on purpose.
func Profiles() []model.Profile {
	zero := 0
	return []model.Profile{
		{
			ID:          uuid.MustParse("0a1f86f0-24cc-4a3d-9a4e-0e8fe3b6d101"),
			FullName:    "Ada Calloway",
			Email:       "ada.calloway@example.com",
			DateOfBirth: "1989-04-12",
			City:        "Baltimore",
			ZipCode:     "21201",
			RiskLevel:   &zero,
		},
		{
			ID:          uuid.MustParse("0a1f86f0-24cc-4a3d-9a4e-0e8fe3b6d102"),
			FullName:    "Marcus Lindqvist",
			Email:       "m.lindqvist@example.net",
			DateOfBirth: "1994-11-02",
			City:        "Annapolis",
			ZipCode:     "21401",
			RiskLevel:   &zero,
		},
		{
			ID:        uuid.MustParse("0a1f86f0-24cc-4a3d-9a4e-0e8fe3b6d103"),
			FullName:  "Priya Raman",
			Email:     "priya.raman@example.org",
			City:      "Silver Spring",
			ZipCode:   "20910",
			RiskLevel: &zero,
		},
		{
			// No searchable data: the batch must skip this row.
			ID:        uuid.MustParse("0a1f86f0-24cc-4a3d-9a4e-0e8fe3b6d104"),
			RiskLevel: &zero,
		},
	}
}
