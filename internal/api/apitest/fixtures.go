package apitest

import (
	"time"

	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/contracts"
)

func day(y int, m time.Month, d int) *contracts.Timestamp {
	return contracts.At(time.Date(y, m, d, 10, 0, 0, 0, time.UTC))
}

// SampleContracts returns a small, varied data set: every search field has at
// least one match and one record has its amount only in the summary.
func SampleContracts() []contracts.Contract {
	return []contracts.Contract{
		{
			ID:                   uuid.MustParse("0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e01"),
			Title:                "Obras de reforma del colegio público San Isidro",
			ContractingPartyName: "Ayuntamiento de Madrid",
			TotalAmount:          contracts.Float(1250000),
			Status:               "ADJ",
			TypeCode:             "3",
			Source:               "perfiles",
			CountrySubentity:     "Comunidad de Madrid",
			NUTSCode:             "ES300",
			UpdatedAt:            day(2024, time.March, 5),
		},
		{
			ID:                   uuid.MustParse("0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e02"),
			Title:                "Servicio de limpieza de edificios municipales",
			ContractingPartyName: "Ayuntamiento de Sevilla",
			TaxExclusiveAmount:   contracts.Float(98000.5),
			Status:               "PUB",
			TypeCode:             "2",
			Source:               "agregadas",
			CountrySubentity:     "Andalucía",
			NUTSCode:             "ES618",
			UpdatedAt:            day(2023, time.November, 20),
		},
		{
			ID:                   uuid.MustParse("0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e03"),
			Title:                "Suministro de material sanitario",
			ContractingPartyName: "Servicio Andaluz de Salud",
			Summary:              "Id licitación: 2024/01; Importe: 35.000,00 EUR; Estado: Evaluación",
			Status:               "EV",
			TypeCode:             "01",
			Source:               "perfiles",
			CountrySubentity:     "Andalucía",
			NUTSCode:             "ES61",
			UpdatedAt:            day(2024, time.January, 15),
		},
		{
			ID:                   uuid.MustParse("0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e04"),
			Title:                "Mantenimiento de alumbrado público",
			ContractingPartyName: "Ajuntament de Barcelona",
			EstimatedAmount:      contracts.Float(420000),
			Status:               "RES",
			TypeCode:             "7",
			Source:               "perfiles",
			CountrySubentity:     "Catalunya",
			NUTSCode:             "ES511",
			UpdatedAt:            day(2022, time.June, 1),
		},
		{
			ID:                   uuid.MustParse("0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e05"),
			Title:                "Consultoría para la transformación digital",
			ContractingPartyName: "Ministerio de Hacienda",
			Status:               "ANUL",
			TypeCode:             "99",
			Source:               "agregadas",
			CountrySubentity:     "Comunidad de Madrid",
			NUTSCode:             "ES300",
		},
	}
}
