package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeVehicleNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UP25 GT 0880", "UP25GT0880"},
		{"up25gt0880", "UP25GT0880"},
		{"UP-25-GT-0880", "UP25GT0880"},
		{"Up25 Gt-0880", "UP25GT0880"},
		{"MH1AB1234", "MH1AB1234"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeVehicleNumber(c.in))
	}
}

func TestVehicleNumberPattern(t *testing.T) {
	valid := []string{"UP25GT0880", "MH1A1234", "DL9CAB4321", "KA01M9999"}
	for _, v := range valid {
		require.True(t, vehicleNumberPattern.MatchString(v), v)
	}

	invalid := []string{"", "UP25GT088", "1234UP25", "UPGT0880", "UP256GT0880", "UP25GTX0880"}
	for _, v := range invalid {
		require.False(t, vehicleNumberPattern.MatchString(v), v)
	}
}

func TestValidateVehicleInputCollectsAllErrors(t *testing.T) {
	gvw := -5.0
	in := &VehicleInput{
		VehicleNumber:     "NOTAREG",
		DriverName:        "",
		OwnerName:         "",
		ManufacturingYear: 1899,
		GVW:               &gvw,
		CurrentStatus:     "parked",
	}

	errs := validateVehicleInput(in)
	require.Contains(t, errs, "driver_name is required")
	require.Contains(t, errs, "owner_name is required")
	require.Contains(t, errs, "vehicle_number must be a valid registration, e.g. UP25 GT 0880")
	require.Contains(t, errs, fmt.Sprintf("manufacturing_year must be between 1900 and %d", time.Now().Year()))
	require.Contains(t, errs, "gvw must be greater than zero")
	require.Contains(t, errs, "current_status must be one of available, loaded, on_trip, maintenance")
}

func TestValidateVehicleInputYearBounds(t *testing.T) {
	base := func(year int) *VehicleInput {
		return &VehicleInput{
			VehicleNumber:     "UP25GT0880",
			DriverName:        "Ramesh",
			OwnerName:         "Absuma Logistics",
			ManufacturingYear: year,
		}
	}

	current := time.Now().Year()
	require.Empty(t, validateVehicleInput(base(1900)))
	require.Empty(t, validateVehicleInput(base(current)))
	require.NotEmpty(t, validateVehicleInput(base(1899)))
	require.NotEmpty(t, validateVehicleInput(base(current+1)))
}

func TestValidateVehicleInputFinancingRequired(t *testing.T) {
	in := &VehicleInput{
		VehicleNumber:     "UP25GT0880",
		DriverName:        "Ramesh",
		OwnerName:         "Absuma Logistics",
		ManufacturingYear: 2020,
		IsFinanced:        true,
	}

	errs := validateVehicleInput(in)
	require.Equal(t, []string{"financing details are required for a financed vehicle"}, errs)

	in.Financing = &FinancingInput{}
	errs = validateVehicleInput(in)
	require.Contains(t, errs, "bank_name is required for a financed vehicle")
	require.Contains(t, errs, "emi_amount is required for a financed vehicle")
}

func TestValidateVehicleInputFinancingDates(t *testing.T) {
	in := &VehicleInput{
		VehicleNumber:     "UP25GT0880",
		DriverName:        "Ramesh",
		OwnerName:         "Absuma Logistics",
		ManufacturingYear: 2020,
		IsFinanced:        true,
		Financing: &FinancingInput{
			BankName:      "HDFC",
			EMIAmount:     decimalPtr("45000"),
			LoanStartDate: "01-06-2023",
		},
	}

	errs := validateVehicleInput(in)
	require.Contains(t, errs, "loan_start_date must be a valid date in YYYY-MM-DD format")
}

func TestParseDate(t *testing.T) {
	var errs []string
	require.Nil(t, parseDate("loan_start_date", "", &errs))
	require.Empty(t, errs)

	got := parseDate("loan_start_date", "2023-06-01", &errs)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), *got)
	require.Empty(t, errs)

	require.Nil(t, parseDate("loan_end_date", "June 1 2023", &errs))
	require.Equal(t, []string{"loan_end_date must be a valid date in YYYY-MM-DD format"}, errs)
}

func TestSnakeCase(t *testing.T) {
	require.Equal(t, "vehicle_number", snakeCase("VehicleNumber"))
	require.Equal(t, "g_v_w", snakeCase("GVW"))
	require.Equal(t, "name", snakeCase("Name"))
}
