package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type VehicleRecord struct {
	Status           string `json:"status"`
	VehicleNo        string `json:"vehicle_no"`
	Owner            string `json:"owner"`
	FatherName       string `json:"father_name"`
	OwnerSerialNo    string `json:"owner_serial_no"`
	Model            string `json:"model"`
	MakerModel       string `json:"maker_model"`
	VehicleClass     string `json:"vehicle_class"`
	FuelType         string `json:"fuel_type"`
	FuelNorms        string `json:"fuel_norms"`
	InsuranceCompany string `json:"insurance_company"`
	InsuranceNo      string `json:"insurance_no"`
	InsuranceUpto    string `json:"insurance_upto"`
	InsuranceStatus  string `json:"insurance_status"`
	FitnessUpto      string `json:"fitness_upto"`
	TaxUpto          string `json:"tax_upto"`
	PUCUpto          string `json:"puc_upto"`
	PUCStatus        string `json:"puc_status"`
	VehicleAge       string `json:"vehicle_age"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	FinancierName    string `json:"financier_name"`
}

// NormalizeVehicleNo uppercases and strips spaces; anything shorter
// than five characters is rejected.
func NormalizeVehicleNo(number string) (string, bool) {
	number = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(number), " ", ""))
	if len(number) < 5 {
		return "", false
	}
	return number, true
}

func (c *Client) FetchVehicle(ctx context.Context, number string) (*VehicleRecord, error) {
	body, err := c.fetch(ctx, c.VehicleBaseURL+number)
	if err != nil {
		return nil, err
	}

	var record VehicleRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !strings.EqualFold(record.Status, "success") {
		return nil, ErrNoRecord
	}
	return &record, nil
}
