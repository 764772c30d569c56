package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract mirrors the ERP sales contract plus the financial figures the
// trigger calculation needs (cash value, ITBI transfer tax, amount paid
// to date). The sync collaborator upserts these rows; this service only
// reads them.
type Contract struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ErpID            *int64          `gorm:"index" json:"erp_id"`
	ContractNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_contract_key" json:"contract_number"`
	BuildingID       string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_contract_key" json:"building_id"`
	CompanyID        *int64          `json:"company_id"`
	CustomerName     string          `gorm:"type:varchar(255)" json:"customer_name"`
	ContractDate     string          `gorm:"type:varchar(30)" json:"contract_date"`
	UnitName         string          `gorm:"type:varchar(100)" json:"unit_name"`
	Status           string          `gorm:"type:varchar(50)" json:"status"`
	TotalValue       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_value"`
	CashValue        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cash_value"`
	TransferTaxValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"transfer_tax_value"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount_paid"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Known developments by ERP building id. Buildings outside the table get
// a generic fallback name.
var buildingNames = map[string]string{
	"2003": "Montecarlo",
	"2004": "Ilha dos Açores",
	"2005": "Aurora",
	"2007": "Parque Lorena I",
	"2009": "Parque Lorena II",
	"2010": "Erico Verissimo",
	"2011": "Algarve",
	"2014": "Morada da Coxilha",
}

// BuildingName resolves the development name for an ERP building id.
func BuildingName(buildingID string) string {
	if name, ok := buildingNames[buildingID]; ok {
		return name
	}
	return "Empreendimento " + buildingID
}
