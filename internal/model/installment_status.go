package model

import "strings"

// Canonical installment status labels. The ERP reports installment
// payment states in a mix of English and Portuguese spellings; all known
// variants are enumerated here so the mapping stays testable instead of
// relying on substring checks.
const (
	InstallmentPaid      = "paid"
	InstallmentPending   = "pending"
	InstallmentOverdue   = "overdue"
	InstallmentOpen      = "open"
	InstallmentPartial   = "partial"
	InstallmentCancelled = "cancelled"
)

var installmentStatusTable = map[string]string{
	"paidout":  InstallmentPaid,
	"paid out": InstallmentPaid,
	"paid":     InstallmentPaid,
	"pago":     InstallmentPaid,
	"paga":     InstallmentPaid,

	"pending":  InstallmentPending,
	"pendente": InstallmentPending,

	"overdue": InstallmentOverdue,
	"vencido": InstallmentOverdue,
	"vencida": InstallmentOverdue,

	"open":   InstallmentOpen,
	"aberto": InstallmentOpen,
	"aberta": InstallmentOpen,

	"partial": InstallmentPartial,
	"parcial": InstallmentPartial,

	"cancelled": InstallmentCancelled,
	"canceled":  InstallmentCancelled,
	"cancelado": InstallmentCancelled,
	"cancelada": InstallmentCancelled,
}

// Display translations for canonical labels, used on notification
// e-mails and contract info responses.
var installmentStatusDisplay = map[string]string{
	InstallmentPaid:      "Pago",
	InstallmentPending:   "Pendente",
	InstallmentOverdue:   "Vencido",
	InstallmentOpen:      "Aberto",
	InstallmentPartial:   "Parcial",
	InstallmentCancelled: "Cancelado",
}

// CanonicalInstallmentStatus maps a raw ERP label to its canonical
// status. Unknown labels pass through lowercased and trimmed — the
// listing filters still work on exact matches and nothing is dropped.
func CanonicalInstallmentStatus(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := installmentStatusTable[key]; ok {
		return canonical
	}
	return key
}

// InstallmentStatusOption pairs a raw ERP label with its canonical
// status and display translation, for filter dropdowns.
type InstallmentStatusOption struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Label     string `json:"label"`
}

// InstallmentStatusDisplay returns the localized display label for a raw
// ERP status. Unknown labels pass through untranslated; empty input
// yields "Não informado".
func InstallmentStatusDisplay(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Não informado"
	}
	canonical := CanonicalInstallmentStatus(raw)
	if display, ok := installmentStatusDisplay[canonical]; ok {
		return display
	}
	return raw
}
