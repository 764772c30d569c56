package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"10000", "10,000.00"},
		{"1234567.5", "1,234,567.50"},
		{"999", "999.00"},
		{"-2500.75", "-2,500.75"},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := FormatMoney(d); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildDirectionEmail(t *testing.T) {
	rows := []CommissionRow{
		{Broker: "Maria Silva", Enterprise: "Montecarlo", Unit: "Lote 12", Value: "8,500.00", Installment: "Pago"},
		{Broker: "João Souza", Enterprise: "Aurora", Unit: "Lote 3", Value: "4,200.00", Installment: "Pendente"},
	}
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	subject, body, err := BuildDirectionEmail(42, rows, decimal.NewFromInt(12700), "http://localhost:8080/", now)
	if err != nil {
		t.Fatalf("BuildDirectionEmail: %v", err)
	}
	if want := "[APROVAÇÃO] Lote #42 - 2 comissões - R$ 12,700.00"; subject != want {
		t.Errorf("subject = %q, want %q", subject, want)
	}
	for _, fragment := range []string{"Lote #42", "Maria Silva", "Montecarlo", "Pendente", "10/03/2025 14:30", "Acessar Sistema"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("direction e-mail body missing %q", fragment)
		}
	}
}

func TestBuildFinanceEmail(t *testing.T) {
	rows := []CommissionRow{
		{Broker: "Maria Silva", Enterprise: "Algarve", Unit: "Lote 7", Value: "3,000.00"},
	}
	subject, body, err := BuildFinanceEmail(rows, decimal.NewFromInt(3000), time.Now())
	if err != nil {
		t.Fatalf("BuildFinanceEmail: %v", err)
	}
	if want := "[APROVADO] 1 comissões aprovadas - R$ 3,000.00"; subject != want {
		t.Errorf("subject = %q, want %q", subject, want)
	}
	if strings.Contains(body, "Acessar Sistema") {
		t.Error("finance e-mail should not carry the approval call-to-action")
	}
	if !strings.Contains(body, "liberadas para pagamento") {
		t.Error("finance e-mail missing payment-release intro")
	}
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := &SMTPMailer{host: "smtp.example.com", port: 587}
	if err := m.Send([]string{"a@b.c"}, "s", "<p>x</p>"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
