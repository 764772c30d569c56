package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRow is one line of the consolidated notification table.
type CommissionRow struct {
	Broker      string
	Enterprise  string
	Unit        string
	Value       string
	Installment string
}

type batchEmailData struct {
	Title    string
	Intro    string
	Accent   string
	LotID    int64
	Count    int
	Total    string
	SentAt   string
	Rows     []CommissionRow
	ShowLot  bool
	Footer   string
	LinkHome string
}

var batchTemplate = template.Must(template.New("batch").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 800px; margin: 0 auto; padding: 20px;">
    <h2 style="color: {{.Accent}};">{{.Title}}</h2>
    <p>Olá,</p>
    <p>{{.Intro}}</p>
    <div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
      {{if .ShowLot}}<h3>Resumo do Lote #{{.LotID}}</h3>{{else}}<h3>Resumo</h3>{{end}}
      <p><strong>Total de comissões:</strong> {{.Count}}</p>
      <p><strong>Valor total:</strong> R$ {{.Total}}</p>
      <p><strong>Data:</strong> {{.SentAt}}</p>
    </div>
    <h3>Detalhamento das Comissões</h3>
    <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
      <thead>
        <tr style="background: {{.Accent}}; color: white;">
          <th style="padding: 10px; text-align: left;">Corretor</th>
          <th style="padding: 10px; text-align: left;">Empreendimento</th>
          <th style="padding: 10px; text-align: left;">Unidade</th>
          <th style="padding: 10px; text-align: left;">Valor</th>
          {{if .ShowLot}}<th style="padding: 10px; text-align: left;">Status</th>{{end}}
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}<tr>
          <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Broker}}</td>
          <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Enterprise}}</td>
          <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Unit}}</td>
          <td style="padding: 10px; border-bottom: 1px solid #eee;">R$ {{.Value}}</td>
          {{if $.ShowLot}}<td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Installment}}</td>{{end}}
        </tr>
        {{end}}
      </tbody>
    </table>
    {{if .LinkHome}}<p>Para aprovar ou rejeitar estas comissões, acesse o sistema:</p>
    <a href="{{.LinkHome}}" style="display: inline-block; background: {{.Accent}}; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Acessar Sistema</a>{{end}}
    <p style="margin-top: 30px; color: #666; font-size: 12px;">{{.Footer}}</p>
  </div>
</body>
</html>`))

// BuildDirectionEmail renders the single consolidated submission e-mail
// sent to the direction list: one message for the whole lot, never one
// per commission.
func BuildDirectionEmail(lotID int64, rows []CommissionRow, total decimal.Decimal, baseURL string, now time.Time) (subject, body string, err error) {
	subject = fmt.Sprintf("[APROVAÇÃO] Lote #%d - %d comissões - R$ %s", lotID, len(rows), FormatMoney(total))
	data := batchEmailData{
		Title:    "Aprovação de Comissões",
		Intro:    "Um novo lote de comissões foi enviado para sua aprovação.",
		Accent:   "#FE5009",
		LotID:    lotID,
		Count:    len(rows),
		Total:    FormatMoney(total),
		SentAt:   now.Format("02/01/2006 15:04"),
		Rows:     rows,
		ShowLot:  true,
		Footer:   "Este é um e-mail automático. Por favor, não responda.",
		LinkHome: baseURL,
	}
	body, err = renderBatch(data)
	return subject, body, err
}

// BuildFinanceEmail renders the consolidated approval notification sent
// to the finance list once a batch has at least one approved commission.
func BuildFinanceEmail(rows []CommissionRow, total decimal.Decimal, now time.Time) (subject, body string, err error) {
	subject = fmt.Sprintf("[APROVADO] %d comissões aprovadas - R$ %s", len(rows), FormatMoney(total))
	data := batchEmailData{
		Title:  "Comissões Aprovadas",
		Intro:  "As seguintes comissões foram aprovadas pela direção e estão liberadas para pagamento.",
		Accent: "#4caf50",
		Count:  len(rows),
		Total:  FormatMoney(total),
		SentAt: now.Format("02/01/2006 15:04"),
		Rows:   rows,
		Footer: "Este é um e-mail automático. Por favor, não responda.",
	}
	body, err = renderBatch(data)
	return subject, body, err
}

func renderBatch(data batchEmailData) (string, error) {
	var buf bytes.Buffer
	if err := batchTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render e-mail template: %w", err)
	}
	return buf.String(), nil
}

// FormatMoney renders a decimal with two places and thousands
// separators, e.g. 1234567.5 -> "1,234,567.50".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}
