package receipt

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/storage"
)

// Service renders HTML receipts for ledger entries and archives them
// to object storage. Archiving is best-effort: a storage failure never
// affects the response.
type Service struct {
	ledger   *ledger.Service
	storage  *storage.R2Storage
	currency string
	tmpl     *template.Template
}

func NewService(ledgerSvc *ledger.Service, r2 *storage.R2Storage, currency string) *Service {
	return &Service{
		ledger:   ledgerSvc,
		storage:  r2,
		currency: currency,
		tmpl:     template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

type receiptData struct {
	Reference   string
	Type        string
	Status      string
	Amount      string
	Fee         string
	Total       string
	Description string
	CreatedAt   string
	RenderedAt  string
}

// Render produces the receipt document, restricted to a party of the
// movement unless the caller is an admin.
func (s *Service) Render(ctx context.Context, transactionID, userID uuid.UUID, isAdmin bool) ([]byte, error) {
	t, err := s.ledger.GetForUser(ctx, transactionID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	data := receiptData{
		Reference:   t.Reference,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Amount:      s.money(t.Amount),
		Fee:         s.money(t.Fee),
		Total:       s.money(t.Amount + t.Fee),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format("Jan 2, 2006 15:04 MST"),
		RenderedAt:  time.Now().Format("Jan 2, 2006 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	doc := buf.Bytes()

	if s.storage != nil {
		archived := make([]byte, len(doc))
		copy(archived, doc)
		go s.archive(t.Reference, archived)
	}
	return doc, nil
}

func (s *Service) archive(reference string, doc []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	key := fmt.Sprintf("receipts/%s.html", reference)
	if err := s.storage.Put(ctx, key, doc, "text/html"); err != nil {
		log.Warn().Err(err).Str("reference", reference).Msg("failed to archive receipt")
	}
}

func (s *Service) money(minor int64) string {
	return fmt.Sprintf("%s %.2f", s.currency, float64(minor)/100)
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.Reference}}</title>
<style>
body { font-family: Arial, sans-serif; color: #1a1a2e; max-width: 560px; margin: 40px auto; }
h1 { font-size: 20px; border-bottom: 2px solid #1a1a2e; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
td { padding: 8px 4px; border-bottom: 1px solid #e0e0e0; }
td.label { color: #666; width: 40%; }
.status { text-transform: uppercase; font-weight: bold; }
.footer { margin-top: 24px; font-size: 12px; color: #999; }
</style>
</head>
<body>
<h1>Transaction Receipt</h1>
<table>
<tr><td class="label">Reference</td><td>{{.Reference}}</td></tr>
<tr><td class="label">Type</td><td>{{.Type}}</td></tr>
<tr><td class="label">Status</td><td class="status">{{.Status}}</td></tr>
<tr><td class="label">Amount</td><td>{{.Amount}}</td></tr>
<tr><td class="label">Fee</td><td>{{.Fee}}</td></tr>
<tr><td class="label">Total</td><td>{{.Total}}</td></tr>
<tr><td class="label">Description</td><td>{{.Description}}</td></tr>
<tr><td class="label">Date</td><td>{{.CreatedAt}}</td></tr>
</table>
<p class="footer">Generated {{.RenderedAt}}. This receipt confirms the movement as recorded in the ledger.</p>
</body>
</html>
`
