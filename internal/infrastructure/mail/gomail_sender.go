package mail

import (
	"fmt"
	"html"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/amigopos/amigo-pos/internal/application/dto"
)

// Config parámetros SMTP del envío de correos.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // remitente, ej: "Farmacia El Amigo <no-responder@farmacia.test>"
}

// Sender envía correos por SMTP con gomail. Implementa los puertos
// sales.ReceiptMailer y reports.DigestMailer.
type Sender struct {
	cfg Config
}

// NewSender construye el sender. No mantiene conexión abierta: gomail marca y
// cuelga por mensaje, suficiente para el volumen de correo de una farmacia.
func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// SendReceipt envía el recibo de una venta al correo del cliente, con el PDF
// adjunto cuando está disponible.
func (s *Sender) SendReceipt(to string, receipt *dto.ReceiptResponse, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Recibo de compra %s", receipt.SaleID))
	m.SetBody("text/html", receiptBody(receipt))
	if len(pdf) > 0 {
		m.Attach(fmt.Sprintf("recibo_%s.pdf", receipt.SaleID), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}
	return s.dialAndSend(m)
}

// SendDigest envía el resumen diario a la lista de destinatarios.
func (s *Sender) SendDigest(to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialAndSend(m)
}

func (s *Sender) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	return nil
}

// receiptBody arma el cuerpo HTML del recibo. El PDF adjunto lleva el formato
// completo; el cuerpo es el resumen legible para quien no abre adjuntos.
func receiptBody(r *dto.ReceiptResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(r.Pharmacy))
	fmt.Fprintf(&b, "<p>%s - %s</p>\n", html.EscapeString(r.BranchName), r.Date)

	b.WriteString("<table cellpadding=\"4\">\n")
	for _, it := range r.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s x %s</td><td>%s</td></tr>\n",
			html.EscapeString(it.ProductName), it.Quantity.String(),
			it.UnitPrice.StringFixed(2), it.LineTotal.StringFixed(2))
	}
	b.WriteString("</table>\n")

	fmt.Fprintf(&b, "<p><b>Total: %s %s</b></p>\n", r.Currency, r.Total.StringFixed(2))
	if !r.CashReceived.IsZero() {
		fmt.Fprintf(&b, "<p>Recibido %s, vuelto %s</p>\n", r.CashReceived.StringFixed(2), r.Change.StringFixed(2))
	}
	if r.CashierName != "" {
		fmt.Fprintf(&b, "<p>Atendió: %s</p>\n", html.EscapeString(r.CashierName))
	}
	return b.String()
}
