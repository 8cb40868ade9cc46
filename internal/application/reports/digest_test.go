package reports_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/amigopos/amigo-pos/pkg/logger"
)

type fakeBranchRepo struct {
	branches []*entity.Branch
	err      error
}

func (f *fakeBranchRepo) Create(*entity.Branch) error            { return nil }
func (f *fakeBranchRepo) GetByID(string) (*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error            { return nil }
func (f *fakeBranchRepo) List() ([]*entity.Branch, error)        { return f.branches, f.err }
func (f *fakeBranchRepo) Delete(string) error                    { return nil }

type fakeAdminEmails struct {
	emails []string
}

func (f *fakeAdminEmails) Create(*entity.User) error               { return nil }
func (f *fakeAdminEmails) GetByID(string) (*entity.User, error)    { return nil, nil }
func (f *fakeAdminEmails) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (f *fakeAdminEmails) Update(*entity.User) error               { return nil }
func (f *fakeAdminEmails) List(int, int) ([]*entity.User, error)   { return nil, nil }
func (f *fakeAdminEmails) ListAdminEmails() ([]string, error)      { return f.emails, nil }

type sentMail struct {
	to      []string
	subject string
	body    string
}

// fakeDigestMailer registra los envíos; los asuntos que contienen failWhen
// fallan con error de SMTP.
type fakeDigestMailer struct {
	failWhen string
	sent     []sentMail
}

func (m *fakeDigestMailer) SendDigest(to []string, subject, body string) error {
	if m.failWhen != "" && strings.Contains(subject, m.failWhen) {
		return errors.New("smtp: conexión rechazada")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func digestUC(branches *fakeBranchRepo, admins *fakeAdminEmails, repo *fakeReportRepo, mailer *fakeDigestMailer, extra ...string) *reports.DigestUseCase {
	cfg := reports.ReportConfig{
		LowStockThreshold: dec(10),
		NearExpiryDays:    60,
		Currency:          "$",
		Pharmacy:          "Farmacia El Amigo",
		Recipients:        extra,
	}
	return reports.NewDigestUseCase(branches, admins, repo, mailer, cfg, logger.NewNop())
}

func dosSucursales() *fakeBranchRepo {
	return &fakeBranchRepo{branches: []*entity.Branch{
		{ID: "b1", Name: "Sucursal Centro"},
		{ID: "b2", Name: "Sucursal Norte"},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// TestSendDailyDigests_UnCorreoPorSucursal es el camino feliz del cierre del
// día: dos sucursales, destinatarios de config más admins, un correo por
// sucursal con asunto "Reporte diario <sucursal> - <fecha>" y los números del
// día en el cuerpo.
// ──────────────────────────────────────────────────────────────────────────────

func TestSendDailyDigests_UnCorreoPorSucursal(t *testing.T) {
	repo := &fakeReportRepo{
		summary: repository.SalesSummaryResult{Revenue: dec(35), Profit: dec(21), ItemsSold: dec(5), SaleCount: 2},
		top: []repository.ProductSalesResult{
			{ProductID: "p1", ProductName: "Ibuprofeno 400mg", UnitsSold: dec(3), Revenue: dec(15)},
		},
		low:  []repository.LowStockResult{{BatchID: "lote-1", ProductName: "Ibuprofeno 400mg", Quantity: dec(2)}},
		near: nil,
	}
	mailer := &fakeDigestMailer{}
	uc := digestUC(dosSucursales(), &fakeAdminEmails{emails: []string{"gerente@farmacia.test"}}, repo, mailer,
		"Duenio@farmacia.test", "gerente@farmacia.test")

	sent, err := uc.SendDailyDigests(context.Background(), day(2026, 3, 16))

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, mailer.sent, 2)

	primero := mailer.sent[0]
	assert.Equal(t, "Reporte diario Sucursal Centro - 2026-03-16", primero.subject)
	assert.Equal(t, "Reporte diario Sucursal Norte - 2026-03-16", mailer.sent[1].subject)

	// Destinatarios: config + admins, en minúsculas y sin duplicados.
	assert.Equal(t, []string{"duenio@farmacia.test", "gerente@farmacia.test"}, primero.to)

	assert.Contains(t, primero.body, "$35.00", "los ingresos van con símbolo monetario")
	assert.Contains(t, primero.body, "Ibuprofeno 400mg")
	assert.Contains(t, primero.body, "16 de marzo de 2026")
	assert.Contains(t, primero.body, "1 lotes bajos de stock")
}

func TestSendDailyDigests_FalloDeEnvioNoDetieneElResto(t *testing.T) {
	repo := &fakeReportRepo{}
	mailer := &fakeDigestMailer{failWhen: "Sucursal Centro"}
	uc := digestUC(dosSucursales(), &fakeAdminEmails{}, repo, mailer, "admin@farmacia.test")

	sent, err := uc.SendDailyDigests(context.Background(), day(2026, 3, 16))

	require.NoError(t, err, "un SMTP caído no es un error de la corrida")
	assert.Equal(t, 1, sent, "la segunda sucursal igual recibe su reporte")
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].subject, "Sucursal Norte")
}

func TestSendDailyDigests_SinDestinatariosNoEnviaNada(t *testing.T) {
	mailer := &fakeDigestMailer{}
	uc := digestUC(dosSucursales(), &fakeAdminEmails{}, &fakeReportRepo{}, mailer)

	sent, err := uc.SendDailyDigests(context.Background(), day(2026, 3, 16))

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, mailer.sent)
}

func TestSendDailyDigests_ErrorDeDatosCortaLaCorrida(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("conexión perdida")}
	mailer := &fakeDigestMailer{}
	uc := digestUC(dosSucursales(), &fakeAdminEmails{}, repo, mailer, "admin@farmacia.test")

	_, err := uc.SendDailyDigests(context.Background(), day(2026, 3, 16))

	require.Error(t, err, "sin datos no hay reporte que mandar: el binario debe salir con código != 0")
	assert.Empty(t, mailer.sent)
}
