package reports

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/amigopos/amigo-pos/pkg/logger"
)

// DigestMailer puerto de salida del correo del digest. La implementación SMTP
// vive en infrastructure/mail.
type DigestMailer interface {
	SendDigest(to []string, subject, htmlBody string) error
}

// DigestUseCase genera y envía el resumen diario de ventas, un correo por
// sucursal. Lo corre el binario dailyreport, normalmente desde cron.
type DigestUseCase struct {
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
	mailer     DigestMailer
	cfg        ReportConfig
	log        *logger.Logger
}

// NewDigestUseCase crea el caso de uso del digest diario.
func NewDigestUseCase(
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	mailer DigestMailer,
	cfg ReportConfig,
	log *logger.Logger,
) *DigestUseCase {
	return &DigestUseCase{
		branchRepo: branchRepo,
		userRepo:   userRepo,
		reportRepo: reportRepo,
		mailer:     mailer,
		cfg:        cfg,
		log:        log,
	}
}

// SendDailyDigests genera y envía el digest del día indicado para cada
// sucursal. Un fallo de envío se registra y no detiene el resto de las
// sucursales; un fallo de datos sí corta la corrida con error. Devuelve
// cuántos correos salieron.
func (uc *DigestUseCase) SendDailyDigests(ctx context.Context, day time.Time) (int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	recipients, err := uc.recipients()
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		uc.log.Warn().Msg("digest: sin destinatarios configurados ni admins activos, nada que enviar")
		return 0, nil
	}

	branches, err := uc.branchRepo.List()
	if err != nil {
		return 0, fmt.Errorf("digest: listar sucursales: %w", err)
	}

	sent := 0
	for _, branch := range branches {
		subject, body, err := uc.buildBranchDigest(ctx, branch, from, to)
		if err != nil {
			return sent, err
		}
		if err := uc.mailer.SendDigest(recipients, subject, body); err != nil {
			uc.log.Error().Err(err).Str("branch", branch.Name).
				Msg("digest: falló el envío, se continúa con la siguiente sucursal")
			continue
		}
		sent++
		uc.log.Info().Str("branch", branch.Name).Int("recipients", len(recipients)).
			Msg("digest enviado")
	}
	return sent, nil
}

// recipients une la lista fija de config con los emails de los admins activos,
// normalizados y sin duplicados.
func (uc *DigestUseCase) recipients() ([]string, error) {
	admins, err := uc.userRepo.ListAdminEmails()
	if err != nil {
		return nil, fmt.Errorf("digest: emails de admins: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, addr := range append(append([]string{}, uc.cfg.Recipients...), admins...) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	sort.Strings(out)
	return out, nil
}

// buildBranchDigest consulta los números del día de la sucursal y arma el
// asunto y el cuerpo HTML del correo.
func (uc *DigestUseCase) buildBranchDigest(ctx context.Context, branch *entity.Branch, from, to time.Time) (string, string, error) {
	summary, err := uc.reportRepo.GetSalesSummary(ctx, branch.ID, from, to)
	if err != nil {
		return "", "", fmt.Errorf("digest %s: resumen del día: %w", branch.Name, err)
	}
	top, err := uc.reportRepo.GetTopProducts(ctx, branch.ID, from, to, topProductsN)
	if err != nil {
		return "", "", fmt.Errorf("digest %s: más vendidos: %w", branch.Name, err)
	}
	low, err := uc.reportRepo.GetLowStock(ctx, branch.ID, uc.cfg.LowStockThreshold)
	if err != nil {
		return "", "", fmt.Errorf("digest %s: bajo stock: %w", branch.Name, err)
	}
	near, err := uc.reportRepo.GetNearExpiry(ctx, branch.ID, uc.cfg.NearExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("digest %s: por vencer: %w", branch.Name, err)
	}

	subject := fmt.Sprintf("Reporte diario %s - %s", branch.Name, from.Format("2006-01-02"))

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s / %s</h2>\n", html.EscapeString(uc.cfg.Pharmacy), html.EscapeString(branch.Name))
	fmt.Fprintf(&b, "<p>Ventas del %s</p>\n", spanishDate(from))

	b.WriteString("<table cellpadding=\"4\">\n")
	fmt.Fprintf(&b, "<tr><td>Ingresos</td><td><b>%s</b></td></tr>\n", uc.money(summary.Revenue))
	fmt.Fprintf(&b, "<tr><td>Utilidad</td><td>%s</td></tr>\n", uc.money(summary.Profit))
	fmt.Fprintf(&b, "<tr><td>Ventas</td><td>%d</td></tr>\n", summary.SaleCount)
	fmt.Fprintf(&b, "<tr><td>Unidades</td><td>%s</td></tr>\n", summary.ItemsSold.String())
	b.WriteString("</table>\n")

	if len(top) > 0 {
		b.WriteString("<h3>Más vendidos</h3>\n<ol>\n")
		for _, t := range top {
			fmt.Fprintf(&b, "<li>%s: %s unidades (%s)</li>\n",
				html.EscapeString(t.ProductName), t.UnitsSold.String(), uc.money(t.Revenue))
		}
		b.WriteString("</ol>\n")
	}

	fmt.Fprintf(&b, "<p>Alertas: %d lotes bajos de stock, %d lotes vencen en los próximos %d días.</p>\n",
		len(low), len(near), uc.cfg.NearExpiryDays)

	return subject, b.String(), nil
}

func (uc *DigestUseCase) money(d decimal.Decimal) string {
	return uc.cfg.Currency + d.StringFixed(2)
}
