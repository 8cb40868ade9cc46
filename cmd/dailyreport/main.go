// dailyreport envía por correo el resumen de ventas de un día, una vez por
// sucursal, a los destinatarios configurados más los admins registrados.
// Sin flags reporta el día anterior completo, pensado para correr desde cron
// pasada la medianoche:
//
//	5 0 * * *  /usr/local/bin/dailyreport
//	           /usr/local/bin/dailyreport -date=2026-03-16  (re-corrida puntual)
//
// Un fallo de SMTP en una sucursal se registra y no afecta a las demás; el
// proceso termina en 0. Un fallo de datos (DB caída, fecha inválida) termina
// en código distinto de 0 para que el cron lo reporte.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amigopos/amigo-pos/internal/application/reports"
	inframail "github.com/amigopos/amigo-pos/internal/infrastructure/mail"
	"github.com/amigopos/amigo-pos/internal/infrastructure/postgres"
	"github.com/amigopos/amigo-pos/pkg/config"
	"github.com/amigopos/amigo-pos/pkg/logger"
)

func main() {
	dateFlag := flag.String("date", "", "día a reportar, YYYY-MM-DD (vacío = ayer)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	day := time.Now().AddDate(0, 0, -1)
	if *dateFlag != "" {
		day, err = time.ParseInLocation("2006-01-02", *dateFlag, time.Local)
		if err != nil {
			log.Fatal().Str("date", *dateFlag).Msg("fecha inválida, se espera YYYY-MM-DD")
		}
	}

	if !cfg.SMTP.Enabled() {
		log.Fatal().Msg("SMTP_HOST sin configurar: el reporte diario necesita correo saliente")
	}
	mailer := inframail.NewSender(inframail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lowStock, err := decimal.NewFromString(cfg.Report.LowStockThreshold)
	if err != nil {
		lowStock = decimal.NewFromInt(10)
	}

	digestUC := reports.NewDigestUseCase(
		postgres.NewBranchRepository(pool),
		postgres.NewUserRepository(pool),
		postgres.NewReportRepository(pool),
		mailer,
		reports.ReportConfig{
			LowStockThreshold: lowStock,
			NearExpiryDays:    cfg.Report.NearExpiryDays,
			Currency:          cfg.Report.Currency,
			Pharmacy:          cfg.Report.Pharmacy,
			Recipients:        cfg.Report.Recipients,
		},
		log,
	)

	sent, err := digestUC.SendDailyDigests(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("reporte diario incompleto")
		os.Exit(1)
	}
	log.Info().
		Int("enviados", sent).
		Str("dia", day.Format("2006-01-02")).
		Msg("reporte diario completado")
}
