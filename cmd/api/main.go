package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/amigopos/amigo-pos/internal/application/auth"
	"github.com/amigopos/amigo-pos/internal/application/inventory"
	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/application/sales"
	"github.com/amigopos/amigo-pos/internal/application/usecase"
	inframail "github.com/amigopos/amigo-pos/internal/infrastructure/mail"
	infrapdf "github.com/amigopos/amigo-pos/internal/infrastructure/pdf"
	"github.com/amigopos/amigo-pos/internal/infrastructure/postgres"
	httpRouter "github.com/amigopos/amigo-pos/internal/interfaces/http"
	"github.com/amigopos/amigo-pos/pkg/config"
	"github.com/amigopos/amigo-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// SMTP: sin host configurado el mailer queda nil y los envíos se omiten.
	var receiptMailer sales.ReceiptMailer
	if cfg.SMTP.Enabled() {
		receiptMailer = inframail.NewSender(inframail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn().Msg("SMTP sin configurar: recibos por correo deshabilitados")
	}

	lowStock, err := decimal.NewFromString(cfg.Report.LowStockThreshold)
	if err != nil {
		log.Warn().Str("valor", cfg.Report.LowStockThreshold).Msg("umbral de stock bajo inválido, usando 10")
		lowStock = decimal.NewFromInt(10)
	}
	reportCfg := reports.ReportConfig{
		LowStockThreshold: lowStock,
		NearExpiryDays:    cfg.Report.NearExpiryDays,
		Currency:          cfg.Report.Currency,
		Pharmacy:          cfg.Report.Pharmacy,
		Recipients:        cfg.Report.Recipients,
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	receiptUC := sales.NewReceiptUseCase(
		saleRepo, productRepo, branchRepo, userRepo, customerRepo, batchRepo,
		pdfGenerator, receiptMailer,
		sales.ReceiptConfig{Pharmacy: cfg.Report.Pharmacy, Currency: cfg.Report.Currency},
	)
	recordSaleUC := sales.NewRecordSaleUseCase(
		txRunner, productRepo, branchRepo, userRepo, saleRepo, customerRepo, batchRepo, receiptUC,
	)
	customerUC := sales.NewCustomerUseCase(customerRepo)
	stockUC := inventory.NewStockUseCase(txRunner, productRepo, branchRepo, supplierRepo, batchRepo, movementRepo)

	productUC := usecase.NewProductUseCase(productRepo, batchRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo, branchRepo)

	reporterUC := reports.NewReporterUseCase(reportRepo)
	exportUC := reports.NewExportUseCase(reporterUC, saleRepo, reportRepo)
	dashboardUC := reports.NewDashboardUseCase(reportRepo, reportCfg)
	alertsUC := reports.NewAlertsUseCase(reportRepo, reportCfg)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, activityRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Amigo POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		BranchUC:     branchUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		StockUC:      stockUC,
		RecordSaleUC: recordSaleUC,
		ReceiptUC:    receiptUC,
		ReporterUC:   reporterUC,
		ExportUC:     exportUC,
		DashboardUC:  dashboardUC,
		AlertsUC:     alertsUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
