package reports

import (
	"context"
	"fmt"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// AlertsUseCase expone las alertas operativas: lotes que piden reposición y
// lotes con existencias por vencer.
type AlertsUseCase struct {
	reportRepo repository.ReportRepository
	cfg        ReportConfig
}

// NewAlertsUseCase crea el caso de uso de alertas.
func NewAlertsUseCase(reportRepo repository.ReportRepository, cfg ReportConfig) *AlertsUseCase {
	return &AlertsUseCase{reportRepo: reportRepo, cfg: cfg}
}

// Alerts devuelve ambos listados para la sucursal (vacía = todas). Las listas
// vacías se devuelven como [] y no como null.
func (uc *AlertsUseCase) Alerts(ctx context.Context, branchID string) (*dto.AlertsResponse, error) {
	low, err := uc.reportRepo.GetLowStock(ctx, branchID, uc.cfg.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("alertas: bajo stock: %w", err)
	}
	near, err := uc.reportRepo.GetNearExpiry(ctx, branchID, uc.cfg.NearExpiryDays)
	if err != nil {
		return nil, fmt.Errorf("alertas: por vencer: %w", err)
	}

	resp := &dto.AlertsResponse{
		LowStock:   make([]dto.LowStockAlertDTO, 0, len(low)),
		NearExpiry: make([]dto.NearExpiryAlertDTO, 0, len(near)),
	}
	for _, r := range low {
		resp.LowStock = append(resp.LowStock, dto.LowStockAlertDTO{
			BatchID:     r.BatchID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			BranchName:  r.BranchName,
			BatchCode:   r.BatchCode,
			Quantity:    r.Quantity,
		})
	}
	for _, r := range near {
		resp.NearExpiry = append(resp.NearExpiry, dto.NearExpiryAlertDTO{
			BatchID:     r.BatchID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			BranchName:  r.BranchName,
			BatchCode:   r.BatchCode,
			ExpiryDate:  r.ExpiryDate.Format("2006-01-02"),
			Quantity:    r.Quantity,
		})
	}
	return resp, nil
}
