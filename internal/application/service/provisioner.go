package service

import (
	"context"
	"log"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
)

// AccountProvisioner creates pending service records for every product-backed
// line of a newly issued invoice. Activation happens later, when the invoice
// is paid.
type AccountProvisioner struct {
	serviceRepo repository.ServiceRepository
	productRepo repository.ProductRepository
}

// NewAccountProvisioner creates a new account provisioner
func NewAccountProvisioner(serviceRepo repository.ServiceRepository, productRepo repository.ProductRepository) *AccountProvisioner {
	return &AccountProvisioner{
		serviceRepo: serviceRepo,
		productRepo: productRepo,
	}
}

// ProvisionInvoice sets up one pending service per product line on the invoice
func (p *AccountProvisioner) ProvisionInvoice(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	if invoice.CustomerID == nil {
		log.Printf("Provisioner: invoice %s has no customer, skipping", invoice.Number)
		return nil
	}

	for _, item := range items {
		if item.ProductID == nil {
			continue
		}

		cycle := enum.BillingCycleMonthly
		recurring := item.UnitPrice
		if product, err := p.productRepo.GetByID(ctx, *item.ProductID); err == nil && product != nil {
			if item.UnitPrice.Equal(product.AnnualPrice) && !product.AnnualPrice.IsZero() {
				cycle = enum.BillingCycleAnnually
			}
		}

		svc := &entity.Service{
			CustomerID:      *invoice.CustomerID,
			ProductID:       item.ProductID,
			Label:           item.Name,
			Status:          enum.ServiceStatusPending,
			BillingCycle:    cycle,
			RecurringAmount: recurring,
		}
		if err := p.serviceRepo.Create(ctx, svc); err != nil {
			return err
		}
		log.Printf("Provisioner: pending service %s created for invoice %s", svc.Label, invoice.Number)
	}

	return nil
}
