package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	store repository.Store
	clock ports.Clock
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(store repository.Store, clock ports.Clock) *SupplierUseCase {
	return &SupplierUseCase{store: store, clock: clock}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "name es requerido")
	}
	now := uc.clock.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Suppliers().Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone}, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	s, err := uc.store.Suppliers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewError(domain.ErrNotFound, id, "proveedor no encontrado")
	}
	return &dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone}, nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.PartyResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Suppliers().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone})
	}
	return out, nil
}

// CustomerUseCase alta y consulta de clientes.
type CustomerUseCase struct {
	store repository.Store
	clock ports.Clock
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(store repository.Store, clock ports.Clock) *CustomerUseCase {
	return &CustomerUseCase{store: store, clock: clock}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "name es requerido")
	}
	now := uc.clock.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Customers().Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone}, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	c, err := uc.store.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewError(domain.ErrNotFound, id, "cliente no encontrado")
	}
	return &dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone}, nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.PartyResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Customers().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, &dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone})
	}
	return out, nil
}
