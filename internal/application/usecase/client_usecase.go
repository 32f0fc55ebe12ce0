package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/application/audit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes. Un cliente CREDIT exige un
// límite de crédito positivo; un CASH lo ignora.
type ClientUseCase struct {
	repo    repository.ClientRepository
	auditor *audit.Emitter
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, auditor *audit.Emitter) *ClientUseCase {
	return &ClientUseCase{repo: repo, auditor: auditor}
}

func validateClientInput(name, class string, limit decimal.Decimal) []string {
	var details []string
	if name == "" {
		details = append(details, "el nombre del cliente es obligatorio")
	}
	switch entity.ClientClass(class) {
	case entity.ClientClassCash:
		// El límite se ignora para contado.
	case entity.ClientClassCredit:
		if !limit.IsPositive() {
			details = append(details, fmt.Sprintf("un cliente CREDIT requiere límite de crédito mayor a 0: %s", limit.StringFixed(2)))
		}
	default:
		details = append(details, fmt.Sprintf("clase de cliente desconocida: %q", class))
	}
	return details
}

// Create crea un cliente.
func (uc *ClientUseCase) Create(userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if details := validateClientInput(in.Name, in.Class, in.CreditLimit); len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	limit := decimal.Zero
	if entity.ClientClass(in.Class) == entity.ClientClassCredit {
		limit = in.CreditLimit.Round(2)
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Class:       entity.ClientClass(in.Class),
		CreditLimit: limit,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	uc.auditor.Emit(userID, "client", client.ID, "create", nil, client)
	resp := toClientResponse(client)
	return &resp, nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	resp := toClientResponse(client)
	return &resp, nil
}

// Update actualiza un cliente. El cambio de clase o de límite afecta ventas
// futuras; los créditos abiertos conservan sus condiciones.
func (uc *ClientUseCase) Update(userID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if details := validateClientInput(in.Name, in.Class, in.CreditLimit); len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	before := *client

	client.Name = in.Name
	client.Class = entity.ClientClass(in.Class)
	if client.Class == entity.ClientClassCredit {
		client.CreditLimit = in.CreditLimit.Round(2)
	} else {
		client.CreditLimit = decimal.Zero
	}
	if in.Active != nil {
		client.Active = *in.Active
	}
	client.UpdatedAt = time.Now()

	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	uc.auditor.Emit(userID, "client", client.ID, "update", &before, client)
	resp := toClientResponse(client)
	return &resp, nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) ([]dto.ClientResponse, error) {
	clients, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		list = append(list, toClientResponse(c))
	}
	return list, nil
}

// Delete elimina (soft delete) un cliente. Sus ventas y créditos históricos
// quedan intactos.
func (uc *ClientUseCase) Delete(userID, id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.auditor.Emit(userID, "client", id, "delete", client, nil)
	return nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Class:       string(c.Class),
		CreditLimit: c.CreditLimit,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
