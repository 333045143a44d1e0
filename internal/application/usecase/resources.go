package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/application/ports"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// Endpoints de los recursos CRUD.
const (
	ResidencesEndpoint   = "/residence"
	ResidentsEndpoint    = "/resident"
	EmployeesEndpoint    = "/employees"
	GuestsEndpoint       = "/visitors"
	AppointmentsEndpoint = "/appointments"
	ProvidersEndpoint    = "/provider"
	DeliveriesEndpoint   = "/deliveries"
	CompaniesEndpoint    = "/company"
)

type (
	Residences   = Resource[entity.Residence, dto.ResidenceRequest]
	Residents    = Resource[entity.Resident, dto.ResidentRequest]
	Employees    = Resource[entity.Employee, dto.EmployeeRequest]
	Guests       = Resource[entity.Guest, dto.GuestRequest]
	Appointments = Resource[entity.Appointment, dto.AppointmentRequest]
	Deliveries   = Resource[entity.Delivery, dto.DeliveryRequest]
	Companies    = Resource[entity.Company, dto.CompanyRequest]
)

func NewResidences(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Residences {
	return NewResource[entity.Residence, dto.ResidenceRequest](api, n, ResourceConfig[entity.Residence]{
		Endpoint: ResidencesEndpoint, Label: "Residência", Key: func(e entity.Residence) string { return string(e.ID) },
	}, log)
}

func NewResidents(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Residents {
	return NewResource[entity.Resident, dto.ResidentRequest](api, n, ResourceConfig[entity.Resident]{
		Endpoint: ResidentsEndpoint, Label: "Morador", Key: func(e entity.Resident) string { return string(e.ID) },
	}, log)
}

func NewEmployees(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Employees {
	return NewResource[entity.Employee, dto.EmployeeRequest](api, n, ResourceConfig[entity.Employee]{
		Endpoint: EmployeesEndpoint, Label: "Funcionário", Key: func(e entity.Employee) string { return string(e.ID) },
	}, log)
}

func NewGuests(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Guests {
	return NewResource[entity.Guest, dto.GuestRequest](api, n, ResourceConfig[entity.Guest]{
		Endpoint: GuestsEndpoint, Label: "Visitante", Key: func(e entity.Guest) string { return string(e.ID) },
	}, log)
}

func NewAppointments(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Appointments {
	return NewResource[entity.Appointment, dto.AppointmentRequest](api, n, ResourceConfig[entity.Appointment]{
		Endpoint: AppointmentsEndpoint, Label: "Agendamento", Key: func(e entity.Appointment) string { return string(e.ID) },
	}, log)
}

func NewDeliveries(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Deliveries {
	return NewResource[entity.Delivery, dto.DeliveryRequest](api, n, ResourceConfig[entity.Delivery]{
		Endpoint: DeliveriesEndpoint, Label: "Encomenda", Key: func(e entity.Delivery) string { return string(e.ID) },
	}, log)
}

func NewCompanies(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Companies {
	return NewResource[entity.Company, dto.CompanyRequest](api, n, ResourceConfig[entity.Company]{
		Endpoint: CompaniesEndpoint, Label: "Condomínio", Key: func(e entity.Company) string { return string(e.ID) },
	}, log)
}

// Providers prestadores de servicios: CRUD más el directorio completo sin paginar.
type Providers struct {
	*Resource[entity.ServiceProvider, dto.ProviderRequest]
}

func NewProviders(api ports.APIRequester, n ports.Notifier, log zerolog.Logger) *Providers {
	return &Providers{NewResource[entity.ServiceProvider, dto.ProviderRequest](api, n, ResourceConfig[entity.ServiceProvider]{
		Endpoint: ProvidersEndpoint, Label: "Prestador", Key: func(e entity.ServiceProvider) string { return string(e.ID) },
	}, log)}
}

// Directory GET /provider/list-providers (lista completa para selects).
func (p *Providers) Directory(ctx context.Context) ([]entity.ServiceProvider, error) {
	return fetchList[entity.ServiceProvider](ctx, p.api, ProvidersEndpoint+"/list-providers")
}

// fetchList acepta tanto un arreglo JSON como un objeto { "data": [...] }.
func fetchList[T any](ctx context.Context, api ports.APIRequester, endpoint string) ([]T, error) {
	var raw json.RawMessage
	if err := api.Request(ctx, http.MethodGet, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	var list []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidResponse, endpoint, err)
		}
		return list, nil
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidResponse, endpoint, err)
	}
	if wrapped.Data == nil {
		return []T{}, nil
	}
	return wrapped.Data, nil
}
