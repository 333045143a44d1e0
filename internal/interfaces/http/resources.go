package http

import (
	"strings"

	"github.com/jhoicas/portaria-api/internal/application/dto"
	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
	"github.com/jhoicas/portaria-api/internal/infrastructure/memdb"
)

// Funciones build: copian el DTO sobre la entidad actual. En altas cur es el valor cero
// y se completa CreatedAt.

func buildCompany(in dto.CompanyRequest, cur entity.Company, now string) entity.Company {
	cur.Name, cur.CNPJ, cur.Email, cur.Phone = in.Name, in.CNPJ, in.Email, in.Phone
	cur.Address, cur.City, cur.State = in.Address, in.City, strings.ToUpper(in.State)
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildResidence(in dto.ResidenceRequest, cur entity.Residence, now string) entity.Residence {
	cur.Block, cur.Number, cur.Type, cur.Owner = in.Block, in.Number, in.Type, in.Owner
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildResident(in dto.ResidentRequest, cur entity.Resident, now string) entity.Resident {
	cur.Name, cur.CPF, cur.Email, cur.Phone, cur.ResidenceID = in.Name, in.CPF, in.Email, in.Phone, in.ResidenceID
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildEmployee(in dto.EmployeeRequest, cur entity.Employee, now string) entity.Employee {
	cur.Name, cur.CPF, cur.Email, cur.Phone = in.Name, in.CPF, in.Email, in.Phone
	cur.Position, cur.StartDate = in.Position, in.StartDate
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildGuest(in dto.GuestRequest, cur entity.Guest, now string) entity.Guest {
	cur.Name, cur.CPF, cur.RG, cur.Phone = in.Name, in.CPF, in.RG, in.Phone
	cur.Plate = strings.ToUpper(strings.TrimSpace(in.Plate))
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildAppointment(in dto.AppointmentRequest, cur entity.Appointment, now string) entity.Appointment {
	cur.ResidenceID, cur.StartDate, cur.EndDate, cur.Notes = in.ResidenceID, in.StartDate, in.EndDate, in.Notes
	cur.GuestIDs = append([]entity.ID(nil), in.GuestIDs...)
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildProvider(in dto.ProviderRequest, cur entity.ServiceProvider, now string) entity.ServiceProvider {
	cur.Name, cur.CPF, cur.CNPJ, cur.Company = in.Name, in.CPF, in.CNPJ, in.Company
	cur.Service, cur.Phone, cur.ResidenceID = in.Service, in.Phone, in.ResidenceID
	cur.StartDate, cur.EndDate = in.StartDate, in.EndDate
	if cur.CreatedAt == "" {
		cur.CreatedAt = now
	}
	return cur
}

func buildDelivery(in dto.DeliveryRequest, cur entity.Delivery, now string) entity.Delivery {
	cur.ResidenceID, cur.Recipient, cur.Carrier, cur.TrackingCode = in.ResidenceID, in.Recipient, in.Carrier, in.TrackingCode
	cur.Status = in.Status
	if cur.Status == "" {
		cur.Status = entity.DeliveryStatusReceived
	}
	if cur.CreatedAt == "" {
		cur.CreatedAt, cur.ReceivedAt = now, now
	}
	if cur.Status == entity.DeliveryStatusDelivered && cur.DeliveredAt == "" {
		cur.DeliveredAt = now
	}
	return cur
}

// residenceExists valida la referencia residence_id contra la tabla.
func residenceExists(store *memdb.Store, id entity.ID) error {
	if id == "" {
		return nil
	}
	if _, err := store.Residences.Get(id); err != nil {
		return &domain.ValidationError{Fields: map[string]string{"residence_id": "Residência não encontrada"}}
	}
	return nil
}

// checkAppointment exige que la residencia y todos los visitantes existan.
func checkAppointment(store *memdb.Store) func(dto.AppointmentRequest) error {
	return func(in dto.AppointmentRequest) error {
		if err := residenceExists(store, in.ResidenceID); err != nil {
			return err
		}
		for _, id := range in.GuestIDs {
			if _, err := store.Guests.Get(id); err != nil {
				return &domain.ValidationError{Fields: map[string]string{"guest_ids": "Visitante não encontrado: " + string(id)}}
			}
		}
		return nil
	}
}

func checkResident(store *memdb.Store) func(dto.ResidentRequest) error {
	return func(in dto.ResidentRequest) error { return residenceExists(store, in.ResidenceID) }
}

func checkProvider(store *memdb.Store) func(dto.ProviderRequest) error {
	return func(in dto.ProviderRequest) error { return residenceExists(store, in.ResidenceID) }
}

func checkDelivery(store *memdb.Store) func(dto.DeliveryRequest) error {
	return func(in dto.DeliveryRequest) error { return residenceExists(store, in.ResidenceID) }
}
