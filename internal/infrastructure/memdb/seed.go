package memdb

import (
	"fmt"

	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// SeedAdmin crea el usuario administrador del mock.
func (s *Store) SeedAdmin(email, password string) (entity.User, error) {
	u, err := s.CreateUser(entity.User{Name: "Administrador", Email: email, Role: entity.RoleAdmin}, password)
	if err != nil {
		return entity.User{}, fmt.Errorf("seed admin: %w", err)
	}
	return u, nil
}

// SeedSample carga un condominio de ejemplo con agenda para el día de hoy.
func (s *Store) SeedSample() {
	s.SetLocations(
		[]entity.State{{ID: "35", UF: "SP", Name: "São Paulo"}, {ID: "33", UF: "RJ", Name: "Rio de Janeiro"}, {ID: "31", UF: "MG", Name: "Minas Gerais"}},
		[]entity.City{
			{ID: "3550308", Name: "São Paulo", UF: "SP"},
			{ID: "3509502", Name: "Campinas", UF: "SP"},
			{ID: "3304557", Name: "Rio de Janeiro", UF: "RJ"},
			{ID: "3106200", Name: "Belo Horizonte", UF: "MG"},
		},
	)

	today := s.Now().Format("2006-01-02")
	now := s.Timestamp()

	company := s.Companies.Insert(entity.Company{Name: "Residencial Jardim das Flores", CNPJ: "11222333000181", City: "Campinas", State: "SP", CreatedAt: now})
	a101 := s.Residences.Insert(entity.Residence{Block: "A", Number: "101", Type: "apartamento", CompanyID: company.ID, Owner: "Marcos Souza", CreatedAt: now})
	b202 := s.Residences.Insert(entity.Residence{Block: "B", Number: "202", Type: "apartamento", CompanyID: company.ID, Owner: "Lúcia Prado", CreatedAt: now})
	s.Residents.Insert(entity.Resident{Name: "Marcos Souza", CPF: "52998224725", Phone: "11 99999-0001", ResidenceID: a101.ID, CreatedAt: now})
	s.Residents.Insert(entity.Resident{Name: "Lúcia Prado", CPF: "12345678909", Phone: "11 99999-0002", ResidenceID: b202.ID, CreatedAt: now})
	s.Employees.Insert(entity.Employee{Name: "José Almeida", CPF: "11144477735", Position: "porteiro", StartDate: "2024-02-01", CreatedAt: now})

	ana := s.Guests.Insert(entity.Guest{Name: "Ana Beatriz", CPF: "39053344705", Plate: "ABC1D23", CreatedAt: now})
	joao := s.Guests.Insert(entity.Guest{Name: "João Pedro", CPF: "71428793860", CreatedAt: now})
	s.Appointments.Insert(entity.Appointment{ResidenceID: a101.ID, GuestIDs: []entity.ID{ana.ID, joao.ID}, StartDate: today, EndDate: today, Notes: "Aniversário", CreatedAt: now})
	s.Appointments.Insert(entity.Appointment{ResidenceID: b202.ID, GuestIDs: []entity.ID{ana.ID}, StartDate: today, EndDate: today, CreatedAt: now})

	s.Providers.Insert(entity.ServiceProvider{Name: "Carlos Lima", Company: "Net Fibra", Service: "internet", ResidenceID: b202.ID, StartDate: today, EndDate: today, CreatedAt: now})
	s.Deliveries.Insert(entity.Delivery{ResidenceID: a101.ID, Recipient: "Marcos Souza", Carrier: "Correios", TrackingCode: "BR123456789BR", Status: entity.DeliveryStatusReceived, ReceivedAt: now, CreatedAt: now})
}
