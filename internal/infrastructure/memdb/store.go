package memdb

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portaria-api/internal/domain"
	"github.com/jhoicas/portaria-api/internal/domain/entity"
)

// UserRecord usuario con su hash de contraseña.
type UserRecord struct {
	entity.User
	PasswordHash string
}

type gateRecord struct {
	status    string
	enteredAt string
	exitedAt  string
}

// Store tablas del servidor mock.
type Store struct {
	Users        *Table[UserRecord]
	Companies    *Table[entity.Company]
	Residences   *Table[entity.Residence]
	Residents    *Table[entity.Resident]
	Employees    *Table[entity.Employee]
	Guests       *Table[entity.Guest]
	Appointments *Table[entity.Appointment]
	Providers    *Table[entity.ServiceProvider]
	Deliveries   *Table[entity.Delivery]

	now func() time.Time

	mu     sync.Mutex
	gate   map[string]gateRecord // llave "<appointmentId>-<visitorId>"
	states []entity.State
	cities []entity.City
}

// New crea un almacenamiento vacío. now nil usa time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		Users: NewTable("user",
			func(u UserRecord) entity.ID { return u.ID }, func(u *UserRecord, id entity.ID) { u.ID = id },
			func(u UserRecord) string { return u.Name + " " + u.Email }),
		Companies: NewTable("company",
			func(c entity.Company) entity.ID { return c.ID }, func(c *entity.Company, id entity.ID) { c.ID = id },
			func(c entity.Company) string { return c.Name + " " + c.CNPJ + " " + c.City }),
		Residences: NewTable("residence",
			func(r entity.Residence) entity.ID { return r.ID }, func(r *entity.Residence, id entity.ID) { r.ID = id },
			func(r entity.Residence) string { return r.Block + " " + r.Number + " " + r.Owner }),
		Residents: NewTable("resident",
			func(r entity.Resident) entity.ID { return r.ID }, func(r *entity.Resident, id entity.ID) { r.ID = id },
			func(r entity.Resident) string { return r.Name + " " + r.CPF + " " + r.Email }),
		Employees: NewTable("employee",
			func(e entity.Employee) entity.ID { return e.ID }, func(e *entity.Employee, id entity.ID) { e.ID = id },
			func(e entity.Employee) string { return e.Name + " " + e.CPF + " " + e.Position }),
		Guests: NewTable("guest",
			func(g entity.Guest) entity.ID { return g.ID }, func(g *entity.Guest, id entity.ID) { g.ID = id },
			func(g entity.Guest) string { return g.Name + " " + g.CPF + " " + g.Plate }),
		Appointments: NewTable("appointment",
			func(a entity.Appointment) entity.ID { return a.ID }, func(a *entity.Appointment, id entity.ID) { a.ID = id },
			func(a entity.Appointment) string { return a.StartDate + " " + a.EndDate + " " + a.Notes }),
		Providers: NewTable("provider",
			func(p entity.ServiceProvider) entity.ID { return p.ID }, func(p *entity.ServiceProvider, id entity.ID) { p.ID = id },
			func(p entity.ServiceProvider) string { return p.Name + " " + p.Company + " " + p.Service }),
		Deliveries: NewTable("delivery",
			func(d entity.Delivery) entity.ID { return d.ID }, func(d *entity.Delivery, id entity.ID) { d.ID = id },
			func(d entity.Delivery) string { return d.Recipient + " " + d.Carrier + " " + d.TrackingCode }),
		now:  now,
		gate: make(map[string]gateRecord),
	}
}

// Now hora del servidor.
func (s *Store) Now() time.Time { return s.now() }

// Timestamp hora del servidor en RFC 3339.
func (s *Store) Timestamp() string { return s.now().UTC().Format(time.RFC3339) }

// ── Usuarios ──────────────────────────────────────────────────────────────────

// CreateUser guarda el usuario con la contraseña hasheada con bcrypt.
func (s *Store) CreateUser(u entity.User, password string) (entity.User, error) {
	if len(s.Users.Find(func(r UserRecord) bool { return strings.EqualFold(r.Email, u.Email) })) > 0 {
		return entity.User{}, fmt.Errorf("user %s: %w", u.Email, domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}
	rec := s.Users.Insert(UserRecord{User: u, PasswordHash: string(hash)})
	return rec.User, nil
}

// Authenticate verifica email y contraseña.
func (s *Store) Authenticate(email, password string) (entity.User, error) {
	found := s.Users.Find(func(r UserRecord) bool { return strings.EqualFold(r.Email, strings.TrimSpace(email)) })
	if len(found) == 0 {
		return entity.User{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found[0].PasswordHash), []byte(password)); err != nil {
		return entity.User{}, domain.ErrUnauthorized
	}
	return found[0].User, nil
}

// UserByID busca un usuario.
func (s *Store) UserByID(id entity.ID) (entity.User, error) {
	rec, err := s.Users.Get(id)
	return rec.User, err
}

// UpdateUser actualiza el perfil; password vacío conserva el actual.
func (s *Store) UpdateUser(id entity.ID, name, email, phone, password string) (entity.User, error) {
	var hash string
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, err
		}
		hash = string(b)
	}
	rec, err := s.Users.Update(id, func(r *UserRecord) {
		r.Name, r.Email, r.Phone = name, email, phone
		if hash != "" {
			r.PasswordHash = hash
		}
	})
	return rec.User, err
}

// ── Agenda y portaria ─────────────────────────────────────────────────────────

// Schedule agenda: una entrada por visitante de cada agendamiento.
func (s *Store) Schedule(page, perPage int, search string) entity.Page[entity.ScheduleEntry] {
	var entries []entity.ScheduleEntry
	for _, a := range s.Appointments.All() {
		residence, _ := s.Residences.Get(a.ResidenceID)
		responsibles := s.responsibles(a.ResidenceID)
		for _, gid := range a.GuestIDs {
			guest, err := s.Guests.Get(gid)
			if err != nil {
				continue
			}
			e := entity.ScheduleEntry{
				ID:           a.ID,
				VisitorID:    guest.ID,
				VisitorName:  guest.Name,
				VisitorCPF:   guest.CPF,
				Residence:    residenceLabel(residence),
				StartDate:    a.StartDate,
				EndDate:      a.EndDate,
				Status:       entity.ScheduleStatusPending,
				Responsibles: responsibles,
			}
			s.mu.Lock()
			if g, ok := s.gate[e.Key()]; ok {
				e.Status, e.EnteredAt, e.ExitedAt = g.status, g.enteredAt, g.exitedAt
			}
			s.mu.Unlock()
			if matches(e.VisitorName+" "+e.VisitorCPF+" "+e.Residence, search) {
				entries = append(entries, e)
			}
		}
	}
	return Paginate(entries, page, perPage)
}

func (s *Store) responsibles(residenceID entity.ID) []entity.Responsible {
	out := []entity.Responsible{}
	for _, r := range s.Residents.Find(func(r entity.Resident) bool { return r.ResidenceID == residenceID }) {
		out = append(out, entity.Responsible{ID: r.ID, Name: r.Name, Phone: r.Phone})
	}
	return out
}

func residenceLabel(r entity.Residence) string {
	switch {
	case r.Number == "":
		return ""
	case r.Block == "":
		return r.Number
	default:
		return r.Block + "-" + r.Number
	}
}

// GateAction registra entrada o salida. Entrada exige estado pendiente; salida exige estar dentro.
func (s *Store) GateAction(scheduleID, visitorID entity.ID, action string) (entity.GateActionResult, error) {
	appt, err := s.Appointments.Get(scheduleID)
	if err != nil {
		return entity.GateActionResult{}, err
	}
	found := false
	for _, gid := range appt.GuestIDs {
		if gid == visitorID {
			found = true
			break
		}
	}
	if !found {
		return entity.GateActionResult{}, fmt.Errorf("visitante %s no pertenece al agendamiento %s: %w", visitorID, scheduleID, domain.ErrNotFound)
	}

	key := string(scheduleID) + "-" + string(visitorID)
	at := s.Timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.gate[key]
	if rec.status == "" {
		rec.status = entity.ScheduleStatusPending
	}
	switch action {
	case entity.GateActionEntry:
		if rec.status != entity.ScheduleStatusPending {
			return entity.GateActionResult{}, fmt.Errorf("entrada ya registrada: %w", domain.ErrConflict)
		}
		rec.status, rec.enteredAt = entity.ScheduleStatusInside, at
	case entity.GateActionExit:
		if rec.status != entity.ScheduleStatusInside {
			return entity.GateActionResult{}, fmt.Errorf("visitante no está dentro: %w", domain.ErrConflict)
		}
		rec.status, rec.exitedAt = entity.ScheduleStatusDone, at
	default:
		return entity.GateActionResult{}, fmt.Errorf("acción %q: %w", action, domain.ErrInvalidInput)
	}
	s.gate[key] = rec
	return entity.GateActionResult{ScheduleID: scheduleID, VisitorID: visitorID, Action: action, Status: rec.status, At: at}, nil
}

// ── Catálogos ─────────────────────────────────────────────────────────────────

// SetLocations reemplaza los catálogos de estados y ciudades.
func (s *Store) SetLocations(states []entity.State, cities []entity.City) {
	s.mu.Lock()
	s.states, s.cities = states, cities
	s.mu.Unlock()
}

// States lista los estados.
func (s *Store) States() []entity.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.State{}, s.states...)
}

// Cities ciudades de la UF.
func (s *Store) Cities(uf string) []entity.City {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.City{}
	for _, c := range s.cities {
		if strings.EqualFold(c.UF, uf) {
			out = append(out, c)
		}
	}
	return out
}
