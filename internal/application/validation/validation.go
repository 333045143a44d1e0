// Package validation valida los formularios antes de llamar a la API.
// Los errores salen como *domain.ValidationError con mensajes listos para el usuario,
// indexados por el nombre JSON del campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/portaria-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Validator envuelve validator.Validate con las reglas propias (cpf, cnpj, dategte).
type Validator struct {
	v *validator.Validate
}

// New crea un validador con las reglas registradas.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool { return ValidCPF(fl.Field().String()) })
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool { return ValidCNPJ(fl.Field().String()) })
	_ = v.RegisterValidation("dategte", dateGTE)
	return &Validator{v: v}
}

var std = New()

// Struct valida con el validador por defecto.
func Struct(s any) error { return std.Struct(s) }

// Struct devuelve nil o un *domain.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case "cpf":
		return "CPF inválido"
	case "cnpj":
		return "CNPJ inválido"
	case "datetime":
		return "Data inválida (use AAAA-MM-DD)"
	case "dategte":
		return "A data final deve ser igual ou posterior à data inicial"
	case "eqfield":
		return "As senhas não conferem"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Selecione ao menos %s", fe.Param())
		}
		return fmt.Sprintf("Mínimo de %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Máximo de %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("Deve ter %s caracteres", fe.Param())
	case "oneof":
		return "Opção inválida"
	case "url", "http_url":
		return "URL inválida"
	default:
		return "Valor inválido"
	}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// dateGTE exige que la fecha del campo sea >= a la del campo hermano indicado en el parámetro.
// Si alguna de las dos no parsea, la regla no aplica (datetime ya reporta el formato).
func dateGTE(fl validator.FieldLevel) bool {
	parent := reflect.Indirect(fl.Parent())
	other := parent.FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	end, err := time.Parse(dateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	start, err := time.Parse(dateLayout, other.String())
	if err != nil {
		return true
	}
	return !end.Before(start)
}

// ValidCPF acepta el CPF con o sin máscara (000.000.000-00) y verifica los dígitos.
func ValidCPF(s string) bool {
	d := digits(s)
	if len(d) != 11 || allEqual(d) {
		return false
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

func checkDigit(d []int, weight int) int {
	sum := 0
	for _, n := range d {
		sum += n * weight
		weight--
	}
	r := sum * 10 % 11
	if r == 10 {
		return 0
	}
	return r
}

// ValidCNPJ acepta el CNPJ con o sin máscara (00.000.000/0000-00) y verifica los dígitos.
func ValidCNPJ(s string) bool {
	d := digits(s)
	if len(d) != 14 || allEqual(d) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return cnpjDigit(d[:12], w1) == d[12] && cnpjDigit(d[:13], w2) == d[13]
}

func cnpjDigit(d, weights []int) int {
	sum := 0
	for i, n := range d {
		sum += n * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func digits(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, int(r-'0'))
		}
	}
	return out
}

func allEqual(d []int) bool {
	for _, n := range d[1:] {
		if n != d[0] {
			return false
		}
	}
	return true
}
