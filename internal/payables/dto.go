package payables

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreatePayableInput is the request payload for creating a payable.
type CreatePayableInput struct {
	Name             string  `json:"nome" validate:"required"`
	Amount           float64 `json:"valor" validate:"gte=0"`
	Category         string  `json:"categoria"`
	ExpenseType      string  `json:"tipo" validate:"omitempty,oneof=fixa variavel"`
	Supplier         string  `json:"fornecedor"`
	PersonID         *int64  `json:"pessoaId"`
	Recurrent        bool    `json:"recorrente"`
	RecurrenceMonths *int    `json:"mesesRecorrencia" validate:"omitempty,gte=1"`
	ProjectedDate    string  `json:"dataPrevista" validate:"required,datetime=2006-01-02"`
	PaidDate         *string `json:"dataPaga" validate:"omitempty,datetime=2006-01-02"`
	Method           string  `json:"formaPagamento"`
	ReceiptRef       *string `json:"comprovante"`
	Status           string  `json:"status" validate:"omitempty,oneof=previsto pago"`
}

// UpdatePayableInput is the request payload for a full update.
type UpdatePayableInput CreatePayableInput

// PatchPayableInput carries optional fields for a partial update.
type PatchPayableInput struct {
	Name             *string  `json:"nome"`
	Amount           *float64 `json:"valor" validate:"omitempty,gte=0"`
	Category         *string  `json:"categoria"`
	ExpenseType      *string  `json:"tipo" validate:"omitempty,oneof=fixa variavel"`
	Supplier         *string  `json:"fornecedor"`
	PersonID         *int64   `json:"pessoaId"`
	Recurrent        *bool    `json:"recorrente"`
	RecurrenceMonths *int     `json:"mesesRecorrencia" validate:"omitempty,gte=1"`
	ProjectedDate    *string  `json:"dataPrevista" validate:"omitempty,datetime=2006-01-02"`
	PaidDate         *string  `json:"dataPaga" validate:"omitempty,datetime=2006-01-02"`
	Method           *string  `json:"formaPagamento"`
	ReceiptRef       *string  `json:"comprovante"`
	Status           *string  `json:"status" validate:"omitempty,oneof=previsto pago"`
}

// PayInput marks a payable as paid.
type PayInput struct {
	PaidDate string `json:"dataPaga" validate:"required,datetime=2006-01-02"`
}

// PayableResponse is the wire representation of a payable.
type PayableResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"nome"`
	Amount           float64   `json:"valor"`
	Category         string    `json:"categoria,omitempty"`
	ExpenseType      string    `json:"tipo,omitempty"`
	Supplier         string    `json:"fornecedor,omitempty"`
	PersonID         *int64    `json:"pessoaId,omitempty"`
	Recurrent        bool      `json:"recorrente"`
	RecurrenceMonths *int      `json:"mesesRecorrencia,omitempty"`
	ProjectedDate    string    `json:"dataPrevista"`
	PaidDate         *string   `json:"dataPaga,omitempty"`
	Method           string    `json:"formaPagamento,omitempty"`
	ReceiptRef       *string   `json:"comprovante,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToResponse converts a Payable into its wire representation.
func ToResponse(p Payable) PayableResponse {
	resp := PayableResponse{
		ID:               p.ID,
		Name:             p.Name,
		Amount:           p.Amount,
		Category:         p.Category,
		ExpenseType:      string(p.ExpenseType),
		Supplier:         p.Supplier,
		PersonID:         p.PersonID,
		Recurrent:        p.Recurrent,
		RecurrenceMonths: p.RecurrenceMonths,
		ProjectedDate:    p.ProjectedDate.Format("2006-01-02"),
		Method:           p.Method,
		ReceiptRef:       p.ReceiptRef,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.PaidDate != nil {
		d := p.PaidDate.Format("2006-01-02")
		resp.PaidDate = &d
	}
	return resp
}

// ValidateInput runs struct validation and flattens failures per field.
func ValidateInput(input any) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	} else {
		fields["payload"] = err.Error()
	}
	return fields
}
