package receivables

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateReceivableInput is the request payload for creating a receivable.
type CreateReceivableInput struct {
	Kind            string   `json:"tipo" validate:"required,oneof=comissao bonificacao avulsa"`
	ContractID      *int64   `json:"contratoId"`
	ProjectedAmount float64  `json:"valorPrevisto" validate:"gte=0"`
	ReceivedAmount  *float64 `json:"valorRecebido" validate:"omitempty,gte=0"`
	ProjectedDate   string   `json:"dataPrevista" validate:"required,datetime=2006-01-02"`
	ReceivedDate    *string  `json:"dataRecebida" validate:"omitempty,datetime=2006-01-02"`
	Category        string   `json:"categoria"`
	Method          string   `json:"formaRecebimento"`
	Recurrence      string   `json:"recorrencia"`
	Status          string   `json:"status" validate:"omitempty,oneof=previsto recebido"`
}

// UpdateReceivableInput is the request payload for a full update.
type UpdateReceivableInput CreateReceivableInput

// PatchReceivableInput carries optional fields for a partial update.
type PatchReceivableInput struct {
	Kind            *string  `json:"tipo" validate:"omitempty,oneof=comissao bonificacao avulsa"`
	ContractID      *int64   `json:"contratoId"`
	ProjectedAmount *float64 `json:"valorPrevisto" validate:"omitempty,gte=0"`
	ReceivedAmount  *float64 `json:"valorRecebido" validate:"omitempty,gte=0"`
	ProjectedDate   *string  `json:"dataPrevista" validate:"omitempty,datetime=2006-01-02"`
	ReceivedDate    *string  `json:"dataRecebida" validate:"omitempty,datetime=2006-01-02"`
	Category        *string  `json:"categoria"`
	Method          *string  `json:"formaRecebimento"`
	Recurrence      *string  `json:"recorrencia"`
	Status          *string  `json:"status" validate:"omitempty,oneof=previsto recebido"`
}

// SettleInput marks a receivable as received.
type SettleInput struct {
	ReceivedAmount float64 `json:"valorRecebido" validate:"gte=0"`
	ReceivedDate   string  `json:"dataRecebida" validate:"required,datetime=2006-01-02"`
}

// ReceivableResponse is the wire representation of a receivable.
type ReceivableResponse struct {
	ID              int64     `json:"id"`
	Kind            string    `json:"tipo"`
	ContractID      *int64    `json:"contratoId,omitempty"`
	ProjectedAmount float64   `json:"valorPrevisto"`
	ReceivedAmount  *float64  `json:"valorRecebido,omitempty"`
	ProjectedDate   string    `json:"dataPrevista"`
	ReceivedDate    *string   `json:"dataRecebida,omitempty"`
	Category        string    `json:"categoria,omitempty"`
	Method          string    `json:"formaRecebimento,omitempty"`
	Recurrence      string    `json:"recorrencia,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToResponse converts a Receivable into its wire representation.
func ToResponse(rcv Receivable) ReceivableResponse {
	resp := ReceivableResponse{
		ID:              rcv.ID,
		Kind:            string(rcv.Kind),
		ContractID:      rcv.ContractID,
		ProjectedAmount: rcv.ProjectedAmount,
		ReceivedAmount:  rcv.ReceivedAmount,
		ProjectedDate:   rcv.ProjectedDate.Format("2006-01-02"),
		Category:        rcv.Category,
		Method:          rcv.Method,
		Recurrence:      rcv.Recurrence,
		Status:          string(rcv.Status),
		CreatedAt:       rcv.CreatedAt,
		UpdatedAt:       rcv.UpdatedAt,
	}
	if rcv.ReceivedDate != nil {
		d := rcv.ReceivedDate.Format("2006-01-02")
		resp.ReceivedDate = &d
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
