package contracts

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateContractInput is the request payload for creating a contract.
type CreateContractInput struct {
	Name                  string   `json:"nome" validate:"required"`
	Carrier               string   `json:"operadora" validate:"required"`
	Category              string   `json:"categoria"`
	Type                  string   `json:"tipo" validate:"required,oneof=pf pj"`
	MonthlyFee            float64  `json:"mensalidade" validate:"gte=0"`
	CommissionPct         float64  `json:"percentualComissao" validate:"gte=0"`
	PerLifeBonus          float64  `json:"bonificacaoPorVida" validate:"gte=0"`
	Lives                 int      `json:"vidas" validate:"gte=1"`
	ImplementationDate    string   `json:"dataImplantacao" validate:"required,datetime=2006-01-02"`
	ProjectedReceiptDates []string `json:"datasPrevistasRecebimento" validate:"dive,datetime=2006-01-02"`
	Salesperson           string   `json:"vendedor"`
	Supervisor            string   `json:"supervisor"`
	Status                string   `json:"status" validate:"omitempty,oneof=ativo cancelado"`
}

// UpdateContractInput is the request payload for a full update.
type UpdateContractInput CreateContractInput

// PatchContractInput carries optional fields for a partial update.
type PatchContractInput struct {
	Name                  *string  `json:"nome"`
	Carrier               *string  `json:"operadora"`
	Category              *string  `json:"categoria"`
	Type                  *string  `json:"tipo" validate:"omitempty,oneof=pf pj"`
	MonthlyFee            *float64 `json:"mensalidade" validate:"omitempty,gte=0"`
	CommissionPct         *float64 `json:"percentualComissao" validate:"omitempty,gte=0"`
	PerLifeBonus          *float64 `json:"bonificacaoPorVida" validate:"omitempty,gte=0"`
	Lives                 *int     `json:"vidas" validate:"omitempty,gte=1"`
	ImplementationDate    *string  `json:"dataImplantacao" validate:"omitempty,datetime=2006-01-02"`
	ProjectedReceiptDates []string `json:"datasPrevistasRecebimento" validate:"omitempty,dive,datetime=2006-01-02"`
	Salesperson           *string  `json:"vendedor"`
	Supervisor            *string  `json:"supervisor"`
	Status                *string  `json:"status" validate:"omitempty,oneof=ativo cancelado"`
}

// ContractResponse is the wire representation of a contract.
type ContractResponse struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"nome"`
	Carrier               string   `json:"operadora"`
	Category              string   `json:"categoria"`
	Type                  string   `json:"tipo"`
	MonthlyFee            float64  `json:"mensalidade"`
	CommissionPct         float64  `json:"percentualComissao"`
	PerLifeBonus          float64  `json:"bonificacaoPorVida"`
	Lives                 int      `json:"vidas"`
	ImplementationDate    string   `json:"dataImplantacao"`
	ProjectedReceiptDates []string `json:"datasPrevistasRecebimento,omitempty"`
	Salesperson           string   `json:"vendedor,omitempty"`
	Supervisor            string   `json:"supervisor,omitempty"`
	Status                string   `json:"status"`
	MonthlyCommission     float64  `json:"comissaoMensal"`
	BonusRevenue          float64  `json:"receitaBonificacao"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ToResponse converts a Contract into its wire representation.
func ToResponse(c Contract) ContractResponse {
	dates := make([]string, 0, len(c.ProjectedReceiptDates))
	for _, d := range c.ProjectedReceiptDates {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return ContractResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Carrier:               c.Carrier,
		Category:              c.Category,
		Type:                  string(c.Type),
		MonthlyFee:            c.MonthlyFee,
		CommissionPct:         c.CommissionPct,
		PerLifeBonus:          c.PerLifeBonus,
		Lives:                 c.Lives,
		ImplementationDate:    c.ImplementationDate.Format("2006-01-02"),
		ProjectedReceiptDates: dates,
		Salesperson:           c.Salesperson,
		Supervisor:            c.Supervisor,
		Status:                string(c.Status),
		MonthlyCommission:     c.MonthlyCommission(),
		BonusRevenue:          c.BonusRevenue(),
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
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
