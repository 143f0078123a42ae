package httpadapter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Ref string `json:"ref" validate:"omitempty,startswith=ref,max=32"`
}

type referralRequest struct {
	ReferrerID int64 `json:"referrer_id" validate:"required,gt=0"`
}

type createCampaignRequest struct {
	TaskType string          `json:"task_type" validate:"required,oneof=join_channel join_group start_bot visit_link"`
	Target   string          `json:"target" validate:"required,max=512"`
	CPC      decimal.Decimal `json:"cpc"`
	Budget   decimal.Decimal `json:"budget"`
}

type draftInputRequest struct {
	Input string `json:"input" validate:"required,max=512"`
}

type withdrawalRequest struct {
	Currency string          `json:"currency" validate:"required,alpha,max=10"`
	Amount   decimal.Decimal `json:"amount"`
	Address  string          `json:"address" validate:"required,max=128"`
}

type declareDepositRequest struct {
	Currency string          `json:"currency" validate:"required,alpha,max=10"`
	Amount   decimal.Decimal `json:"amount"`
	TxID     *string         `json:"txid" validate:"omitempty,max=128"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

func validationResponse(err error) errorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errorResponse{
			Error: fmt.Sprintf("invalid %s: failed %q", fe.Field(), fe.Tag()),
			Field: fe.Field(),
		}
	}
	return errorResponse{Error: err.Error()}
}

// limitParam reads ?limit= clamped to [1, 100], defaulting to 20.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return 20
	}
	return min(n, 100)
}
