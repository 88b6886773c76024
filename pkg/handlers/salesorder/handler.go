package salesorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/models/api"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc      accounting.Service
	validate *validator.Validate
}

func NewHandler(svc accounting.Service) *Handler {
	return &Handler{svc: svc, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("tallydate", func(fl validator.FieldLevel) bool {
		_, err := adapters.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Create imports a sales order. Accepted imports answer 200; anything Tally did not
// store answers 400 with its diagnostic.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.SalesOrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		response.Error(w, r, &domain.ValidationError{Message: "invalid request body: " + err.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, r, &domain.ValidationError{Message: describe(err)})
		return
	}

	result, err := h.svc.CreateSalesOrder(ctx, adapters.MapApiSalesOrderToDomain(req))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	body := api.Response{
		Success: result.Accepted(),
		Data:    adapters.MapDomainImportResultToApi(result),
		Message: result.Message,
	}
	if !result.Accepted() {
		logger.Warn().
			Str("order_id", result.OrderID).
			Str("outcome", string(result.Outcome)).
			Msg(result.Message)
		body.Error = result.Message
		response.JSON(w, r, http.StatusBadRequest, body)
		return
	}
	response.JSON(w, r, http.StatusOK, body)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "SalesOrderRequest.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s needs at least %s entry", field, fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must not be negative", field))
		case "tallydate":
			msgs = append(msgs, field+" must be YYYYMMDD or YYYY-MM-DD")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
